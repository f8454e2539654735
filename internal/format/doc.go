// Package format contains the canonical serializers: the float-to-decimal
// algorithm, an indent-aware byte writer, and one canonicalizer per UFO file
// grammar (GLIF glyphs, property lists, feature source). All of them are
// pure: bytes in, bytes out, no IO. The same structure and policy always
// yield the same bytes, and re-formatting canonical output is a no-op.
package format
