package format

import "bytes"

// Features normalizes feature-syntax text to LF line endings. The grammar
// is free-form and not owned by this formatter, so no indentation or
// quoting transformation applies; content bytes are otherwise untouched.
func Features(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		b := src[i]
		if b == '\r' {
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, b)
	}
	return out
}

// FeaturesChanged reports whether normalization would alter src, without
// allocating the normalized copy.
func FeaturesChanged(src []byte) bool {
	return bytes.IndexByte(src, '\r') >= 0
}
