// Package diag defines the error model shared by the formatting pipeline.
//
// Every failure the tool can hit maps to one of four kinds: Config (bad
// formatting options, fatal before any file work starts), Path (a UFO path
// argument is not a valid package), Parse (one file inside a package cannot
// be read into its structured form) and Write (I/O failure while writing a
// canonical file). Path, Parse and Write errors are captured as tagged
// results and never abort sibling work; rendering lives in internal/ui and
// the CLI layer.
package diag
