// Package config holds the immutable formatting policy and the optional
// ufofmt.toml manifest that seeds it. The policy is validated once at
// startup and then threaded explicitly through every canonicalizer and
// writer call; nothing in this repository keeps formatting state in a
// package-level variable.
package config

import (
	"strings"

	"ufofmt/internal/diag"
)

// IndentChar selects the indentation character.
type IndentChar byte

const (
	// IndentTab indents with horizontal tabs (the default).
	IndentTab IndentChar = '\t'
	// IndentSpace indents with spaces.
	IndentSpace IndentChar = ' '
)

// QuoteStyle selects the quote character for XML declarations and attributes.
type QuoteStyle byte

const (
	// QuoteDouble is the default attribute quoting.
	QuoteDouble QuoteStyle = '"'
	// QuoteSingle quotes declarations and attributes with '.
	QuoteSingle QuoteStyle = '\''
)

const (
	// MinIndentCount and MaxIndentCount bound --indent-number.
	MinIndentCount = 1
	MaxIndentCount = 4
)

// Policy is the immutable formatting configuration for one invocation.
// Output line endings are always LF and output encoding is always UTF-8;
// neither is configurable.
type Policy struct {
	IndentChar  IndentChar
	IndentCount int
	QuoteStyle  QuoteStyle

	// OutExtension replaces the extension of every output file when
	// OutExtensionSet is true. A leading dot is tolerated ("xml" and
	// ".xml" are equivalent).
	OutExtension    string
	OutExtensionSet bool
	// OutNameSuffix, when non-empty, is inserted into the base filename
	// before the extension.
	OutNameSuffix string
}

// Default returns the policy matching the documented CLI defaults:
// one tab per indent level, double quotes, in-place output.
func Default() Policy {
	return Policy{
		IndentChar:  IndentTab,
		IndentCount: 1,
		QuoteStyle:  QuoteDouble,
	}
}

// Indent returns one indentation level as a string.
func (p *Policy) Indent() string {
	return strings.Repeat(string(p.IndentChar), p.IndentCount)
}

// Quote returns the policy quote character.
func (p *Policy) Quote() byte { return byte(p.QuoteStyle) }

// Validate checks the policy once, before any file processing begins.
// Violations are fatal for the whole invocation.
func (p *Policy) Validate() error {
	if p.IndentCount < MinIndentCount || p.IndentCount > MaxIndentCount {
		return diag.NewConfig("indent-number must have a value between %d - %d, got %d",
			MinIndentCount, MaxIndentCount, p.IndentCount)
	}
	if p.IndentChar != IndentTab && p.IndentChar != IndentSpace {
		return diag.NewConfig("indent character must be tab or space")
	}
	if p.QuoteStyle != QuoteDouble && p.QuoteStyle != QuoteSingle {
		return diag.NewConfig("quote style must be double or single")
	}
	if p.OutExtensionSet && strings.TrimPrefix(p.OutExtension, ".") == "" {
		return diag.NewConfig("out-ext must not be empty")
	}
	return nil
}
