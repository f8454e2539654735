package format

import (
	"strconv"
	"strings"
)

// FloatString renders a double as canonical decimal text.
//
// The produced string is the shortest fixed-notation decimal that parses
// back to the bit-identical double, with one mandatory fractional digit:
// 400 renders as "400.0", never "400". Negative zero keeps its sign
// ("-0.0"); callers screen non-finite values at parse time, since neither
// the GLIF nor the plist grammar admits them.
func FloatString(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
