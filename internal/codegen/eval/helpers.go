package eval

import (
	"fmt"
	"strconv"
	"strings"
)

// regName formats a register name embedding a node's unique id, e.g.
// regName("val", 7) -> "%val.7". Every node draws its id at construction,
// so names never collide across the whole compilation.
func regName(prefix string, id int) string {
	return fmt.Sprintf("%%%s.%d", prefix, id)
}

// labelName formats a label name the same way registers are formatted.
func labelName(prefix string, id int) string {
	return fmt.Sprintf("%s.%d", prefix, id)
}

// formatFloat renders a float64 as an LLVM double literal. LLVM requires
// a decimal point in the mantissa of a floating point constant, even one
// written in exponent form, so strconv's 'g' form (which switches to
// exponent notation for large/small magnitudes, e.g. 1e+06 for
// 1000000.0, with no dot in the mantissa) needs a ".0" inserted before
// the exponent marker rather than appended at the end.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		if !strings.Contains(s[:i], ".") {
			s = s[:i] + ".0" + s[i:]
		}
		return s
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
