package ir

import (
	"fmt"
	"strings"
)

// EncodeStringConstant encodes s for an LLVM `[L x i8] c"..."` global and
// returns the encoded body plus L, the declared array length. Only NUL,
// newline, and '"' are escaped; the source format string is not expected
// to carry other control bytes. L is the string's UTF-8 byte length plus
// one for the implicit NUL terminator — computed in bytes, not runes, so
// non-ASCII literals produce a correctly sized array (see the teacher's
// EscapeString, which this diverges from: it escapes by rune and does not
// track byte length at all).
func EncodeStringConstant(s string) (encoded string, length int) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 0:
			b.WriteString("\\00")
		case '\n':
			b.WriteString("\\0A")
		case '"':
			b.WriteString("\\22")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), len(s) + 1
}

// FormatStringGlobal renders the full `@name = private constant ...` line
// for a string constant, ready to hand to EmitHeader.
func FormatStringGlobal(name, content string) string {
	encoded, length := EncodeStringConstant(content)
	return fmt.Sprintf(`%s = private constant [%d x i8] c"%s\00"`, name, length, encoded)
}
