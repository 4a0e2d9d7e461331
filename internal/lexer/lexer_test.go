package lexer

import (
	"strings"
	"testing"
)

func allLexemes(t *testing.T, input string) []Lexeme {
	t.Helper()
	lex := New(strings.NewReader(input), "test.lang")
	var result []Lexeme
	for {
		l, err := lex.Next()
		if err != nil {
			t.Fatalf("unexpected lexer error: %v", err)
		}
		result = append(result, l)
		if l.Type == LEX_EOF {
			break
		}
	}
	return result
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Lexeme
	}{
		{
			name:  "empty input",
			input: "",
			expected: []Lexeme{
				{Type: LEX_EOF, Loc: Location{Filename: "test.lang", Line: 1, Col: 1}},
			},
		},
		{
			name:  "identifiers and keywords",
			input: "int main foo_bar",
			expected: []Lexeme{
				{Type: LEX_KEYWORD, Str: "int", Loc: Location{Filename: "test.lang", Line: 1, Col: 1}},
				{Type: LEX_IDENT, Str: "main", Loc: Location{Filename: "test.lang", Line: 1, Col: 5}},
				{Type: LEX_IDENT, Str: "foo_bar", Loc: Location{Filename: "test.lang", Line: 1, Col: 10}},
				{Type: LEX_EOF, Loc: Location{Filename: "test.lang", Line: 1, Col: 17}},
			},
		},
		{
			name:  "integer and float literals",
			input: "42 3.14 0",
			expected: []Lexeme{
				{Type: LEX_INT, Str: "42", Loc: Location{Filename: "test.lang", Line: 1, Col: 1}},
				{Type: LEX_FLOAT, Str: "3.14", Loc: Location{Filename: "test.lang", Line: 1, Col: 4}},
				{Type: LEX_INT, Str: "0", Loc: Location{Filename: "test.lang", Line: 1, Col: 9}},
				{Type: LEX_EOF, Loc: Location{Filename: "test.lang", Line: 1, Col: 10}},
			},
		},
		{
			name:  "string literal with escapes",
			input: `"hi\n"`,
			expected: []Lexeme{
				{Type: LEX_STRING, Str: "hi\n", Loc: Location{Filename: "test.lang", Line: 1, Col: 1}},
				{Type: LEX_EOF, Loc: Location{Filename: "test.lang", Line: 1, Col: 7}},
			},
		},
		{
			name:  "two-character operators",
			input: "== != <= >= && ||",
			expected: []Lexeme{
				{Type: LEX_OPERATOR, Str: "==", Loc: Location{Filename: "test.lang", Line: 1, Col: 1}},
				{Type: LEX_OPERATOR, Str: "!=", Loc: Location{Filename: "test.lang", Line: 1, Col: 4}},
				{Type: LEX_OPERATOR, Str: "<=", Loc: Location{Filename: "test.lang", Line: 1, Col: 7}},
				{Type: LEX_OPERATOR, Str: ">=", Loc: Location{Filename: "test.lang", Line: 1, Col: 10}},
				{Type: LEX_OPERATOR, Str: "&&", Loc: Location{Filename: "test.lang", Line: 1, Col: 13}},
				{Type: LEX_OPERATOR, Str: "||", Loc: Location{Filename: "test.lang", Line: 1, Col: 16}},
				{Type: LEX_EOF, Loc: Location{Filename: "test.lang", Line: 1, Col: 18}},
			},
		},
		{
			name:  "single character operators and single-char fallback",
			input: "= ! < >",
			expected: []Lexeme{
				{Type: LEX_OPERATOR, Str: "=", Loc: Location{Filename: "test.lang", Line: 1, Col: 1}},
				{Type: LEX_OPERATOR, Str: "!", Loc: Location{Filename: "test.lang", Line: 1, Col: 3}},
				{Type: LEX_OPERATOR, Str: "<", Loc: Location{Filename: "test.lang", Line: 1, Col: 5}},
				{Type: LEX_OPERATOR, Str: ">", Loc: Location{Filename: "test.lang", Line: 1, Col: 7}},
				{Type: LEX_EOF, Loc: Location{Filename: "test.lang", Line: 1, Col: 8}},
			},
		},
		{
			name:  "comment is skipped",
			input: "int // a comment\nfloat",
			expected: []Lexeme{
				{Type: LEX_KEYWORD, Str: "int", Loc: Location{Filename: "test.lang", Line: 1, Col: 1}},
				{Type: LEX_KEYWORD, Str: "float", Loc: Location{Filename: "test.lang", Line: 2, Col: 1}},
				{Type: LEX_EOF, Loc: Location{Filename: "test.lang", Line: 2, Col: 6}},
			},
		},
		{
			name:  "punctuation",
			input: "a[0] = 1;",
			expected: []Lexeme{
				{Type: LEX_IDENT, Str: "a", Loc: Location{Filename: "test.lang", Line: 1, Col: 1}},
				{Type: LEX_PUNCTUATION, Str: "[", Loc: Location{Filename: "test.lang", Line: 1, Col: 2}},
				{Type: LEX_INT, Str: "0", Loc: Location{Filename: "test.lang", Line: 1, Col: 3}},
				{Type: LEX_PUNCTUATION, Str: "]", Loc: Location{Filename: "test.lang", Line: 1, Col: 4}},
				{Type: LEX_OPERATOR, Str: "=", Loc: Location{Filename: "test.lang", Line: 1, Col: 6}},
				{Type: LEX_INT, Str: "1", Loc: Location{Filename: "test.lang", Line: 1, Col: 8}},
				{Type: LEX_PUNCTUATION, Str: ";", Loc: Location{Filename: "test.lang", Line: 1, Col: 9}},
				{Type: LEX_EOF, Loc: Location{Filename: "test.lang", Line: 1, Col: 10}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := allLexemes(t, tc.input)
			if len(got) != len(tc.expected) {
				t.Fatalf("got %d lexemes, expected %d: %v", len(got), len(tc.expected), got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("lexeme %d: got %+v, expected %+v", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	lex := New(strings.NewReader(`"oops`), "test.lang")
	_, err := lex.Next()
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}
