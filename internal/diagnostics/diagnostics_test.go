package diagnostics

import (
	"strings"
	"testing"

	"github.com/iley/llvmgen/internal/lexer"
)

func TestCompileErrorFormatting(t *testing.T) {
	loc := lexer.Location{Filename: "prog.lang", Line: 3, Col: 5}
	err := Newf(UndefinedVariable, loc, "variable %s is not declared", "x")

	msg := err.Error()
	for _, want := range []string{"prog.lang:3:5", "undefined variable", "variable x is not declared"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, expected it to contain %q", msg, want)
		}
	}
}

func TestErrorKindStrings(t *testing.T) {
	kinds := []ErrorKind{
		UndefinedVariable, DuplicateVariable, DuplicateFunction, UndefinedFunction,
		ArityMismatch, TypeMismatch, NotAnArray, CannotAssignArray, CannotScanArray,
		IndexMustBeInt, ConditionMustBeInt, LogicalOperandMustBeInt,
		ArrayOperandForbidden, MissingArraySize, UnknownOperator, UnknownType,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "" || s == "unknown error" {
			t.Errorf("ErrorKind %d stringified to %q", k, s)
		}
		if seen[s] {
			t.Errorf("duplicate ErrorKind string %q", s)
		}
		seen[s] = true
	}
}
