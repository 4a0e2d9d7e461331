// Package diagnostics defines the compiler's error taxonomy. Every fatal
// semantic error the evaluator raises is a CompileError carrying a Location
// and an ErrorKind drawn from this fixed set.
package diagnostics

import (
	"fmt"

	"github.com/iley/llvmgen/internal/lexer"
)

type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	DuplicateVariable
	DuplicateFunction
	UndefinedFunction
	ArityMismatch
	TypeMismatch
	NotAnArray
	CannotAssignArray
	CannotScanArray
	IndexMustBeInt
	ConditionMustBeInt
	LogicalOperandMustBeInt
	ArrayOperandForbidden
	MissingArraySize
	UnknownOperator
	UnknownType
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "undefined variable"
	case DuplicateVariable:
		return "duplicate variable"
	case DuplicateFunction:
		return "duplicate function"
	case UndefinedFunction:
		return "undefined function"
	case ArityMismatch:
		return "arity mismatch"
	case TypeMismatch:
		return "type mismatch"
	case NotAnArray:
		return "not an array"
	case CannotAssignArray:
		return "cannot assign to array"
	case CannotScanArray:
		return "cannot scan into array"
	case IndexMustBeInt:
		return "index must be int"
	case ConditionMustBeInt:
		return "condition must be int"
	case LogicalOperandMustBeInt:
		return "logical operand must be int"
	case ArrayOperandForbidden:
		return "array operand forbidden"
	case MissingArraySize:
		return "missing array size"
	case UnknownOperator:
		return "unknown operator"
	case UnknownType:
		return "unknown type"
	default:
		return "unknown error"
	}
}

// CompileError is a fatal semantic error raised during evaluation.
type CompileError struct {
	Kind ErrorKind
	Loc  lexer.Location
	msg  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Loc, e.Kind, e.msg)
}

// Newf constructs a CompileError. The format/args produce the detail message
// that follows the location and error kind in Error().
func Newf(kind ErrorKind, loc lexer.Location, format string, args ...any) *CompileError {
	return &CompileError{Kind: kind, Loc: loc, msg: fmt.Sprintf(format, args...)}
}
