// Package types implements the Type Model: the two primitive kinds the
// language supports and the array-of-primitive type built from them.
package types

import "fmt"

// Kind is a primitive scalar kind: Int or Float.
type Kind int

const (
	Int Kind = iota
	Float
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "unknown"
	}
}

// irType returns the LLVM spelling of a bare primitive kind.
func (k Kind) irType() string {
	switch k {
	case Int:
		return "i64"
	case Float:
		return "double"
	default:
		panic(fmt.Sprintf("unknown kind %d", k))
	}
}

// Type is either Primitive(kind) or Array(kind). Two types are equal iff
// they are the same variant over the same element kind.
type Type interface {
	fmt.Stringer
	isType()
	// Equals reports structural equality: same variant, same element kind.
	Equals(other Type) bool
	// IrType returns the LLVM IR spelling of this type.
	IrType() string
	// ElementKind returns the Kind carried by this type (the kind itself
	// for a Primitive, the element kind for an Array).
	ElementKind() Kind
	// IsArray reports whether this is an Array type.
	IsArray() bool
}

// Primitive is a scalar int or float type.
type Primitive struct {
	Kind Kind
}

func NewPrimitive(k Kind) Primitive { return Primitive{Kind: k} }

func (Primitive) isType() {}

func (p Primitive) String() string { return p.Kind.String() }

func (p Primitive) Equals(other Type) bool {
	o, ok := other.(Primitive)
	return ok && o.Kind == p.Kind
}

func (p Primitive) IrType() string { return p.Kind.irType() }

func (p Primitive) ElementKind() Kind { return p.Kind }

func (p Primitive) IsArray() bool { return false }

// Array is a pointer to a contiguous run of elements of a primitive kind.
// Arrays are not values (see spec §3): they cannot be assigned whole, used
// as operator operands, or read as a whole by the input operation.
type Array struct {
	Kind Kind
}

func NewArray(k Kind) Array { return Array{Kind: k} }

func (Array) isType() {}

func (a Array) String() string { return a.Kind.String() + "[]" }

func (a Array) Equals(other Type) bool {
	o, ok := other.(Array)
	return ok && o.Kind == a.Kind
}

func (a Array) IrType() string { return a.Kind.irType() + "*" }

func (a Array) ElementKind() Kind { return a.Kind }

func (a Array) IsArray() bool { return true }

// Common singleton instances, mirroring the teacher's ast.Int/ast.Float-style
// package-level vars.
var (
	IntType   = NewPrimitive(Int)
	FloatType = NewPrimitive(Float)
)

// ParseTypeName recognizes exactly the lexemes "int" and "float"; anything
// else is an *unknown type* error.
func ParseTypeName(name string) (Primitive, error) {
	switch name {
	case "int":
		return IntType, nil
	case "float":
		return FloatType, nil
	default:
		return Primitive{}, fmt.Errorf("unknown type: %s", name)
	}
}
