package scope

import "testing"

func TestDeclareAndLookup(t *testing.T) {
	root := NewRoot()
	if !root.Declare("x", Variable{PtrName: "%ptr.x.0"}) {
		t.Fatal("expected first declaration of x to succeed")
	}
	if root.Declare("x", Variable{PtrName: "%ptr.x.1"}) {
		t.Fatal("expected redeclaring x in the same scope to fail")
	}

	v, ok := root.Lookup("x")
	if !ok || v.PtrName != "%ptr.x.0" {
		t.Errorf("Lookup(x) = %v, %v; expected %%ptr.x.0, true", v, ok)
	}
}

func TestChildScopeShadowing(t *testing.T) {
	root := NewRoot()
	root.Declare("x", Variable{PtrName: "%ptr.x.outer"})

	child := NewChild(root)
	if !child.Declare("x", Variable{PtrName: "%ptr.x.inner"}) {
		t.Fatal("shadowing a name from an enclosing scope should succeed")
	}

	v, _ := child.Lookup("x")
	if v.PtrName != "%ptr.x.inner" {
		t.Errorf("child Lookup(x) = %v, expected inner shadow", v)
	}

	vOuter, _ := root.Lookup("x")
	if vOuter.PtrName != "%ptr.x.outer" {
		t.Errorf("outer scope should be unaffected by child shadowing, got %v", vOuter)
	}
}

func TestLookupMissesAfterScopeIsDiscarded(t *testing.T) {
	root := NewRoot()
	child := NewChild(root)
	child.Declare("y", Variable{PtrName: "%ptr.y.0"})

	// Simulate leaving the block: just stop using `child`.
	if _, ok := root.Lookup("y"); ok {
		t.Error("a name declared only in a child scope must not be visible from the parent")
	}
}

func TestLookupUndeclared(t *testing.T) {
	root := NewRoot()
	if _, ok := root.Lookup("missing"); ok {
		t.Error("expected Lookup of an undeclared name to fail")
	}
}

func TestFunctionTableRegisterAndLookup(t *testing.T) {
	ft := NewFunctionTable()
	if err := ft.Register(Function{Name: "fib"}); err != nil {
		t.Fatalf("unexpected error registering fib: %v", err)
	}
	if err := ft.Register(Function{Name: "fib"}); err == nil {
		t.Error("expected an error re-registering the same function name")
	}

	fn, ok := ft.Lookup("fib")
	if !ok || fn.Name != "fib" {
		t.Errorf("Lookup(fib) = %v, %v", fn, ok)
	}

	if _, ok := ft.Lookup("nope"); ok {
		t.Error("expected Lookup of an unregistered function to fail")
	}
}
