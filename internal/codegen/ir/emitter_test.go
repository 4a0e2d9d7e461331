package ir

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFreshIDMonotonic(t *testing.T) {
	e := New()
	ids := []int{e.FreshID(), e.FreshID(), e.FreshID()}
	for i, id := range ids {
		if id != i {
			t.Errorf("FreshID() #%d = %d, expected %d", i, id, i)
		}
	}
}

func TestEmitIndentation(t *testing.T) {
	e := New()
	e.EmitRaw("define i64 @main() {")
	e.EmitLabel("entry")
	e.Emit("ret i64 0")
	e.CloseLabel()
	e.EmitRaw("}")

	wantLines := []string{"define i64 @main() {", "entry:", "  ret i64 0", "}", ""}
	gotLines := strings.Split(e.String(), "\n")
	if diff := cmp.Diff(wantLines, gotLines); diff != "" {
		t.Errorf("rendered IR lines mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitHeaderPrepend(t *testing.T) {
	e := New()
	e.EmitHeader("declare i32 @printf(i8*, ...)")
	e.EmitHeader("declare i32 @scanf(i8*, ...)")

	got := e.String()
	scanfIdx := strings.Index(got, "@scanf")
	printfIdx := strings.Index(got, "@printf")
	if scanfIdx == -1 || printfIdx == -1 || scanfIdx > printfIdx {
		t.Errorf("expected @scanf before @printf in header, got %q", got)
	}
}

func TestInternStringDedup(t *testing.T) {
	e := New()
	n1 := e.InternString("hi\n")
	n2 := e.InternString("hi\n")
	if n1 != n2 {
		t.Errorf("InternString should return the same name for identical content: %q != %q", n1, n2)
	}
	n3 := e.InternString("other")
	if n3 == n1 {
		t.Errorf("InternString should return distinct names for distinct content")
	}

	rendered := e.String()
	if strings.Count(rendered, "= private constant") != 2 {
		t.Errorf("expected exactly 2 string globals emitted, got:\n%s", rendered)
	}
}

func TestReset(t *testing.T) {
	e := New()
	e.FreshID()
	e.InternString("x")
	e.Emit("foo")
	e.EmitHeader("bar")
	e.Reset()

	if e.FreshID() != 0 {
		t.Error("Reset should zero the id counter")
	}
	if e.String() != "" {
		t.Error("Reset should clear the buffer")
	}
	n := e.InternString("x")
	if n != "@str.0" {
		t.Errorf("Reset should clear the string table, got %q", n)
	}
}

func TestEncodeStringConstant(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantBody   string
		wantLength int
	}{
		{"plain", "hi", "hi", 3},
		{"newline", "hi\n", "hi\\0A", 4},
		{"quote", `say "hi"`, `say \22hi\22`, 9},
		{"nul", "a\x00b", "a\\00b", 4},
		{"multibyte utf8", "héllo", "héllo", 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, length := EncodeStringConstant(tc.input)
			if body != tc.wantBody {
				t.Errorf("body = %q, expected %q", body, tc.wantBody)
			}
			if length != tc.wantLength {
				t.Errorf("length = %d, expected %d", length, tc.wantLength)
			}
		})
	}
}
