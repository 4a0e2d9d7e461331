package toolchain

import (
	"errors"
	"strings"
	"testing"
)

func TestStageFromName(t *testing.T) {
	cases := map[string]Stage{
		"ir":         StageIR,
		"IR":         StageIR,
		"asm":        StageAssembly,
		"assembly":   StageAssembly,
		"exe":        StageExecutable,
		"executable": StageExecutable,
		"":           StageExecutable,
	}
	for name, want := range cases {
		got, err := StageFromName(name)
		if err != nil {
			t.Fatalf("StageFromName(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("StageFromName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestStageFromNameUnknown(t *testing.T) {
	if _, err := StageFromName("bogus"); err == nil {
		t.Fatal("expected an error for an unknown stage name")
	}
}

func TestStageErrorMessage(t *testing.T) {
	se := &StageError{Tool: "llc", Output: "fatal error: bad input\n", Err: errors.New("exit status 1")}
	msg := se.Error()
	if !strings.Contains(msg, "llc") || !strings.Contains(msg, "bad input") {
		t.Errorf("expected the tool name and its output in the error message, got %q", msg)
	}
	if se.Unwrap().Error() != "exit status 1" {
		t.Errorf("Unwrap() = %v, want exit status 1", se.Unwrap())
	}
}
