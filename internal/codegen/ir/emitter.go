// Package ir implements the append-only textual LLVM IR buffer: a header
// region (external declarations and string globals) and a body region
// (function definitions), plus the fresh-id counter shared across an
// entire compilation. Grounded on the teacher's asm.Program/formatter
// split between structured lines and a final textual render, shrunk to
// LLVM IR's simpler two-region model.
package ir

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// Emitter accumulates IR text. Header lines are inserted at the front of
// the header region as they're emitted, so earlier insertions end up
// later in the final header (mirrors the source's "each new header line
// is inserted at the front" rule). Body lines are appended in emission
// order.
type Emitter struct {
	header []string
	body   []string
	indent int
	nextID int

	strings map[string]string
	nextStr int
}

// New returns a fresh Emitter with an empty buffer and a zeroed id
// counter.
func New() *Emitter {
	return &Emitter{strings: make(map[string]string)}
}

// Reset restores e to its initial empty state so a single process can run
// multiple independent compilations without restarting.
func (e *Emitter) Reset() {
	e.header = nil
	e.body = nil
	e.indent = 0
	e.nextID = 0
	e.strings = make(map[string]string)
	e.nextStr = 0
}

// InternString returns the IR global name for the string-literal content
// s, allocating a fresh @str.K and emitting its header declaration the
// first time s is seen; re-interning identical content returns the
// previously assigned name without emitting anything new.
func (e *Emitter) InternString(s string) string {
	if name, ok := e.strings[s]; ok {
		return name
	}
	name := fmt.Sprintf("@str.%d", e.nextStr)
	e.nextStr++
	e.strings[s] = name
	e.EmitHeader(FormatStringGlobal(name, s))
	return name
}

// FreshID returns a monotonically increasing integer, unique for the
// lifetime of this Emitter. Register and label names embed it to
// guarantee they never collide.
func (e *Emitter) FreshID() int {
	id := e.nextID
	e.nextID++
	return id
}

// Emit appends a fully formatted instruction line to the body at the
// current indentation.
func (e *Emitter) Emit(line string) {
	e.body = append(e.body, strings.Repeat(indentUnit, e.indent)+line)
}

// Emitf is Emit with fmt.Sprintf formatting.
func (e *Emitter) Emitf(format string, args ...any) {
	e.Emit(fmt.Sprintf(format, args...))
}

// EmitLabel emits "name:" at the current indentation and then increases
// indentation for the block that follows.
func (e *Emitter) EmitLabel(name string) {
	e.Emit(name + ":")
	e.indent++
}

// CloseLabel decreases indentation after a labeled block ends.
func (e *Emitter) CloseLabel() {
	e.indent--
}

// LastLineIsTerminator reports whether the most recently emitted body
// line is a `ret` or `br` instruction — used to decide whether a
// function's synthetic trailing return would follow a terminator (which
// LLVM forbids within the same block) and should be elided instead.
func (e *Emitter) LastLineIsTerminator() bool {
	if len(e.body) == 0 {
		return false
	}
	last := strings.TrimSpace(e.body[len(e.body)-1])
	return strings.HasPrefix(last, "ret ") || strings.HasPrefix(last, "br ")
}

// EmitRaw appends line to the body with no indentation, for top-level
// constructs like "define ... {" and the closing "}".
func (e *Emitter) EmitRaw(line string) {
	e.body = append(e.body, line)
}

// EmitHeader prepends line to the header region.
func (e *Emitter) EmitHeader(line string) {
	e.header = append([]string{line}, e.header...)
}

// String renders the accumulated header followed by the accumulated
// body, one instruction per line.
func (e *Emitter) String() string {
	var b strings.Builder
	for _, line := range e.header {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, line := range e.body {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
