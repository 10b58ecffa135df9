package codegen

import (
	"fmt"
	"strings"
)

// Writer accumulates generated source with indentation tracking. Indent and
// line break strings are configurable so generated files match the project's
// formatting conventions.
type Writer struct {
	sb        strings.Builder
	indent    string
	lineBreak string
	level     int
}

// NewWriter creates a Writer using the given indent unit and line break.
func NewWriter(indent, lineBreak string) *Writer {
	return &Writer{indent: indent, lineBreak: lineBreak}
}

// Line writes one indented line.
func (w *Writer) Line(s string) {
	if s != "" {
		w.sb.WriteString(strings.Repeat(w.indent, w.level))
		w.sb.WriteString(s)
	}
	w.sb.WriteString(w.lineBreak)
}

// Linef writes one indented formatted line.
func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.sb.WriteString(w.lineBreak)
}

// In writes a line and increases the indent level.
func (w *Writer) In(s string) {
	w.Line(s)
	w.level++
}

// Out decreases the indent level and writes a line.
func (w *Writer) Out(s string) {
	if w.level == 0 {
		panic("codegen: unbalanced indentation")
	}
	w.level--
	w.Line(s)
}

// String returns the accumulated source.
func (w *Writer) String() string {
	return w.sb.String()
}
