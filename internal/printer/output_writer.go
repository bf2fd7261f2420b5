package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type treeWriter struct {
	w           io.Writer
	indentation int

	err error
}

func (w *treeWriter) indent(delta int) {
	w.indentation += delta

	if w.indentation < 0 {
		w.indentation = 0
	}
}

func (w *treeWriter) writeLine(format string, a ...any) {
	if w.err != nil {
		return
	}

	_, w.err = fmt.Fprintf(w.w, "%s%s\n", strings.Repeat("\t", w.indentation), fmt.Sprintf(format, a...))
}

func (w *treeWriter) WriteStartElement(name string) {
	w.writeLine("<%s>", name)
	w.indent(1)
}

// WriteEndElement dedents even when the name doesn't match the last open
// element, the tree only reflects nesting depth.
func (w *treeWriter) WriteEndElement(name string) {
	w.indent(-1)
	w.writeLine("</%s>", name)
}

func (w *treeWriter) WriteAttribute(key, value string) {
	if value == "" {
		w.writeLine("@%s", key)
		return
	}

	w.writeLine("@%s=%s", key, strconv.Quote(value))
}

func (w *treeWriter) WriteText(text string) {
	w.writeLine("%s", strconv.Quote(text))
}
