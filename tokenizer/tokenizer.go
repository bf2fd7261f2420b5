// Package tokenizer turns HTML-like markup into a flat, ordered list of
// lexical events without building a document tree.
//
// Malformed markup never stops tokenizing: problems are recorded as
// diagnostics and the tokenizer carries on with the next token.
package tokenizer

import (
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/slices"
)

var log = commonlog.GetLogger("tagstream.tokenizer")

var textReplacer = strings.NewReplacer("\n", "", "\t", "")

type Options struct {
	// Cascade runs the end tag, start tag and text checks one after the other
	// on every loop iteration, instead of only the first one that applies.
	Cascade bool

	// Logger receives every diagnostic at warning level.
	Logger commonlog.Logger
}

type Tokenizer struct {
	cursor

	opts Options

	stack  []string
	events []Event
	errs   ErrorList

	parsed bool
}

func New(file []byte, fileName string) *Tokenizer {
	return NewWithOptions(file, fileName, Options{})
}

func NewWithOptions(file []byte, fileName string, opts Options) *Tokenizer {
	if opts.Logger == nil {
		opts.Logger = log
	}

	return &Tokenizer{
		cursor: newCursor(file, fileName),
		opts:   opts,
		stack:  make([]string, 0, 16),
	}
}

// Tokenize parses input with the default options.
func Tokenize(input string) ([]Event, ErrorList) {
	t := New([]byte(input), "")
	events := t.Parse()

	return events, t.Diagnostics()
}

// Parse tokenizes the whole input and returns the events in document order.
// Subsequent calls return the same events.
func (t *Tokenizer) Parse() []Event {
	if t.parsed {
		return t.events
	}
	t.parsed = true

	for !t.eof() {
		t.skipWhitespace()

		if t.eof() {
			break
		}

		if t.opts.Cascade {
			t.dispatchCascading()
		} else {
			t.dispatch()
		}
	}

	return t.events
}

func (t *Tokenizer) Diagnostics() ErrorList {
	return t.errs
}

// OpenElements returns the names of the elements left open, outermost first.
func (t *Tokenizer) OpenElements() []string {
	return slices.Clone(t.stack)
}

func (t *Tokenizer) dispatch() {
	switch {
	case t.hasPrefix("</"):
		t.takeEndElement()
	case t.is('<'):
		t.takeStartElement()
	default:
		t.takeTextContent()
	}
}

func (t *Tokenizer) dispatchCascading() {
	if t.hasPrefix("</") {
		t.takeEndElement()
	}

	if t.is('<') {
		t.takeStartElement()
	}

	if !t.eof() {
		t.takeTextContent()
	}
}

func (t *Tokenizer) emit(ev Event) {
	t.events = append(t.events, ev)
}

func (t *Tokenizer) report(kind DiagnosticKind, inner error, at Location) {
	t.errs = append(t.errs, &Diagnostic{
		Kind:     kind,
		Inner:    inner,
		Location: at,
	})

	t.opts.Logger.Warning(inner.Error(), "kind", kind.String(), "location", at.String())
}

func (t *Tokenizer) reportUnexpected(kind DiagnosticKind, expected string) {
	r, eof := t.peek()

	t.report(kind, &UnexpectedRuneError{
		Got:      r,
		EOF:      eof,
		Expected: expected,
	}, t.location())
}

func (t *Tokenizer) push(name string) {
	t.stack = append(t.stack, name)
}

func (t *Tokenizer) pop() (name string, ok bool) {
	if len(t.stack) == 0 {
		return "", false
	}

	name = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]

	return name, true
}

func (t *Tokenizer) top() (name string, ok bool) {
	if len(t.stack) == 0 {
		return "", false
	}

	return t.stack[len(t.stack)-1], true
}

// `</NAME>`
func (t *Tokenizer) takeEndElement() {
	start := t.location()
	name := t.takeWhileFrom(2, isTagNameRune)

	t.emit(Event{Kind: EndElement, Name: name, Start: start})

	if top, ok := t.top(); ok && top == name {
		t.pop()
	} else {
		t.report(MismatchedCloseTag, &MismatchedTagError{Got: name, Open: top}, start)
	}

	t.skipWhitespace()

	if !t.is('>') {
		t.reportUnexpected(MalformedCloseTag, "'>'")
		return
	}

	t.advance(1)
}

// `<NAME ATTRIBUTES>` or `<NAME ATTRIBUTES/>`
func (t *Tokenizer) takeStartElement() {
	start := t.location()
	name := t.takeWhileFrom(1, isTagNameRune)

	t.emit(Event{Kind: StartElement, Name: name, Start: start})
	t.push(name)

	t.takeAttributes()
	t.skipWhitespace()

	switch {
	case t.hasPrefix("/>"):
		at := t.location()
		t.advance(2)

		// The element was pushed above, so the stack is never empty here
		// unless that changes.
		last, ok := t.pop()
		if !ok {
			t.report(OrphanSelfClose, ErrOrphanSelfClose, at)
			return
		}

		t.emit(Event{Kind: EndElement, Name: last, Start: at})

	case t.is('>'):
		t.advance(1)

	default:
		// The offending rune is left in place, the driver picks it up as
		// the start of the next token.
		t.reportUnexpected(MalformedStartTag, "'>' or '/>'")
	}
}

func (t *Tokenizer) takeAttributes() {
	for {
		r, eof := t.peek()
		if eof || r == '>' || r == '/' {
			return
		}

		if !t.takeAttribute() {
			return
		}
	}
}

// `KEY=VALUE`, `KEY="VALUE"` or `KEY`
func (t *Tokenizer) takeAttribute() (took bool) {
	t.skipWhitespace()

	start := t.location()
	key := t.takeWhile(isAttributeKeyRune)
	value := t.takeAttributeValue()

	if t.index == start.Offset {
		return false
	}

	t.emit(Event{Kind: Attribute, Name: key, Value: value, Start: start})

	t.skipWhitespace()
	return true
}

func (t *Tokenizer) takeAttributeValue() string {
	if !t.is('=') {
		return ""
	}
	t.advance(1)

	if !t.is('"') {
		return t.takeWhile(isUnquotedValueRune)
	}

	value := t.takeWhileFrom(1, func(r rune) bool { return r != '"' })

	// Unterminated values run to the end of the input
	if t.is('"') {
		t.advance(1)
	}

	return value
}

func (t *Tokenizer) takeTextContent() {
	start := t.location()

	value := t.takeWhile(isTextRune)
	value = textReplacer.Replace(value)
	value = strings.TrimSpace(value)

	if value == "" {
		return
	}

	t.emit(Event{Kind: TextContent, Value: value, Start: start})
}
