package tokenizer

import (
	"errors"
	"fmt"
)

type DiagnosticKind int

const (
	MismatchedCloseTag DiagnosticKind = iota
	MalformedStartTag
	MalformedCloseTag
	OrphanSelfClose
)

func (k DiagnosticKind) String() string {
	switch k {
	case MismatchedCloseTag:
		return "MismatchedCloseTag"
	case MalformedStartTag:
		return "MalformedStartTag"
	case MalformedCloseTag:
		return "MalformedCloseTag"
	case OrphanSelfClose:
		return "OrphanSelfClose"
	}

	return "<unknown>"
}

var (
	ErrMismatchedCloseTag = errors.New("mismatched closing tag")
	ErrMalformedStartTag  = errors.New("malformed start tag")
	ErrMalformedCloseTag  = errors.New("malformed closing tag")
	ErrOrphanSelfClose    = errors.New("self-closing tag without an open element")
)

// Err returns the sentinel error matching the kind, for use with errors.Is.
func (k DiagnosticKind) Err() error {
	switch k {
	case MismatchedCloseTag:
		return ErrMismatchedCloseTag
	case MalformedStartTag:
		return ErrMalformedStartTag
	case MalformedCloseTag:
		return ErrMalformedCloseTag
	case OrphanSelfClose:
		return ErrOrphanSelfClose
	}

	return nil
}

// Diagnostic is a non-fatal problem found while tokenizing.
type Diagnostic struct {
	Kind     DiagnosticKind
	Inner    error
	Location Location
}

func (e *Diagnostic) Unwrap() error {
	return e.Inner
}

func (e *Diagnostic) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *Diagnostic) At() Location {
	return e.Location
}

func (e *Diagnostic) Is(target error) bool {
	return target != nil && target == e.Kind.Err()
}

type UnexpectedRuneError struct {
	Got      rune
	EOF      bool
	Expected string
}

func (e *UnexpectedRuneError) Error() string {
	if e.EOF {
		return fmt.Sprintf("expected %s, found end of input", e.Expected)
	}

	return fmt.Sprintf("expected %s, found %q", e.Expected, e.Got)
}

type MismatchedTagError struct {
	Got, Open string
}

func (e *MismatchedTagError) Error() string {
	if e.Open == "" {
		return fmt.Sprintf("closing tag %q has no open element", e.Got)
	}

	return fmt.Sprintf("closing tag %q doesn't match open element %q", e.Got, e.Open)
}

// ErrorList is the list of diagnostics reported during a single parse.
type ErrorList []*Diagnostic

func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	}

	return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
}

// Err returns nil when the list is empty, and the list itself otherwise.
func (a ErrorList) Err() error {
	if len(a) == 0 {
		return nil
	}

	return a
}

func (a ErrorList) Has(kind DiagnosticKind) bool {
	for _, d := range a {
		if d.Kind == kind {
			return true
		}
	}

	return false
}
