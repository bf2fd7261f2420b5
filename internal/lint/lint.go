// Package lint runs structural checks over a tokenized event stream.
package lint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pipe01/tagstream/tokenizer"
	"golang.org/x/exp/slices"
	"golang.org/x/net/html/atom"
)

type Rule string

const (
	RuleUnknownElement     Rule = "unknown-element"
	RuleEmptyTagName       Rule = "empty-tag-name"
	RuleEmptyAttributeName Rule = "empty-attribute-name"
	RuleDuplicateAttribute Rule = "duplicate-attribute"
	RuleUnclosedElement    Rule = "unclosed-element"
)

var Rules = []Rule{
	RuleUnknownElement,
	RuleEmptyTagName,
	RuleEmptyAttributeName,
	RuleDuplicateAttribute,
	RuleUnclosedElement,
}

var (
	ErrEmptyTagName       = errors.New("tag has no name")
	ErrEmptyAttributeName = errors.New("attribute has no name")
)

type Options struct {
	// AllowedElements are accepted by the unknown-element rule in addition to
	// the names known to the HTML parser.
	AllowedElements []string

	Disabled []Rule
}

type Issue struct {
	Rule     Rule
	Inner    error
	Location tokenizer.Location
}

func (e *Issue) Unwrap() error {
	return e.Inner
}

func (e *Issue) Error() string {
	return fmt.Sprintf("%s (%s) at %s", e.Inner, e.Rule, &e.Location)
}

func (e *Issue) At() tokenizer.Location {
	return e.Location
}

type linter struct {
	events []tokenizer.Event
	index  int
	opts   Options

	open   []tokenizer.Event
	issues []*Issue
}

// Check walks events in order and returns the issues found, sorted by the
// position of the event that caused them except for unclosed elements, which
// are reported last.
func Check(events []tokenizer.Event, opts Options) []*Issue {
	l := linter{
		events: events,
		opts:   opts,
	}

	l.run()

	return l.issues
}

func (l *linter) take() (ev *tokenizer.Event, ok bool) {
	if l.index >= len(l.events) {
		return nil, false
	}

	ev = &l.events[l.index]
	l.index++

	return ev, true
}

func (l *linter) peek() (ev *tokenizer.Event, ok bool) {
	if l.index >= len(l.events) {
		return nil, false
	}

	return &l.events[l.index], true
}

func (l *linter) addIssueAt(rule Rule, err error, pos tokenizer.Location) {
	if slices.Contains(l.opts.Disabled, rule) {
		return
	}

	l.issues = append(l.issues, &Issue{
		Rule:     rule,
		Inner:    err,
		Location: pos,
	})
}

func (l *linter) run() {
	for {
		ev, ok := l.take()
		if !ok {
			break
		}

		switch ev.Kind {
		case tokenizer.StartElement:
			l.checkStartElement(ev)
		case tokenizer.EndElement:
			l.checkEndElement(ev)
		}
	}

	for _, ev := range l.open {
		l.addIssueAt(RuleUnclosedElement, fmt.Errorf("element %q is never closed", ev.Name), ev.Start)
	}
}

func (l *linter) checkStartElement(ev *tokenizer.Event) {
	if ev.Name == "" {
		l.addIssueAt(RuleEmptyTagName, ErrEmptyTagName, ev.Start)
	} else if !l.isKnownElement(ev.Name) {
		l.addIssueAt(RuleUnknownElement, fmt.Errorf("unknown element %q", ev.Name), ev.Start)
	}

	l.open = append(l.open, *ev)

	seen := make(map[string]struct{})

	for {
		attr, ok := l.peek()
		if !ok || attr.Kind != tokenizer.Attribute {
			break
		}
		l.take()

		if attr.Name == "" {
			l.addIssueAt(RuleEmptyAttributeName, ErrEmptyAttributeName, attr.Start)
			continue
		}

		if _, ok := seen[attr.Name]; ok {
			l.addIssueAt(RuleDuplicateAttribute, fmt.Errorf("attribute %q is already set on %q", attr.Name, ev.Name), attr.Start)
		}
		seen[attr.Name] = struct{}{}
	}
}

func (l *linter) checkEndElement(ev *tokenizer.Event) {
	if ev.Name == "" {
		l.addIssueAt(RuleEmptyTagName, ErrEmptyTagName, ev.Start)
	}

	// Mirrors the tokenizer, which only pops on a matching name
	if n := len(l.open); n > 0 && l.open[n-1].Name == ev.Name {
		l.open = l.open[:n-1]
	}
}

func (l *linter) isKnownElement(name string) bool {
	if slices.Contains(l.opts.AllowedElements, name) {
		return true
	}

	return atom.Lookup([]byte(strings.ToLower(name))) != 0
}
