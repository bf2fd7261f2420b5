package tokenizer

import (
	"fmt"
	"strconv"
)

type EventKind int

const (
	StartElement EventKind = iota
	EndElement
	TextContent
	Attribute
)

func (k EventKind) String() string {
	switch k {
	case StartElement:
		return "StartElement"
	case EndElement:
		return "EndElement"
	case TextContent:
		return "TextContent"
	case Attribute:
		return "Attribute"
	}

	return "<unknown>"
}

// Event is a single lexical unit produced by the Tokenizer.
//
// Name holds the tag name for StartElement and EndElement and the key for
// Attribute. Value holds the text for TextContent and the value for Attribute.
type Event struct {
	Kind  EventKind
	Name  string
	Value string
	Start Location
}

func NewStartElement(name string) Event {
	return Event{Kind: StartElement, Name: name}
}

func NewEndElement(name string) Event {
	return Event{Kind: EndElement, Name: name}
}

func NewTextContent(text string) Event {
	return Event{Kind: TextContent, Value: text}
}

func NewAttribute(key, value string) Event {
	return Event{Kind: Attribute, Name: key, Value: value}
}

func (e Event) String() string {
	switch e.Kind {
	case StartElement, EndElement:
		return fmt.Sprintf("%s(%s)", e.Kind, strconv.Quote(e.Name))
	case TextContent:
		return fmt.Sprintf("%s(%s)", e.Kind, strconv.Quote(e.Value))
	case Attribute:
		return fmt.Sprintf("%s(%s, %s)", e.Kind, strconv.Quote(e.Name), strconv.Quote(e.Value))
	}

	return e.Kind.String()
}

// WithoutLocation returns a copy of the event with a zero Start.
func (e Event) WithoutLocation() Event {
	e.Start = Location{}
	return e
}

type Location struct {
	File string

	// 0-based, counted in runes
	Line, Column int
	Offset       int
}

func (l *Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line+1, l.Column+1)
}
