package printer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pipe01/tagstream/tokenizer"
)

type Format int

const (
	FormatDebug Format = iota
	FormatTree
	FormatJSON
)

var Formats = []string{"debug", "tree", "json"}

func (f Format) String() string {
	if f >= 0 && int(f) < len(Formats) {
		return Formats[f]
	}

	return "<unknown>"
}

func ParseFormat(s string) (Format, error) {
	for i, name := range Formats {
		if name == s {
			return Format(i), nil
		}
	}

	return 0, fmt.Errorf("unknown format %q", s)
}

// Write prints events to w in the given format.
func Write(w io.Writer, events []tokenizer.Event, format Format) error {
	switch format {
	case FormatDebug:
		return writeDebug(w, events)
	case FormatTree:
		return writeTree(w, events)
	case FormatJSON:
		return writeJSON(w, events)
	}

	return fmt.Errorf("unknown format %d", format)
}

func writeDebug(w io.Writer, events []tokenizer.Event) error {
	for _, ev := range events {
		if _, err := fmt.Fprintln(w, ev); err != nil {
			return err
		}
	}

	return nil
}

func writeTree(w io.Writer, events []tokenizer.Event) error {
	tw := &treeWriter{w: w}

	for _, ev := range events {
		switch ev.Kind {
		case tokenizer.StartElement:
			tw.WriteStartElement(ev.Name)
		case tokenizer.EndElement:
			tw.WriteEndElement(ev.Name)
		case tokenizer.Attribute:
			tw.WriteAttribute(ev.Name, ev.Value)
		case tokenizer.TextContent:
			tw.WriteText(ev.Value)
		}

		if tw.err != nil {
			return tw.err
		}
	}

	return nil
}

type jsonEvent struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func writeJSON(w io.Writer, events []tokenizer.Event) error {
	out := make([]jsonEvent, 0, len(events))

	for _, ev := range events {
		out = append(out, jsonEvent{
			Kind:   ev.Kind.String(),
			Name:   ev.Name,
			Value:  ev.Value,
			Line:   ev.Start.Line + 1,
			Column: ev.Start.Column + 1,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	return nil
}
