package main

import (
	"unicode/utf8"

	"github.com/pipe01/tagstream/tokenizer"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	tokenTypeElement protocol.UInteger = iota
	tokenTypeAttribute
	tokenTypeString
)

var semanticTokenTypes = []string{
	"type",
	"property",
	"string",
}

type semanticSpan struct {
	start     tokenizer.Location
	length    int
	tokenType protocol.UInteger
}

// semanticTokens encodes element names, attribute names and attribute values
// as relative LSP semantic tokens.
func semanticTokens(events []tokenizer.Event, content []rune) []protocol.UInteger {
	tokens := make([]protocol.UInteger, 0)

	var prev tokenizer.Location

	for _, span := range semanticSpans(events, content) {
		var startDelta protocol.UInteger
		if span.start.Line == prev.Line {
			startDelta = protocol.UInteger(span.start.Column - prev.Column)
		} else {
			startDelta = protocol.UInteger(span.start.Column)
		}

		tokens = append(tokens,
			protocol.UInteger(span.start.Line-prev.Line),
			startDelta,
			protocol.UInteger(span.length),
			span.tokenType,
			0,
		)

		prev = span.start
	}

	return tokens
}

// semanticSpans finds the highlighted ranges in document order. Closing
// events for self-closed tags have no name in the source and are skipped.
func semanticSpans(events []tokenizer.Event, content []rune) []semanticSpan {
	spans := make([]semanticSpan, 0, len(events))

	add := func(start tokenizer.Location, length int, tokenType protocol.UInteger) {
		if length == 0 {
			return
		}
		spans = append(spans, semanticSpan{start, length, tokenType})
	}

	for _, ev := range events {
		start := ev.Start
		nameLength := utf8.RuneCountInString(ev.Name)

		switch ev.Kind {
		case tokenizer.StartElement:
			start.Column++
			add(start, nameLength, tokenTypeElement)

		case tokenizer.EndElement:
			if !isCloseTag(content, ev.Start.Offset) {
				continue
			}
			start.Column += 2
			add(start, nameLength, tokenTypeElement)

		case tokenizer.Attribute:
			add(start, nameLength, tokenTypeAttribute)

			if value, ok := attributeValueStart(content, ev); ok {
				add(value, valueLength(ev.Value), tokenTypeString)
			}
		}
	}

	return spans
}

// attributeValueStart locates the first rune of the value after `KEY=` and
// an optional opening quote.
func attributeValueStart(content []rune, ev tokenizer.Event) (tokenizer.Location, bool) {
	start := ev.Start
	skip := utf8.RuneCountInString(ev.Name)

	if start.Offset+skip >= len(content) || content[start.Offset+skip] != '=' {
		return start, false
	}
	skip++

	if start.Offset+skip < len(content) && content[start.Offset+skip] == '"' {
		skip++
	}

	start.Offset += skip
	start.Column += skip

	return start, true
}

// Tokens can't span lines, a multi-line value is only highlighted up to the
// first line break.
func valueLength(value string) int {
	n := 0
	for _, r := range value {
		if r == '\n' {
			break
		}
		n++
	}
	return n
}

func isCloseTag(content []rune, offset int) bool {
	return offset+1 < len(content) && content[offset] == '<' && content[offset+1] == '/'
}

func pos(l tokenizer.Location) protocol.Position {
	return protocol.Position{
		Line:      uint32(l.Line),
		Character: uint32(l.Column),
	}
}
