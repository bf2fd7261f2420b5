package main

import (
	"testing"

	"github.com/pipe01/tagstream/tokenizer"
	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestSemanticTokens(t *testing.T) {
	doc := "<a href=x>\n  <img src=\"y\"/></a>"
	events, _ := tokenizer.Tokenize(doc)

	got := semanticTokens(events, []rune(doc))

	assert.Equal(t, []protocol.UInteger{
		0, 1, 1, tokenTypeElement, 0, // a
		0, 2, 4, tokenTypeAttribute, 0, // href
		0, 5, 1, tokenTypeString, 0, // x
		1, 3, 3, tokenTypeElement, 0, // img
		0, 4, 3, tokenTypeAttribute, 0, // src
		0, 5, 1, tokenTypeString, 0, // y
		0, 6, 1, tokenTypeElement, 0, // /a
	}, got)
}

func TestSemanticTokensQuotedValue(t *testing.T) {
	doc := `<a href="x">`
	events, _ := tokenizer.Tokenize(doc)

	got := semanticTokens(events, []rune(doc))

	assert.Equal(t, []protocol.UInteger{
		0, 1, 1, tokenTypeElement, 0, // a
		0, 2, 4, tokenTypeAttribute, 0, // href
		0, 6, 1, tokenTypeString, 0, // x
	}, got)
	assert.Equal(t, "string", semanticTokenTypes[tokenTypeString])
}

func TestSemanticTokensValueEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []protocol.UInteger
	}{
		{
			name: "value without key",
			doc:  `<p ="v">`,
			want: []protocol.UInteger{
				0, 1, 1, tokenTypeElement, 0,
				0, 4, 1, tokenTypeString, 0,
			},
		},
		{
			name: "multi-line value stops at line break",
			doc:  "<p t=\"ab\ncd\">",
			want: []protocol.UInteger{
				0, 1, 1, tokenTypeElement, 0,
				0, 2, 1, tokenTypeAttribute, 0,
				0, 3, 2, tokenTypeString, 0,
			},
		},
		{
			name: "empty value",
			doc:  `<p t="">`,
			want: []protocol.UInteger{
				0, 1, 1, tokenTypeElement, 0,
				0, 2, 1, tokenTypeAttribute, 0,
			},
		},
		{
			name: "multi-byte value",
			doc:  `<p 名="値段">`,
			want: []protocol.UInteger{
				0, 1, 1, tokenTypeElement, 0,
				0, 2, 1, tokenTypeAttribute, 0,
				0, 3, 2, tokenTypeString, 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, _ := tokenizer.Tokenize(tt.doc)

			assert.Equal(t, tt.want, semanticTokens(events, []rune(tt.doc)))
		})
	}
}

func TestSemanticTokensSkipsEmptyNames(t *testing.T) {
	doc := "<>x</>"
	events, _ := tokenizer.Tokenize(doc)

	assert.Empty(t, semanticTokens(events, []rune(doc)))
}

func TestPos(t *testing.T) {
	p := pos(tokenizer.Location{Line: 3, Column: 7})

	assert.Equal(t, protocol.Position{Line: 3, Character: 7}, p)
}
