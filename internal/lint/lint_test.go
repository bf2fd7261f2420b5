package lint

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pipe01/tagstream/tokenizer"
)

type row struct {
	Rule         Rule
	Message      string
	Line, Column int
}

func rows(issues []*Issue) []row {
	var out []row
	for _, is := range issues {
		out = append(out, row{
			Rule:    is.Rule,
			Message: is.Inner.Error(),
			Line:    is.Location.Line,
			Column:  is.Location.Column,
		})
	}
	return out
}

func TestCheck(t *testing.T) {
	type testCase struct {
		name  string
		input string
		opts  Options
		want  []row
	}

	cases := []testCase{
		{
			name:  "clean document",
			input: `<html><body><p class="x">hi<br/></p></body></html>`,
		},
		{
			name:  "empty document",
			input: "",
		},
		{
			name:  "unknown element",
			input: "<span></span><frob>x</frob>",
			want: []row{
				{RuleUnknownElement, `unknown element "frob"`, 0, 13},
			},
		},
		{
			name:  "element names are case insensitive",
			input: "<DIV></DIV>",
		},
		{
			name:  "allowed custom element",
			input: "<frob></frob>",
			opts:  Options{AllowedElements: []string{"frob"}},
		},
		{
			name:  "empty tag names",
			input: "<>x</>",
			want: []row{
				{RuleEmptyTagName, "tag has no name", 0, 0},
				{RuleEmptyTagName, "tag has no name", 0, 3},
			},
		},
		{
			name:  "empty attribute name",
			input: `<a ="x"></a>`,
			want: []row{
				{RuleEmptyAttributeName, "attribute has no name", 0, 3},
			},
		},
		{
			name:  "duplicate attribute",
			input: "<a href=x id=1 href=y></a>",
			want: []row{
				{RuleDuplicateAttribute, `attribute "href" is already set on "a"`, 0, 15},
			},
		},
		{
			name:  "same attribute on different elements",
			input: "<a id=1></a><a id=1></a>",
		},
		{
			name:  "unclosed elements",
			input: "<div>\n<p>text</div>",
			want: []row{
				{RuleUnclosedElement, `element "div" is never closed`, 0, 0},
				{RuleUnclosedElement, `element "p" is never closed`, 1, 0},
			},
		},
		{
			name:  "self-closed elements are closed",
			input: "<div><img src=a/></div>",
		},
		{
			name:  "disabled rule",
			input: "<frob>",
			opts:  Options{Disabled: []Rule{RuleUnknownElement}},
			want: []row{
				{RuleUnclosedElement, `element "frob" is never closed`, 0, 0},
			},
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			events, _ := tokenizer.Tokenize(c.input)

			got := rows(Check(events, c.opts))

			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckMatchesTokenizerStack(t *testing.T) {
	docs := []string{
		"<a><b></c></a>",
		"<a></b>",
		"<ul><li>one<li>two</ul>",
		"<x/><y><z/>",
	}

	for _, doc := range docs {
		tk := tokenizer.New([]byte(doc), "")
		events := tk.Parse()

		var unclosed []string
		for _, is := range Check(events, Options{Disabled: []Rule{RuleUnknownElement}}) {
			if is.Rule == RuleUnclosedElement {
				unclosed = append(unclosed, is.Location.String())
			}
		}

		if len(unclosed) != len(tk.OpenElements()) {
			t.Errorf("%q: got %d unclosed issues, tokenizer left %d elements open", doc, len(unclosed), len(tk.OpenElements()))
		}
	}
}

func TestIssueError(t *testing.T) {
	events, _ := tokenizer.Tokenize("<>")
	issues := Check(events, Options{})

	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}

	is := issues[0]
	if !errors.Is(is, ErrEmptyTagName) {
		t.Errorf("expected issue to wrap ErrEmptyTagName")
	}
	if got, want := is.Error(), "tag has no name (empty-tag-name) at :1:1"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
