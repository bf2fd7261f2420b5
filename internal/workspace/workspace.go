package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pipe01/tagstream/errors"
	"github.com/pipe01/tagstream/internal/lint"
	"github.com/pipe01/tagstream/tokenizer"
)

type Options struct {
	Tokenizer tokenizer.Options

	// Lint enables the lint pass when not nil.
	Lint *lint.Options
}

type Document struct {
	Name string

	Events       []tokenizer.Event
	Diagnostics  tokenizer.ErrorList
	OpenElements []string
	Issues       []*lint.Issue
}

// Problems returns the tokenizer diagnostics followed by the lint issues.
func (d *Document) Problems() []errors.SituatedErr {
	probs := make([]errors.SituatedErr, 0, len(d.Diagnostics)+len(d.Issues))

	for _, diag := range d.Diagnostics {
		probs = append(probs, diag)
	}
	for _, is := range d.Issues {
		probs = append(probs, is)
	}

	return probs
}

type Workspace struct {
	rootPath string
	opts     Options

	mu        sync.Mutex
	documents map[string]*Document
}

func New(rootPath string, opts Options) *Workspace {
	return &Workspace{
		rootPath:  rootPath,
		opts:      opts,
		documents: make(map[string]*Document),
	}
}

func (w *Workspace) fullPath(relPath string) string {
	if !filepath.IsAbs(relPath) {
		relPath = filepath.Join(w.rootPath, relPath)
	}

	if abs, err := filepath.Abs(relPath); err == nil {
		return abs
	}

	return filepath.Clean(relPath)
}

// Load reads and tokenizes a file, reusing the previous result if the file
// was already loaded.
func (w *Workspace) Load(relPath string) (*Document, error) {
	fullPath := w.fullPath(relPath)

	w.mu.Lock()
	defer w.mu.Unlock()

	if doc, ok := w.documents[fullPath]; ok {
		return doc, nil
	}

	bytes, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	doc := w.tokenize(relPath, bytes)
	w.documents[fullPath] = doc

	return doc, nil
}

// LoadWithContents tokenizes contents as the file at relPath, replacing any
// cached result for it.
func (w *Workspace) LoadWithContents(relPath string, contents []byte) *Document {
	doc := w.tokenize(relPath, contents)

	w.mu.Lock()
	w.documents[w.fullPath(relPath)] = doc
	w.mu.Unlock()

	return doc
}

func (w *Workspace) Forget(relPath string) {
	w.mu.Lock()
	delete(w.documents, w.fullPath(relPath))
	w.mu.Unlock()
}

func (w *Workspace) tokenize(relPath string, contents []byte) *Document {
	tk := tokenizer.NewWithOptions(contents, relPath, w.opts.Tokenizer)

	doc := &Document{
		Name:         relPath,
		Events:       tk.Parse(),
		Diagnostics:  tk.Diagnostics(),
		OpenElements: tk.OpenElements(),
	}

	if w.opts.Lint != nil {
		doc.Issues = lint.Check(doc.Events, *w.opts.Lint)
	}

	return doc
}
