package main

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/pipe01/tagstream/errors"
	"github.com/pipe01/tagstream/internal/lint"
	"github.com/pipe01/tagstream/internal/workspace"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "tagstream"

var version string = "0.1.0"
var handler protocol.Handler

var (
	documentsMu sync.Mutex
	documents   = map[string]string{}
)

var ws = workspace.New("/", workspace.Options{
	Lint: &lint.Options{},
})

func main() {
	commonlog.Configure(1, nil)

	protocol.SetTraceValue(protocol.TraceValueMessage)

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			setDocument(params.TextDocument.URI, params.TextDocument.Text)

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			content, ok := getDocument(params.TextDocument.URI)
			if !ok {
				return nil
			}

			for _, change := range params.ContentChanges {
				switch change := change.(type) {
				case protocol.TextDocumentContentChangeEventWhole:
					content = change.Text

				case protocol.TextDocumentContentChangeEvent:
					startIndex, endIndex := change.Range.IndexesIn(content)
					content = content[:startIndex] + change.Text + content[endIndex:]
				}
			}

			setDocument(params.TextDocument.URI, content)

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidClose: func(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
			documentsMu.Lock()
			delete(documents, params.TextDocument.URI)
			documentsMu.Unlock()

			if path, err := documentPath(params.TextDocument.URI); err == nil {
				ws.Forget(path)
			}

			context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
				URI:         params.TextDocument.URI,
				Diagnostics: []protocol.Diagnostic{},
			})

			return nil
		},
		TextDocumentSemanticTokensFull: semanticTokensFull,
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

func getDocument(docURI string) (string, bool) {
	documentsMu.Lock()
	defer documentsMu.Unlock()

	content, ok := documents[docURI]
	return content, ok
}

func setDocument(docURI, content string) {
	documentsMu.Lock()
	documents[docURI] = content
	documentsMu.Unlock()
}

func documentPath(docURI string) (string, error) {
	url, err := url.Parse(docURI)
	if err != nil {
		return "", fmt.Errorf("parse document uri: %w", err)
	}
	if url.Scheme != "file" {
		return "", fmt.Errorf("invalid document uri scheme %q", url.Scheme)
	}

	return filepath.FromSlash(url.Path), nil
}

func handleDocument(context *glsp.Context, docURI string) error {
	filePath, err := documentPath(docURI)
	if err != nil {
		return err
	}

	contents, ok := getDocument(docURI)
	if !ok {
		return nil
	}

	doc := ws.LoadWithContents(filePath, []byte(contents))

	diag := []protocol.Diagnostic{}

	for _, d := range doc.Diagnostics {
		diag = append(diag, diagnostic(d, protocol.DiagnosticSeverityError, d.Kind.String()))
	}
	for _, is := range doc.Issues {
		diag = append(diag, diagnostic(is, protocol.DiagnosticSeverityWarning, string(is.Rule)))
	}

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diag,
	})

	return nil
}

func diagnostic(err errors.SituatedErr, severity protocol.DiagnosticSeverity, code string) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: pos(err.At()),
			End:   pos(err.At()),
		},
		Severity: ptr(severity),
		Code:     &protocol.IntegerOrString{Value: code},
		Source:   ptr(lsName),
		Message:  err.Unwrap().Error(),
	}
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     semanticTokenTypes,
			TokenModifiers: []string{},
		},
		Range: false,
		Full:  true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func semanticTokensFull(context *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	content, ok := getDocument(params.TextDocument.URI)
	if !ok {
		return nil, fmt.Errorf("document %q not found", params.TextDocument.URI)
	}

	filePath, err := documentPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	doc := ws.LoadWithContents(filePath, []byte(content))

	return &protocol.SemanticTokens{
		Data: semanticTokens(doc.Events, []rune(content)),
	}, nil
}

func ptr[T any](v T) *T {
	return &v
}
