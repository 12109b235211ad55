package workspace

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/javalink/document"
)

const lsName = "javalink"

// Factory creates the workspace for the root directory an editor opens.
type Factory func(rootDir string) (*Workspace, error)

// LSPServer publishes reference warnings as diagnostics and offers
// document links and hovers for :javaref: roles.
type LSPServer struct {
	workspace *Workspace
	factory   Factory
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string, factory Factory) *LSPServer {
	ls := &LSPServer{
		version: version,
		factory: factory,
	}

	ls.handler = protocol.Handler{
		Initialize:               ls.initialize,
		Initialized:              ls.initialized,
		Shutdown:                 ls.shutdown,
		SetTrace:                 ls.setTrace,
		TextDocumentDidOpen:      ls.textDocumentDidOpen,
		TextDocumentDidChange:    ls.textDocumentDidChange,
		TextDocumentDidClose:     ls.textDocumentDidClose,
		TextDocumentDidSave:      ls.textDocumentDidSave,
		TextDocumentDocumentLink: ls.textDocumentDocumentLink,
		TextDocumentHover:        ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}

	ws, err := ls.factory(rootDir)
	if err != nil {
		return nil, err
	}
	ls.workspace = ws

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentLinkProvider = &protocol.DocumentLinkOptions{}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.workspace == nil {
		return nil
	}
	return ls.workspace.Session().Close()
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		return ls.update(ctx, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		return ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	report, err := ls.workspace.ScanFile(context.Background(), path)
	ls.publish(ctx, params.TextDocument.URI, report, err)
	return nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) error {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	report, err := ls.workspace.UpdateFile(context.Background(), path, content)
	ls.publish(ctx, uri, report, err)
	return nil
}

func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, report *Report, err error) {
	diagnostics := []protocol.Diagnostic{}
	if report != nil {
		for _, w := range report.Warnings {
			diagnostics = append(diagnostics, diagnostic(w.Range, protocol.DiagnosticSeverityWarning, w.Message))
		}
	}
	if err != nil {
		diagnostics = append(diagnostics, diagnostic(document.Range{}, protocol.DiagnosticSeverityError, err.Error()))
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) textDocumentDocumentLink(ctx *glsp.Context, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	report := ls.report(params.TextDocument.URI)
	if report == nil {
		return nil, nil
	}

	links := []protocol.DocumentLink{}
	for _, r := range report.Links {
		if !r.Link.Linked() {
			continue
		}
		target := absoluteLink(r.Link.URL, filepath.Dir(report.Path))
		tooltip := r.Link.Title
		links = append(links, protocol.DocumentLink{
			Range:   toProtocolRange(r.Node.Range),
			Target:  &target,
			Tooltip: &tooltip,
		})
	}
	return links, nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	report := ls.report(params.TextDocument.URI)
	if report == nil {
		return nil, nil
	}

	pos := document.Position{Line: int(params.Position.Line), Character: int(params.Position.Character)}
	r, ok := report.LinkAt(pos)
	if !ok {
		return nil, nil
	}

	var value string
	if r.Link.Linked() {
		value = fmt.Sprintf("`%s`\n\n%s", r.Link.Target, r.Link.URL)
	} else {
		value = fmt.Sprintf("`%s`\n\n%s", r.Link.Target, strings.Join(r.Link.Warnings, "\n"))
	}
	rng := toProtocolRange(r.Node.Range)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
		Range: &rng,
	}, nil
}

func (ls *LSPServer) report(uri protocol.DocumentUri) *Report {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	file := ls.workspace.GetFile(path)
	if file == nil {
		return nil
	}
	return file.Report
}

func diagnostic(r document.Range, severity protocol.DiagnosticSeverity, message string) protocol.Diagnostic {
	source := lsName
	return protocol.Diagnostic{
		Range:    toProtocolRange(r),
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func toProtocolRange(r document.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(r.Start.Line), Character: protocol.UInteger(r.Start.Character)},
		End:   protocol.Position{Line: protocol.UInteger(r.End.Line), Character: protocol.UInteger(r.End.Character)},
	}
}

// absoluteLink turns a link relative to docdir into a file URI so editors
// can open it.
func absoluteLink(link, docdir string) string {
	if u, err := url.Parse(link); err == nil && u.Scheme != "" {
		return link
	}
	path, fragment, _ := strings.Cut(link, "#")
	abs, err := filepath.Abs(filepath.Join(docdir, filepath.FromSlash(path)))
	if err != nil {
		return link
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if fragment == "" {
		return u.String()
	}
	return u.String() + "#" + fragment
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
