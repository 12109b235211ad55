// Package workspace checks a tree of reStructuredText documents against a
// javaref session and keeps the results current as documents change.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/javalink/document"
	"github.com/dhamidi/javalink/javaref"
)

var log = commonlog.GetLogger("javalink.workspace")

// Extension is the suffix of the documents a workspace checks.
const Extension = ".rst"

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	session *javaref.Session
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path     string
	Content  []byte
	Document *document.Document
	Report   *Report
}

// Warning is a problem with one node of a document. Line is one based.
type Warning struct {
	Path    string
	Line    int
	Range   document.Range
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %s", w.Path, w.Line, w.Message)
}

// Resolved pairs a role with its rendered link.
type Resolved struct {
	Node document.Node
	Link javaref.Link
}

// Report is the outcome of checking one document. Err is set when the
// classpath could not be read; checking stops at that node.
type Report struct {
	Path     string
	Links    []Resolved
	Warnings []Warning
	Err      error
}

func (r *Report) LinkAt(p document.Position) (Resolved, bool) {
	for _, l := range r.Links {
		if l.Node.Range.Contains(p) {
			return l, true
		}
	}
	return Resolved{}, false
}

func New(rootDir string, session *javaref.Session) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		session: session,
		files:   make(map[string]*FileInfo),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Session() *javaref.Session {
	return w.session
}

// ScanAll checks every document below the root directory.
func (w *Workspace) ScanAll(ctx context.Context) ([]*Report, error) {
	var reports []*Report
	err := filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Extension {
			return nil
		}
		report, err := w.ScanFile(ctx, path)
		if report != nil {
			reports = append(reports, report)
		}
		return err
	})
	return reports, err
}

func (w *Workspace) ScanFile(ctx context.Context, path string) (*Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(ctx, path, content)
}

// UpdateFile checks content as the new text of path. The imports the
// document made before are dropped first, then its directives and roles
// are processed in source order.
func (w *Workspace) UpdateFile(ctx context.Context, path string, content []byte) (*Report, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc := document.Parse(path, content)
	report := w.check(ctx, path, doc)
	w.files[path] = &FileInfo{
		Path:     path,
		Content:  content,
		Document: doc,
		Report:   report,
	}
	return report, report.Err
}

func (w *Workspace) check(ctx context.Context, path string, doc *document.Document) *Report {
	name := w.DocName(path)
	docdir := filepath.Dir(w.abs(path))
	report := &Report{Path: path}

	w.session.Purge(name)
	for _, n := range doc.Nodes {
		switch n.Kind {
		case document.KindImport:
			err := w.session.Import(ctx, name, n.Text)
			if err == nil {
				continue
			}
			if !javaref.IsRecoverable(err) {
				report.Err = err
				return report
			}
			report.warn(n, err.Error())

		case document.KindRef:
			link, err := w.session.Render(ctx, name, docdir, n.Text)
			if err != nil {
				report.Err = err
				return report
			}
			for _, msg := range link.Warnings {
				report.warn(n, msg)
			}
			report.Links = append(report.Links, Resolved{Node: n, Link: link})
		}
	}
	for _, warning := range report.Warnings {
		log.Info(warning.String())
	}
	return report
}

func (r *Report) warn(n document.Node, msg string) {
	r.Warnings = append(r.Warnings, Warning{
		Path:    r.Path,
		Line:    n.Range.Start.Line + 1,
		Range:   n.Range,
		Message: msg,
	})
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
	w.session.Purge(w.DocName(path))
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Reports returns the latest report of every checked document, by path.
func (w *Workspace) Reports() []*Report {
	w.mu.RLock()
	defer w.mu.RUnlock()
	reports := make([]*Report, 0, len(w.files))
	for _, f := range w.files {
		reports = append(reports, f.Report)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })
	return reports
}

// DocName names a document the way imports are keyed: its path relative
// to the root, with slashes and without extension.
func (w *Workspace) DocName(path string) string {
	rel, err := filepath.Rel(w.abs(w.rootDir), w.abs(path))
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
}

func (w *Workspace) abs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
