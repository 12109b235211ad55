package javaref

import (
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/javalink/java"
)

// Import makes a class, or with Name "*" every class of a package,
// referable by its simple name.
type Import struct {
	Package string
	Name    string
}

// ParseImport parses "java.util.List" or "java.util.*".
func ParseImport(text string) (Import, error) {
	text = strings.TrimSpace(text)
	q := java.ParseName(text)
	if q.Name != "*" && !java.IsValidName(q.Name) {
		return Import{}, &InvalidImportError{Text: text}
	}
	if pkg := q.Package.Name(); pkg != "" && !java.IsValidName(pkg) {
		return Import{}, &InvalidImportError{Text: text}
	}
	return Import{Package: q.Package.Name(), Name: q.Name}, nil
}

func (i Import) IsWildcard() bool {
	return i.Name == "*"
}

func (i Import) String() string {
	return java.ParsePackage(i.Package).Qualify(i.Name)
}

// DefaultImports are in effect in every document.
var DefaultImports = []Import{{Package: "java.lang", Name: "*"}}

// Imports holds the imports of each document. The host adds to it while
// reading a document and purges a document before reading it again.
type Imports struct {
	mu   sync.RWMutex
	docs map[string][]Import
}

func NewImports() *Imports {
	return &Imports{docs: map[string][]Import{}}
}

// For returns the imports of doc in the order they were added, starting
// with DefaultImports.
func (s *Imports) For(doc string) []Import {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if imports, ok := s.docs[doc]; ok {
		return slices.Clone(imports)
	}
	return slices.Clone(DefaultImports)
}

func (s *Imports) Has(doc string, imp Import) bool {
	return slices.Contains(s.For(doc), imp)
}

// Add appends imp to the imports of doc and reports whether it was new.
func (s *Imports) Add(doc string, imp Import) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	imports, ok := s.docs[doc]
	if !ok {
		imports = slices.Clone(DefaultImports)
	}
	if slices.Contains(imports, imp) {
		s.docs[doc] = imports
		return false
	}
	s.docs[doc] = append(imports, imp)
	return true
}

func (s *Imports) Purge(doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, doc)
}

// Merge copies the imports of docs from other, replacing what s has for
// them. This is how results of documents read elsewhere are taken over.
func (s *Imports) Merge(other *Imports, docs ...string) {
	if other == s {
		return
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(docs) == 0 {
		for doc := range other.docs {
			docs = append(docs, doc)
		}
	}
	for _, doc := range docs {
		if imports, ok := other.docs[doc]; ok {
			s.docs[doc] = slices.Clone(imports)
		}
	}
}

// Documents returns the names of documents with recorded imports, sorted.
func (s *Imports) Documents() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]string, 0, len(s.docs))
	for doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Strings(docs)
	return docs
}
