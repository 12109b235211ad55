package javaref

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/javalink/classpath"
	"github.com/dhamidi/javalink/docroot"
	"github.com/dhamidi/javalink/java"
)

var log = commonlog.GetLogger("javalink.javaref")

// Options configure a Session.
type Options struct {
	Classpath    []string
	Docroots     []docroot.Docroot
	Titles       TitleOptions
	SrcDir       string
	FetchTimeout time.Duration
}

// Session is the state shared by all references of one documentation
// build: the classpath index, the package registry, and the imports of
// every document. The index and the registry are created on first use.
type Session struct {
	mu      sync.Mutex
	opts    Options
	imports *Imports
	fetcher *docroot.Fetcher

	index            *classpath.Index
	registry         *docroot.Registry
	registryWarnings []string
}

func NewSession(opts Options) *Session {
	if opts.FetchTimeout == 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	return &Session{
		opts:    opts,
		imports: NewImports(),
		fetcher: docroot.NewFetcher(opts.FetchTimeout),
	}
}

func (s *Session) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

func (s *Session) Imports() *Imports {
	return s.imports
}

// Index returns the classpath index, expanding the classpath on first use.
func (s *Session) Index(ctx context.Context) (*classpath.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(ctx)
}

func (s *Session) indexLocked(ctx context.Context) (*classpath.Index, error) {
	if s.index != nil {
		return s.index, nil
	}
	index, err := classpath.New(ctx, s.opts.Classpath)
	if err != nil {
		return nil, err
	}
	s.index = index
	return index, nil
}

// Registry returns the package registry, fetching every docroot's manifest
// on first use. Docroots that could not be read are reported by
// RegistryWarnings.
func (s *Session) Registry(ctx context.Context) *docroot.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registryLocked(ctx)
}

func (s *Session) registryLocked(ctx context.Context) *docroot.Registry {
	if s.registry == nil {
		log.Info("initializing package list")
		s.registry, s.registryWarnings = s.fetcher.Build(ctx, s.opts.Docroots)
	}
	return s.registry
}

func (s *Session) RegistryWarnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.registryWarnings)
}

// Import validates and records one import of doc. Imports already made are
// accepted without looking them up again. An import that names nothing on
// the classpath is not recorded and yields *UnresolvedImportError.
func (s *Session) Import(ctx context.Context, doc, text string) error {
	imp, err := ParseImport(text)
	if err != nil {
		return err
	}
	if s.imports.Has(doc, imp) {
		return nil
	}

	index, err := s.Index(ctx)
	if err != nil {
		return err
	}
	var found bool
	if imp.IsWildcard() {
		found, err = index.FindPackage(java.ParsePackage(imp.Package))
	} else {
		var class *java.ClassSurface
		class, err = index.Load(java.ParseName(imp.String()))
		found = class != nil
	}
	if err != nil {
		return err
	}
	if !found {
		return &UnresolvedImportError{Import: imp}
	}
	s.imports.Add(doc, imp)
	return nil
}

// Resolve resolves ref with the imports of doc.
func (s *Session) Resolve(ctx context.Context, doc, ref string) (Target, error) {
	index, err := s.Index(ctx)
	if err != nil {
		return Target{}, err
	}
	r := &Resolver{Classes: index}
	return r.Resolve(ref, s.imports.For(doc))
}

// URL returns the documentation link of t as listed by its docroot.
func (s *Session) URL(ctx context.Context, t Target) (string, error) {
	return URL(s.Registry(ctx), t)
}

// Reconfigure applies new options. Cached classpath state is dropped when
// the classpath changed and the package registry when the docroots did.
func (s *Session) Reconfigure(opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if opts.FetchTimeout == 0 {
		opts.FetchTimeout = s.opts.FetchTimeout
	}

	var err error
	if !slices.Equal(opts.Classpath, s.opts.Classpath) && s.index != nil {
		log.Info("classpath has changed, clearing classpath index")
		err = s.index.Close()
		s.index = nil
	}
	if !slices.Equal(opts.Docroots, s.opts.Docroots) && s.registry != nil {
		log.Info("docroots have changed, clearing package list")
		s.registry = nil
		s.registryWarnings = nil
	}
	if opts.FetchTimeout != s.opts.FetchTimeout {
		s.fetcher = docroot.NewFetcher(opts.FetchTimeout)
	}
	s.opts = opts
	return err
}

// Purge forgets the imports of doc. Call it before reading doc again.
func (s *Session) Purge(doc string) {
	s.imports.Purge(doc)
}

// Merge takes over the imports other recorded for docs, or for all of its
// documents when docs is empty.
func (s *Session) Merge(other *Session, docs ...string) {
	s.imports.Merge(other.imports, docs...)
}

// Close releases the classpath index. The session can be used again
// afterwards and will reopen the classpath.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil
	}
	err := s.index.Close()
	s.index = nil
	return err
}
