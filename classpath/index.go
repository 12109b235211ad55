package classpath

import (
	"context"
	"encoding/json"
	"io/fs"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/tliron/commonlog"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/javalink/classfile"
	"github.com/dhamidi/javalink/java"
)

var log = commonlog.GetLogger("javalink.classpath")

// Stats counts the work an Index has done.
type Stats struct {
	Entries   int `json:"entries"`
	Opened    int `json:"opened"`
	Decoded   int `json:"decoded"`
	CacheHits int `json:"cache_hits"`
	Missing   int `json:"missing"`
}

// Index finds class surfaces on a classpath. Nothing is read up front:
// resources are opened on first use and every class is decoded at most
// once. Both hits and misses are cached.
//
// An Index serializes to its configured path list and is expanded again
// when decoded.
type Index struct {
	mu sync.Mutex

	paths     []string
	entries   []Entry
	resources []*Resource

	packages        map[java.Package]map[string]*java.ClassSurface
	missing         map[java.QualifiedName]bool
	missingPackages map[java.Package]bool

	stats  Stats
	closed bool
}

// New expands paths and returns an index over them. An invalid entry is
// reported as an *InvalidEntryError.
func New(ctx context.Context, paths []string) (*Index, error) {
	ix := &Index{}
	if err := ix.init(ctx, paths); err != nil {
		return nil, err
	}
	return ix, nil
}

// With runs fn with an index over paths and closes it afterwards, also
// when fn fails or panics.
func With(ctx context.Context, paths []string, fn func(*Index) error) (err error) {
	ix, err := New(ctx, paths)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ix.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ix)
}

func (ix *Index) init(ctx context.Context, paths []string) error {
	entries, err := Expand(ctx, paths)
	if err != nil {
		return err
	}
	log.Infof("classpath expanded to %d entries", len(entries))

	ix.paths = append([]string(nil), paths...)
	ix.entries = entries
	ix.resources = make([]*Resource, len(entries))
	ix.packages = map[java.Package]map[string]*java.ClassSurface{}
	ix.missing = map[java.QualifiedName]bool{}
	ix.missingPackages = map[java.Package]bool{}
	ix.stats = Stats{Entries: len(entries)}
	ix.closed = false
	return nil
}

// Paths returns the classpath as configured, before expansion.
func (ix *Index) Paths() []string {
	return append([]string(nil), ix.paths...)
}

func (ix *Index) Entries() []Entry {
	return append([]Entry(nil), ix.entries...)
}

func (ix *Index) Stats() Stats {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.stats
}

func (ix *Index) resource(i int) (*Resource, error) {
	if ix.closed {
		return nil, errors.New("classpath index is closed")
	}
	if ix.resources[i] != nil {
		return ix.resources[i], nil
	}
	res, err := ix.entries[i].Open()
	if err != nil {
		return nil, err
	}
	log.Debugf("opened %s %s", res.Kind, res.Path)
	ix.resources[i] = res
	ix.stats.Opened++
	return res, nil
}

// Load returns the surface of the named class, or nil if no classpath
// entry holds a public class by that name. The first entry that has the
// class file wins, as with the JVM.
func (ix *Index) Load(name java.QualifiedName) (*java.ClassSurface, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if surface, ok := ix.packages[name.Package][name.Name]; ok {
		ix.stats.CacheHits++
		return surface, nil
	}
	if ix.missing[name] {
		ix.stats.CacheHits++
		return nil, nil
	}

	surface, err := ix.search(name)
	if err != nil {
		return nil, err
	}
	if surface == nil {
		ix.missing[name] = true
		ix.stats.Missing++
		return nil, nil
	}

	classes := ix.packages[name.Package]
	if classes == nil {
		classes = map[string]*java.ClassSurface{}
		ix.packages[name.Package] = classes
	}
	classes[name.Name] = surface
	delete(ix.missingPackages, name.Package)
	return surface, nil
}

func (ix *Index) search(name java.QualifiedName) (*java.ClassSurface, error) {
	path := name.StoragePath()
	for i := range ix.entries {
		res, err := ix.resource(i)
		if err != nil {
			return nil, err
		}

		rc, err := res.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Errorf("reading %s from %s: %w", path, res.Path, err)
		}
		cf, err := classfile.Parse(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Errorf("decoding %s from %s: %w", path, res.Path, err)
		}
		ix.stats.Decoded++

		found := java.ParseInternalName(cf.ClassName())
		if found != name {
			return nil, &IntegrityError{Requested: name.String(), Found: found.String(), Resource: res.Path}
		}
		if !cf.IsPublic() {
			log.Debugf("%s in %s is not public", name, res.Path)
			return nil, nil
		}
		log.Debugf("decoded %s from %s", name, res.Path)
		return java.ClassSurfaceFromClassFile(cf), nil
	}
	return nil, nil
}

// FindPackage reports whether any classpath entry has a directory for
// pkg. Contents of the package are not loaded.
func (ix *Index) FindPackage(pkg java.Package) (bool, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.packages[pkg]; ok {
		ix.stats.CacheHits++
		return true, nil
	}
	if ix.missingPackages[pkg] {
		ix.stats.CacheHits++
		return false, nil
	}

	for i := range ix.entries {
		res, err := ix.resource(i)
		if err != nil {
			return false, err
		}
		if res.HasDir(pkg.Path()) {
			ix.packages[pkg] = map[string]*java.ClassSurface{}
			return true, nil
		}
	}
	ix.missingPackages[pkg] = true
	return false, nil
}

// Close releases every opened resource. Closing twice is a no-op.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.closed {
		return nil
	}
	ix.closed = true

	var result *multierror.Error
	for i, res := range ix.resources {
		if res == nil {
			continue
		}
		if err := res.Close(); err != nil {
			result = multierror.Append(result, errors.Errorf("closing %s: %w", res.Path, err))
		}
		ix.resources[i] = nil
	}
	return result.ErrorOrNil()
}

func (ix *Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(ix.paths)
}

// UnmarshalJSON expands the decoded path list again. Caches start empty.
func (ix *Index) UnmarshalJSON(data []byte) error {
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return err
	}
	return ix.init(context.Background(), paths)
}
