package docroot

import (
	"sort"

	"github.com/dhamidi/javalink/java"
)

// Entry is where a package is documented.
type Entry struct {
	Base    string `json:"base"`
	Version int    `json:"version"`
}

// Registry maps package names to their documentation. The first docroot
// to list a package keeps it.
type Registry struct {
	packages map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{packages: map[string]Entry{}}
}

// Add records pkg unless it is already known and reports whether it did.
func (r *Registry) Add(pkg string, e Entry) bool {
	if _, ok := r.packages[pkg]; ok {
		return false
	}
	r.packages[pkg] = e
	return true
}

func (r *Registry) Lookup(pkg java.Package) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	e, ok := r.packages[pkg.Name()]
	return e, ok
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.packages)
}

// Packages returns the registered package names, sorted.
func (r *Registry) Packages() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.packages))
	for name := range r.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
