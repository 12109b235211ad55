// Package docroot maps Java packages to the documentation that describes
// them. Each configured docroot publishes a manifest listing its packages;
// the manifests are merged into a Registry.
package docroot

import (
	"net/url"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultVersion is assumed for docroots that do not say which javadoc
// produced them. It selects literal "name(Type, Type)" anchors.
const DefaultVersion = 7

// Docroot is one configured documentation root. Root is a URL or a local
// path and is where the manifest is read from. Base, when set, replaces the
// root as the prefix of generated links.
type Docroot struct {
	Root    string `yaml:"root" json:"root"`
	Base    string `yaml:"base,omitempty" json:"base,omitempty"`
	Version int    `yaml:"version,omitempty" json:"version,omitempty"`
}

// UnmarshalYAML accepts either a plain string or a mapping.
func (d *Docroot) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*d = Docroot{Root: node.Value}
		return nil
	}
	type plain Docroot
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.Root == "" {
		return errors.Errorf("line %d: docroot needs a root", node.Line)
	}
	*d = Docroot(p)
	return nil
}

// Location is a docroot resolved into the URL its manifest lives under and
// the base that links are built on. Both end in a slash.
type Location struct {
	ManifestRoot string
	Base         string
	Version      int
}

// Manifests lists the manifest URLs to try, in order. Javadoc 10 and later
// write element-list, older versions package-list.
func (l Location) Manifests() []string {
	if l.Version >= 10 {
		return []string{l.ManifestRoot + "element-list", l.ManifestRoot + "package-list"}
	}
	return []string{l.ManifestRoot + "package-list"}
}

func (d Docroot) Locate() (Location, error) {
	manifest, base, err := locate(d.Root)
	if err != nil {
		return Location{}, err
	}
	if d.Base != "" {
		if _, base, err = locate(d.Base); err != nil {
			return Location{}, err
		}
	}
	version := d.Version
	if version == 0 {
		version = DefaultVersion
	}
	return Location{ManifestRoot: manifest, Base: base, Version: version}, nil
}

// locate maps a URL to itself with a trailing slash. A local path maps to a
// file URL of its absolute form for reading the manifest, and to the path
// as given for building links.
func locate(root string) (manifest, base string, err error) {
	if root == "" {
		return "", "", errors.New("empty docroot")
	}
	u, err := url.Parse(root)
	if err == nil && u.Scheme != "" && !isDriveLetter(u.Scheme) {
		u.Path = strings.TrimRight(u.Path, "/") + "/"
		u.RawQuery = ""
		u.Fragment = ""
		u.RawPath = ""
		return u.String(), u.String(), nil
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", "", errors.Errorf("docroot %s: %w", root, err)
	}
	file := url.URL{Scheme: "file", Path: withSlash(filepath.ToSlash(abs))}
	if !strings.HasPrefix(file.Path, "/") {
		file.Path = "/" + file.Path
	}
	return file.String(), withSlash(filepath.ToSlash(root)), nil
}

func withSlash(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}

func isDriveLetter(scheme string) bool {
	return len(scheme) == 1
}
