package javaref

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/javalink/docroot"
	"github.com/dhamidi/javalink/java"
)

// Registry tells where a package is documented.
type Registry interface {
	Lookup(pkg java.Package) (docroot.Entry, bool)
}

// URL builds the documentation link of t from the docroot that lists its
// package.
func URL(registry Registry, t Target) (string, error) {
	entry, ok := registry.Lookup(t.Class.Package)
	if !ok {
		return "", &MissingDocrootError{Class: t.Class.String()}
	}
	return entry.Base + DocPath(t) + Anchor(t.Fragment(), entry.Version), nil
}

// DocPath is the page of the target relative to its docroot:
// "java/util/Map.Entry.html".
func DocPath(t Target) string {
	path := strings.ReplaceAll(t.Class.String(), ".", "/")
	return strings.ReplaceAll(path, "$", ".") + ".html"
}

var javadoc8Anchor = strings.NewReplacer("(", "-", ")", "-", ", ", "-")

// Anchor returns the "#..." suffix for a member fragment. Javadoc 8 and
// later write "bar-int-java.lang.String-" where older versions wrote
// "bar(int, java.lang.String)".
func Anchor(fragment string, version int) string {
	if fragment == "" {
		return ""
	}
	if version >= 8 {
		fragment = javadoc8Anchor.Replace(fragment)
	}
	return "#" + quote(fragment)
}

const anchorSafe = "_.-;/?:@&=+$,()"

// quote percent-encodes every byte outside the ASCII letters, digits and
// anchorSafe.
func quote(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlnum(c) || strings.IndexByte(anchorSafe, c) >= 0 {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte("0123456789ABCDEF"[c>>4])
		sb.WriteByte("0123456789ABCDEF"[c&15])
	}
	return sb.String()
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// Relativize rewrites a link without a scheme, which is relative to the
// documentation source root, so that it is relative to docdir instead.
// Relative directories are taken from the working directory.
func Relativize(link, srcdir, docdir string) string {
	if u, err := url.Parse(link); err == nil && u.Scheme != "" {
		return link
	}
	if srcdir == "" || docdir == "" {
		return link
	}
	src, err := filepath.Abs(srcdir)
	if err != nil {
		return link
	}
	doc, err := filepath.Abs(docdir)
	if err != nil {
		return link
	}
	rel, err := filepath.Rel(doc, src)
	if err != nil || rel == "." {
		return link
	}
	return filepath.ToSlash(rel) + "/" + link
}
