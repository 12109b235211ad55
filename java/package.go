package java

import (
	"strings"
	"unicode"
)

// Package is a Java package name. The zero value is the default package.
// Packages are comparable and are used as map keys.
type Package struct {
	name string
}

func NewPackage(parts ...string) Package {
	return Package{name: strings.Join(parts, ".")}
}

// ParsePackage parses a dotted package name such as "java.util".
func ParsePackage(name string) Package {
	return Package{name: strings.Trim(name, ".")}
}

func (p Package) Name() string {
	return p.name
}

func (p Package) String() string {
	return p.name
}

func (p Package) IsDefault() bool {
	return p.name == ""
}

func (p Package) Parts() []string {
	if p.name == "" {
		return nil
	}
	return strings.Split(p.name, ".")
}

// Path returns the storage path of the package inside a class tree, with a
// trailing slash: "java/util/". The default package has the empty path.
func (p Package) Path() string {
	if p.name == "" {
		return ""
	}
	return strings.ReplaceAll(p.name, ".", "/") + "/"
}

// MemberPath returns the storage path of a file inside the package.
func (p Package) MemberPath(name string) string {
	return p.Path() + name
}

// Qualify returns the dotted name of a member of the package.
func (p Package) Qualify(name string) string {
	if p.name == "" {
		return name
	}
	return p.name + "." + name
}

// QualifiedName is a class name split into its package and its simple
// binary name. Nested classes keep their "$" separators in Name:
// {java.util, Map$Entry}.
type QualifiedName struct {
	Package Package
	Name    string
}

// ParseName splits a dotted name at its last dot. The part after the dot is
// always the simple name.
func ParseName(name string) QualifiedName {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return QualifiedName{Name: name}
	}
	return QualifiedName{Package: ParsePackage(name[:i]), Name: name[i+1:]}
}

// ParseInternalName parses a name in classfile form, "java/util/Map$Entry".
func ParseInternalName(name string) QualifiedName {
	return ParseName(strings.ReplaceAll(name, "/", "."))
}

// String returns the dotted binary name, "java.util.Map$Entry".
func (q QualifiedName) String() string {
	return q.Package.Qualify(q.Name)
}

// StoragePath is the path of the class file inside a class tree.
func (q QualifiedName) StoragePath() string {
	return q.Package.MemberPath(q.Name + ".class")
}

// SimpleName is the innermost part of a nested name: "Entry" for Map$Entry.
func (q QualifiedName) SimpleName() string {
	return q.Name[strings.LastIndexByte(q.Name, '$')+1:]
}

// SourceName is the name with nesting written the way Java source does:
// "Map.Entry".
func (q QualifiedName) SourceName() string {
	return strings.ReplaceAll(q.Name, "$", ".")
}

// IsValidName reports whether name is a dotted sequence of Java
// identifiers, such as "java.util.Map.Entry" or "Map$Entry".
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if !isIdentifier(segment) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c == '$' || unicode.IsLetter(c):
		case i > 0 && unicode.IsDigit(c):
		default:
			return false
		}
	}
	return true
}
