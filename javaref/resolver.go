// Package javaref resolves javadoc style references such as
// "java.util.Map.Entry#getKey()" against a classpath and turns them into
// documentation links.
package javaref

import (
	"strings"

	"github.com/dhamidi/javalink/java"
)

// Classes is what the resolver needs from a classpath index. A nil
// surface without an error means the class does not exist.
type Classes interface {
	Load(name java.QualifiedName) (*java.ClassSurface, error)
	FindPackage(pkg java.Package) (bool, error)
}

// PackageSummary is the class name used for a package's overview page.
const PackageSummary = "package-summary"

// Target is a resolved reference: a class and possibly one of its members,
// or the overview page of a package.
type Target struct {
	Class  java.QualifiedName
	Member java.Member
}

func (t Target) IsPackageSummary() bool {
	return t.Class.Name == PackageSummary
}

// Fragment is the member part of the target, "" for classes and packages.
func (t Target) Fragment() string {
	if t.Member == nil {
		return ""
	}
	return t.Member.Fragment()
}

func (t Target) String() string {
	if t.Member == nil {
		return t.Class.String()
	}
	return t.Class.String() + "#" + t.Member.Fragment()
}

type Resolver struct {
	Classes Classes
}

// Resolve resolves ref in a document with the given imports. Failing
// lookups yield *UnresolvedError or *UnknownMemberError; other errors come
// from the classpath.
func (r *Resolver) Resolve(ref string, imports []Import) (Target, error) {
	ref = strings.TrimSpace(ref)
	where, what, _ := strings.Cut(ref, "#")
	if !java.IsValidName(where) {
		return Target{}, &UnresolvedError{Ref: ref}
	}

	class, err := r.FindClass(where, imports)
	if err != nil {
		return Target{}, err
	}
	if class != nil {
		target := Target{Class: class.Name}
		if what != "" {
			member, ok := class.FindMember(what)
			if !ok {
				return Target{}, &UnknownMemberError{Ref: ref}
			}
			target.Member = member
		}
		return target, nil
	}

	if what == "" && where != "" {
		pkg := java.ParsePackage(where)
		ok, err := r.Classes.FindPackage(pkg)
		if err != nil {
			return Target{}, err
		}
		if ok {
			return Target{Class: java.QualifiedName{Package: pkg, Name: PackageSummary}}, nil
		}
	}

	return Target{}, &UnresolvedError{Ref: ref}
}

// FindClass looks up where as written and then under every import that
// could apply to it: imports of its leading name and wildcard imports, in
// the order they were made. Each candidate is also tried as a nested class,
// turning dots into "$" from the right.
// Text that is not a dotted Java name finds nothing.
func (r *Resolver) FindClass(where string, imports []Import) (*java.ClassSurface, error) {
	if !java.IsValidName(where) {
		return nil, nil
	}

	leading, _, _ := strings.Cut(where, ".")
	candidates := []string{where}
	for _, imp := range imports {
		if imp.Name == leading || imp.IsWildcard() {
			candidates = append(candidates, java.ParsePackage(imp.Package).Qualify(where))
		}
	}

	for _, name := range candidates {
		class, err := r.load(name)
		if class != nil || err != nil {
			return class, err
		}

		sep := strings.LastIndexByte(name, '.')
		for sep >= 0 {
			name = name[:sep] + "$" + name[sep+1:]
			class, err := r.load(name)
			if class != nil || err != nil {
				return class, err
			}
			sep = strings.LastIndexByte(name[:sep], '.')
		}
	}
	return nil, nil
}

func (r *Resolver) load(name string) (*java.ClassSurface, error) {
	return r.Classes.Load(java.ParseName(name))
}
