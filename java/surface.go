package java

import (
	"regexp"
	"strings"
)

// Member is a link target inside a class.
type Member interface {
	// Fragment is the member as it appears in a documentation anchor:
	// "MAX_VALUE" or "bar(int, java.lang.String)".
	Fragment() string
}

type Field struct {
	Name string
}

func (f Field) Fragment() string {
	return f.Name
}

type Method struct {
	// Name is the display name. Constructors carry the simple name of
	// their class instead of "<init>".
	Name      string
	Arguments []Argument
}

func (m Method) Fragment() string {
	args := make([]string, len(m.Arguments))
	for i, arg := range m.Arguments {
		args[i] = arg.String()
	}
	return m.Name + "(" + strings.Join(args, ", ") + ")"
}

// matches reports whether args, as written by a caller, select this method.
func (m Method) matches(args []string) bool {
	if len(args) != len(m.Arguments) {
		return false
	}
	for i, arg := range args {
		if !m.Arguments[i].Matches(arg) {
			return false
		}
	}
	return true
}

// ClassSurface is the linkable part of a public class: its fields and the
// methods that documentation can point at. It is built once from a decoded
// class file and never changes afterwards.
type ClassSurface struct {
	Name    QualifiedName
	Fields  []Field
	Methods []Method
}

// FullName is the dotted binary name, "java.util.Map$Entry".
func (c *ClassSurface) FullName() string {
	return c.Name.String()
}

func (c *ClassSurface) Package() Package {
	return c.Name.Package
}

func (c *ClassSurface) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var memberPattern = regexp.MustCompile(`^(.+?)(?:\((.*)\))?$`)

// FindMember looks up a member reference such as "MAX_VALUE", "bar" or
// "bar(int, String)". A field with exactly that name wins. Without an
// argument list the first method with the name is returned, overloads
// are not told apart.
func (c *ClassSurface) FindMember(what string) (Member, bool) {
	if f, ok := c.Field(what); ok {
		return f, true
	}

	m := memberPattern.FindStringSubmatchIndex(what)
	if m == nil {
		return nil, false
	}
	name := what[m[2]:m[3]]
	var args []string
	if m[4] >= 0 {
		args = SplitArguments(what[m[4]:m[5]])
	}

	for _, method := range c.Methods {
		if method.Name != name {
			continue
		}
		if args == nil || method.matches(args) {
			return method, true
		}
	}
	return nil, false
}
