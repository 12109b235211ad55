package java

import (
	"strings"
)

// Argument is one parameter type of a method. Erased is the type from the
// method descriptor, Generic the type from the method's generic signature
// when it has one. Both use source syntax ("java.util.Map.Entry", "int[]").
type Argument struct {
	Erased  string
	Generic string
	// Vararg marks the final parameter of a variable arity method.
	Vararg bool
}

// String returns the type as it is shown in documentation: the generic form
// when known, with a vararg array written as "T...".
func (a Argument) String() string {
	name := a.Erased
	if a.Generic != "" {
		name = a.Generic
	}
	if a.Vararg && strings.HasSuffix(name, "[]") {
		name = name[:len(name)-2] + "..."
	}
	return name
}

// Matches reports whether the type text a caller wrote names this argument.
// The text may omit any leading part of the qualified name, so "String"
// matches "java.lang.String". The erased form is tried before the generic.
func (a Argument) Matches(text string) bool {
	text = normalizeArgument(text)
	if text == "" {
		return false
	}
	if hasNameSuffix(a.Erased, text) {
		return true
	}
	return a.Generic != "" && hasNameSuffix(a.Generic, text)
}

func hasNameSuffix(name, suffix string) bool {
	parts := strings.Split(name, ".")
	want := strings.Split(suffix, ".")
	if len(want) > len(parts) {
		return false
	}
	parts = parts[len(parts)-len(want):]
	for i := range want {
		if parts[i] != want[i] {
			return false
		}
	}
	return true
}

func normalizeArgument(text string) string {
	text = stripTypeArguments(strings.TrimSpace(text))
	text = strings.Join(strings.Fields(text), "")
	return strings.ReplaceAll(text, "...", "[]")
}

func stripTypeArguments(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	var sb strings.Builder
	depth := 0
	for _, c := range text {
		switch {
		case c == '<':
			depth++
		case c == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// SplitArguments splits the text between the parentheses of a member
// reference into argument types. Commas nested in type arguments do not
// split. Empty text means an empty argument list.
func SplitArguments(text string) []string {
	args := []string{}
	if strings.TrimSpace(text) == "" {
		return args
	}
	depth, start := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(text[start:]))
}
