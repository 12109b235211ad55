package classfile

import "strings"

// ParseMethodSignature extracts the parameter types of a generic method
// signature such as "<T:Ljava/lang/Object;>(TT;Ljava/util/List<TT;>;[I)V".
//
// Type variables are returned by name ("T"), class types by their raw
// source name with type arguments dropped ("java.util.List"), arrays with
// a "[]" suffix per dimension. A malformed signature yields nil.
func ParseMethodSignature(sig string) []string {
	start := strings.IndexByte(sig, '(')
	if start < 0 {
		return nil
	}
	s := sig[start+1:]

	params := []string{}
	for len(s) > 0 && s[0] != ')' {
		param, rest, ok := nextSignatureType(s)
		if !ok {
			return nil
		}
		params = append(params, param)
		s = rest
	}
	if len(s) == 0 {
		return nil
	}
	return params
}

func nextSignatureType(s string) (string, string, bool) {
	if s == "" {
		return "", "", false
	}
	if base, ok := baseTypes[s[0]]; ok {
		return base, s[1:], true
	}
	switch s[0] {
	case 'T':
		end := strings.IndexByte(s, ';')
		if end < 0 {
			return "", "", false
		}
		return s[1:end], s[end+1:], true
	case 'L':
		return nextClassTypeSignature(s[1:])
	case '[':
		elem, rest, ok := nextSignatureType(s[1:])
		if !ok {
			return "", "", false
		}
		return elem + "[]", rest, true
	default:
		return "", "", false
	}
}

// nextClassTypeSignature consumes a class type signature after its leading
// 'L'. Type arguments are skipped with nesting tracked, so the "." of an
// inner class that follows them ("Outer<TT;>.Inner;") stays part of the name.
func nextClassTypeSignature(s string) (string, string, bool) {
	var name strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '<':
			depth++
		case c == '>':
			depth--
			if depth < 0 {
				return "", "", false
			}
		case depth > 0:
		case c == ';':
			return name.String(), s[i+1:], true
		case c == '/' || c == '$':
			name.WriteByte('.')
		default:
			name.WriteByte(c)
		}
	}
	return "", "", false
}
