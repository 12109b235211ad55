// Package document finds javalink markup in reStructuredText sources:
// ".. javaimport::" directives and :javaref:`...` roles.
package document

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
	"unicode/utf16"
)

type Kind int

const (
	KindImport Kind = iota
	KindRef
)

func (k Kind) String() string {
	if k == KindImport {
		return "import"
	}
	return "ref"
}

// Position is zero based. Character counts UTF-16 code units, as editors
// speaking LSP expect.
type Position struct {
	Line      int
	Character int
}

type Range struct {
	Start Position
	End   Position
}

func (r Range) Contains(p Position) bool {
	if p.Line < r.Start.Line || p.Line > r.End.Line {
		return false
	}
	if p.Line == r.Start.Line && p.Character < r.Start.Character {
		return false
	}
	if p.Line == r.End.Line && p.Character > r.End.Character {
		return false
	}
	return true
}

// Node is one import line of a javaimport directive or one javaref role.
// Text is the import or the unescaped role content. Range covers the text
// of an import and the whole role including its markup.
type Node struct {
	Kind  Kind
	Text  string
	Range Range
}

type Document struct {
	Name  string
	Nodes []Node
}

func (d *Document) Imports() []Node {
	return d.filter(KindImport)
}

func (d *Document) Refs() []Node {
	return d.filter(KindRef)
}

func (d *Document) filter(kind Kind) []Node {
	var nodes []Node
	for _, n := range d.Nodes {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// At returns the node under p, if any.
func (d *Document) At(p Position) (Node, bool) {
	for _, n := range d.Nodes {
		if n.Range.Contains(p) {
			return n, true
		}
	}
	return Node{}, false
}

var (
	directivePattern = regexp.MustCompile(`^(\s*)\.\.\s+javaimport::\s*(.*)$`)
	rolePattern      = regexp.MustCompile("(?:^|[^\\w`]):javaref:`((?:[^`\\\\]|\\\\.)+)`")
)

// Parse scans src in order and returns its nodes in source order.
func Parse(name string, src []byte) *Document {
	doc := &Document{Name: name}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if m := directivePattern.FindStringSubmatchIndex(line); m != nil {
			indent := m[3] - m[2]
			if arg := strings.TrimSpace(line[m[4]:m[5]]); arg != "" {
				doc.addImport(i, line, arg)
			}
			i = doc.parseDirectiveBody(lines, i+1, indent) - 1
			continue
		}
		doc.parseRoles(i, line)
	}
	return doc
}

// parseDirectiveBody collects the indented lines following a directive and
// returns the index of the first line after the block.
func (d *Document) parseDirectiveBody(lines []string, start, indent int) int {
	i := start
	for ; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if leadingSpace(line) <= indent {
			break
		}
		d.addImport(i, line, trimmed)
	}
	return i
}

func (d *Document) addImport(lineNo int, line, text string) {
	start := strings.Index(line, text)
	d.Nodes = append(d.Nodes, Node{
		Kind: KindImport,
		Text: text,
		Range: Range{
			Start: Position{Line: lineNo, Character: utf16Len(line[:start])},
			End:   Position{Line: lineNo, Character: utf16Len(line[:start+len(text)])},
		},
	})
}

func (d *Document) parseRoles(lineNo int, line string) {
	for _, m := range rolePattern.FindAllStringSubmatchIndex(line, -1) {
		start := strings.Index(line[m[0]:m[1]], ":javaref:") + m[0]
		d.Nodes = append(d.Nodes, Node{
			Kind: KindRef,
			Text: Unescape(line[m[2]:m[3]]),
			Range: Range{
				Start: Position{Line: lineNo, Character: utf16Len(line[:start])},
				End:   Position{Line: lineNo, Character: utf16Len(line[:m[1]])},
			},
		})
	}
}

// Unescape removes reStructuredText backslash escapes.
func Unescape(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}
	var sb strings.Builder
	escaped := false
	for _, r := range text {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func leadingSpace(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}
