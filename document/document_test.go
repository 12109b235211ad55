package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Title
=====

.. javaimport::
   java.util.*
   com.example.Foo

   com.example.Bar

See :javaref:` + "`Foo#bar(int)`" + ` and :javaref:` + "`the list <List>`" + `.

.. note::
   Not an import.

Escaped :javaref:` + "`a\\<b`" + `, not a role: x:javaref:` + "`nope`" + `
Unicode ünï :javaref:` + "`Foo`" + `
`

func TestParse(t *testing.T) {
	doc := Parse("index.rst", []byte(sample))

	var texts []string
	for _, n := range doc.Nodes {
		texts = append(texts, n.Kind.String()+":"+n.Text)
	}
	assert.Equal(t, []string{
		"import:java.util.*",
		"import:com.example.Foo",
		"import:com.example.Bar",
		"ref:Foo#bar(int)",
		"ref:the list <List>",
		"ref:a<b",
		"ref:Foo",
	}, texts)

	require.Len(t, doc.Imports(), 3)
	require.Len(t, doc.Refs(), 4)

	assert.Equal(t, Range{Start: Position{4, 3}, End: Position{4, 14}}, doc.Nodes[0].Range)
	assert.Equal(t, Range{Start: Position{9, 4}, End: Position{9, 27}}, doc.Nodes[3].Range)
	assert.Equal(t, Range{Start: Position{15, 12}, End: Position{15, 26}}, doc.Nodes[6].Range)
}

func TestDirectiveEndsAtDedent(t *testing.T) {
	src := "  .. javaimport::\n     a.B\n  text :javaref:`B`\n"
	doc := Parse("x.rst", []byte(src))
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, KindImport, doc.Nodes[0].Kind)
	assert.Equal(t, KindRef, doc.Nodes[1].Kind)
}

func TestAt(t *testing.T) {
	doc := Parse("x.rst", []byte("see :javaref:`Foo` here"))

	n, ok := doc.At(Position{Line: 0, Character: 10})
	require.True(t, ok)
	assert.Equal(t, "Foo", n.Text)

	_, ok = doc.At(Position{Line: 0, Character: 2})
	assert.False(t, ok)
	_, ok = doc.At(Position{Line: 1, Character: 10})
	assert.False(t, ok)
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "a<b", Unescape(`a\<b`))
	assert.Equal(t, `a\b`, Unescape(`a\\b`))
	assert.Equal(t, "plain", Unescape("plain"))
}
