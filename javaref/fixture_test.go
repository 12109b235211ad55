package javaref

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javalink/classfile"
	"github.com/dhamidi/javalink/classfile/classfiletest"
	"github.com/dhamidi/javalink/classpath"
	"github.com/dhamidi/javalink/docroot"
)

func fixtureClasses() []classfiletest.Class {
	return []classfiletest.Class{
		classfiletest.Public("com/example/Foo",
			[]classfiletest.Field{classfiletest.F("COUNT", "I")},
			classfiletest.M("<init>", "()V"),
			classfiletest.M("bar", "(I)V"),
			classfiletest.M("bar", "(ILjava/lang/String;)V"),
			classfiletest.Method{Name: "sum", Descriptor: "([I)I", Access: classfile.AccPublic | classfile.AccVarargs},
		),
		classfiletest.Public("com/example/Foo$Inner", nil, classfiletest.M("<init>", "(Lcom/example/Foo;)V")),
		classfiletest.Public("com/example/Outer$Mid$Deep", nil),
		classfiletest.Public("java/lang/String", nil, classfiletest.M("length", "()I")),
		classfiletest.Public("java/util/Map$Entry", nil, classfiletest.M("getKey", "()Ljava/lang/Object;")),
		classfiletest.Public("a/Foo", nil),
		classfiletest.Public("b/Foo", nil),
		classfiletest.Public("b/Bar", nil),
		classfiletest.Public("Toplevel", nil),
	}
}

func newIndex(t *testing.T) *classpath.Index {
	t.Helper()
	dir := classfiletest.WriteDir(t, t.TempDir(), fixtureClasses()...)
	ix, err := classpath.New(context.Background(), []string{dir})
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })
	return ix
}

type sessionFixture struct {
	session *Session
	srcdir  string
	apidir  string
}

// newSession returns a session over the fixture classes. java.lang and
// java.util are documented by a local docroot at version 7, com.example by
// a remote base at version 8.
func newSession(t *testing.T) sessionFixture {
	t.Helper()
	root := t.TempDir()
	classes := classfiletest.WriteJar(t, filepath.Join(root, "fixture.jar"), fixtureClasses()...)

	srcdir := filepath.Join(root, "docs")
	apidir := filepath.Join(srcdir, "api")
	require.NoError(t, os.MkdirAll(apidir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(apidir, "package-list"), []byte("java.lang\njava.util\n"), 0o644))

	modern := filepath.Join(root, "modern")
	require.NoError(t, os.MkdirAll(modern, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modern, "package-list"), []byte("com.example\n"), 0o644))

	t.Chdir(srcdir)

	s := NewSession(Options{
		Classpath: []string{classes},
		Docroots: []docroot.Docroot{
			{Root: "api"},
			{Root: modern, Base: "https://example.com/api/", Version: 8},
		},
		Titles: DefaultTitleOptions(),
		SrcDir: srcdir,
	})
	t.Cleanup(func() { s.Close() })
	return sessionFixture{session: s, srcdir: srcdir, apidir: apidir}
}
