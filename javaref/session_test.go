package javaref

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javalink/classfile/classfiletest"
	"github.com/dhamidi/javalink/docroot"
)

func TestRenderEndToEnd(t *testing.T) {
	f := newSession(t)
	ctx := context.Background()

	link, err := f.session.Render(ctx, "index", f.srcdir, "com.example.Foo#bar(int)")
	require.NoError(t, err)
	assert.Empty(t, link.Warnings)
	assert.Equal(t, "com.example.Foo.bar(int)", link.Title)
	assert.Equal(t, "https://example.com/api/com/example/Foo.html#bar-int-", link.URL)
	assert.Equal(t, "com.example.Foo#bar(int)", link.Target)

	link, err = f.session.Render(ctx, "index", f.srcdir, "com.example.Bar")
	require.NoError(t, err)
	assert.False(t, link.Linked())
	assert.Equal(t, "com.example.Bar", link.Title)
	assert.Equal(t, []string{"reference not found: com.example.Bar"}, link.Warnings)
}

func TestRenderLocalDocroot(t *testing.T) {
	f := newSession(t)
	ctx := context.Background()

	link, err := f.session.Render(ctx, "index", f.srcdir, "String#length()")
	require.NoError(t, err)
	assert.Equal(t, "api/java/lang/String.html#length()", link.URL)
	assert.Equal(t, "java.lang.String.length()", link.Title)

	link, err = f.session.Render(ctx, "guide/intro", filepath.Join(f.srcdir, "guide"), "java.util.Map.Entry")
	require.NoError(t, err)
	assert.Equal(t, "../api/java/util/Map.Entry.html", link.URL)
	assert.Equal(t, "java.util.Map.Entry", link.Title)
}

func TestRenderExplicitTitle(t *testing.T) {
	f := newSession(t)
	ctx := context.Background()

	link, err := f.session.Render(ctx, "index", f.srcdir, "the foo class <com.example.Foo>")
	require.NoError(t, err)
	assert.Equal(t, "the foo class", link.Title)
	assert.Equal(t, "https://example.com/api/com/example/Foo.html", link.URL)

	link, err = f.session.Render(ctx, "index", f.srcdir, "broken <com.example.Nope>")
	require.NoError(t, err)
	assert.Equal(t, "broken", link.Title)
	assert.False(t, link.Linked())
	assert.Len(t, link.Warnings, 1)
}

func TestRenderMissingDocroot(t *testing.T) {
	f := newSession(t)

	link, err := f.session.Render(context.Background(), "index", f.srcdir, "a.Foo")
	require.NoError(t, err)
	assert.False(t, link.Linked())
	assert.Equal(t, []string{"root URL not found: a.Foo"}, link.Warnings)
}

func TestSessionImports(t *testing.T) {
	f := newSession(t)
	ctx := context.Background()

	require.NoError(t, f.session.Import(ctx, "index", "com.example.Foo"))
	require.NoError(t, f.session.Import(ctx, "index", "java.util.*"))
	require.NoError(t, f.session.Import(ctx, "index", "com.example.Foo"))

	err := f.session.Import(ctx, "index", "com.example.Missing")
	var unresolved *UnresolvedImportError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "unresolved import 'com.example.Missing'", err.Error())

	err = f.session.Import(ctx, "index", "org.none.*")
	require.ErrorAs(t, err, &unresolved)

	assert.Equal(t, []Import{
		{Package: "java.lang", Name: "*"},
		{Package: "com.example", Name: "Foo"},
		{Package: "java.util", Name: "*"},
	}, f.session.Imports().For("index"))

	link, err := f.session.Render(ctx, "index", f.srcdir, "Foo.Inner")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api/com/example/Foo.Inner.html", link.URL)

	link, err = f.session.Render(ctx, "other", f.srcdir, "Foo")
	require.NoError(t, err)
	assert.False(t, link.Linked())

	f.session.Purge("index")
	link, err = f.session.Render(ctx, "index", f.srcdir, "Foo")
	require.NoError(t, err)
	assert.False(t, link.Linked())
}

func TestSessionMerge(t *testing.T) {
	f := newSession(t)
	ctx := context.Background()

	worker := NewSession(f.session.Options())
	defer worker.Close()
	require.NoError(t, worker.Import(ctx, "chapter", "com.example.Foo"))

	f.session.Merge(worker, "chapter")
	link, err := f.session.Render(ctx, "chapter", f.srcdir, "Foo")
	require.NoError(t, err)
	assert.True(t, link.Linked())
}

func TestReconfigure(t *testing.T) {
	f := newSession(t)
	ctx := context.Background()

	first, err := f.session.Index(ctx)
	require.NoError(t, err)
	registry := f.session.Registry(ctx)

	opts := f.session.Options()
	opts.Titles = TitleOptions{}
	require.NoError(t, f.session.Reconfigure(opts))

	same, err := f.session.Index(ctx)
	require.NoError(t, err)
	assert.Same(t, first, same)
	assert.Same(t, registry, f.session.Registry(ctx))

	link, err := f.session.Render(ctx, "index", f.srcdir, "com.example.Foo#bar(int)")
	require.NoError(t, err)
	assert.Equal(t, "Foo.bar", link.Title)

	extra := classfiletest.WriteDir(t, t.TempDir(), classfiletest.Public("org/extra/Thing", nil))
	opts.Classpath = append([]string{extra}, opts.Classpath...)
	opts.Docroots = append(opts.Docroots, docroot.Docroot{Root: filepath.Join(t.TempDir(), "none")})
	require.NoError(t, f.session.Reconfigure(opts))

	second, err := f.session.Index(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.NotSame(t, registry, f.session.Registry(ctx))

	_, err = f.session.Resolve(ctx, "index", "org.extra.Thing")
	assert.NoError(t, err)
}

func TestSessionInvalidClasspath(t *testing.T) {
	s := NewSession(Options{Classpath: []string{filepath.Join(t.TempDir(), "missing")}})
	defer s.Close()

	_, err := s.Render(context.Background(), "index", "", "java.lang.String")
	require.Error(t, err)
	assert.False(t, IsRecoverable(err))
}
