package classpath

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javalink/classfile/classfiletest"
)

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	classes := filepath.Join(dir, "classes")
	require.NoError(t, os.Mkdir(classes, 0o755))

	lib := filepath.Join(dir, "lib")
	require.NoError(t, os.Mkdir(lib, 0o755))
	classfiletest.WriteJar(t, filepath.Join(lib, "a.jar"), fooClass)
	classfiletest.WriteJar(t, filepath.Join(lib, "B.ZIP"), fooClass)
	require.NoError(t, os.WriteFile(filepath.Join(lib, "notes.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(lib, "sub.jar"), 0o755))

	bare := classfiletest.WriteJar(t, filepath.Join(dir, "bundle"), fooClass)

	entries, err := Expand(context.Background(), []string{
		classes,
		filepath.Join(lib, "*"),
		bare,
	})
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Path: classes, Kind: Directory},
		{Path: filepath.Join(lib, "B.ZIP"), Kind: Archive},
		{Path: filepath.Join(lib, "a.jar"), Kind: Archive},
		{Path: bare, Kind: Archive},
	}, entries)
}

func TestEntryJSON(t *testing.T) {
	data, err := json.Marshal([]Entry{{Path: "/c", Kind: Directory}, {Path: "/a.jar", Kind: Archive}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"path":"/c","kind":"dir"},{"path":"/a.jar","kind":"jar"}]`, string(data))
}

func TestExpandInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "readme.txt")
	require.NoError(t, os.WriteFile(text, []byte("plain text, not an archive"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing")},
		{"not an archive", text},
		{"wildcard in missing dir", filepath.Join(dir, "nodir", "*")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(context.Background(), []string{tt.path})
			var invalid *InvalidEntryError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestResourceMissingEntries(t *testing.T) {
	dir := t.TempDir()
	classes := classfiletest.WriteDir(t, filepath.Join(dir, "classes"), fooClass)
	jar := classfiletest.WriteJar(t, filepath.Join(dir, "x.jar"), fooClass)

	for _, entry := range []Entry{{Path: classes, Kind: Directory}, {Path: jar, Kind: Archive}} {
		t.Run(entry.Kind.String(), func(t *testing.T) {
			res, err := entry.Open()
			require.NoError(t, err)
			defer res.Close()

			rc, err := res.Open("com/example/Foo.class")
			require.NoError(t, err)
			rc.Close()

			for _, name := range []string{"com/example/Bar.class", "com/example", "../escape.class"} {
				_, err := res.Open(name)
				assert.ErrorIs(t, err, os.ErrNotExist, name)
			}

			assert.True(t, res.HasDir("com/example/"))
			assert.True(t, res.HasDir(""))
			assert.False(t, res.HasDir("com/example/Foo.class"))
			assert.False(t, res.HasDir("org/"))
		})
	}
}

func TestFindRTJar(t *testing.T) {
	home := t.TempDir()
	lib := filepath.Join(home, "jre", "lib")
	require.NoError(t, os.MkdirAll(lib, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "rt.jar"), nil, 0o644))

	got, err := FindRTJar(home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(lib, "rt.jar"), got)

	t.Setenv("JAVA_HOME", home)
	got, err = FindRTJar("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(lib, "rt.jar"), got)

	_, err = FindRTJar(t.TempDir())
	assert.Error(t, err)
}
