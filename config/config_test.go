package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/javalink/docroot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
srcdir: docs
classpath: [build/classes, lib/*, /opt/guava.jar]
docroots:
  - https://docs.oracle.com/javase/8/docs/api
  - {root: javadoc, version: 11}
  - {root: /srv/javadoc, base: https://example.com/api/}
titles:
  add_package_names: false
fetch_timeout: 3s
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.SrcDir)
	assert.Equal(t, []string{"build/classes", "lib/*", "/opt/guava.jar"}, cfg.Classpath)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.Titles.AddPackageNames)
	assert.True(t, cfg.Titles.QualifyNestedTypes, "unset toggles keep their default")
	assert.True(t, cfg.Titles.AddMethodParameters)
	require.Len(t, cfg.Docroots, 3)
	assert.Equal(t, docroot.Docroot{Root: "https://docs.oracle.com/javase/8/docs/api"}, cfg.Docroots[0])
	assert.Equal(t, docroot.Docroot{Root: "javadoc", Version: 11}, cfg.Docroots[1])
	assert.Equal(t, "https://example.com/api/", cfg.Docroots[2].Base)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "classpath: [a"},
		{"docroot without root", "docroots:\n  - {version: 8}\n"},
		{"bad timeout", "fetch_timeout: soon\n"},
		{"negative timeout", "fetch_timeout: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cwd, err := os.Getwd()
	require.NoError(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	want := Default()
	want.Dir = cwd
	assert.Equal(t, want, cfg)

	_, err = Load("missing.yaml")
	assert.Error(t, err, "an explicit path must exist")

	dir := t.TempDir()
	cfg, err = LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, ".", cfg.SrcDir)
}

func TestSessionOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)

	opts, err := cfg.SessionOptions()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "docs"), opts.SrcDir)
	assert.Equal(t, []string{
		filepath.Join(dir, "build/classes"),
		filepath.Join(dir, "lib/*"),
		"/opt/guava.jar",
	}, opts.Classpath)
	assert.Equal(t, 3*time.Second, opts.FetchTimeout)

	require.Len(t, opts.Docroots, 3)
	assert.Equal(t, "https://docs.oracle.com/javase/8/docs/api", opts.Docroots[0].Root)
	assert.Equal(t, docroot.Docroot{Root: filepath.Join(dir, "javadoc"), Base: "../javadoc", Version: 11}, opts.Docroots[1])
	assert.Equal(t, docroot.Docroot{Root: "/srv/javadoc", Base: "https://example.com/api/"}, opts.Docroots[2])
}

func TestRelativeConfigPaths(t *testing.T) {
	t.Chdir(t.TempDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(FileName, []byte("srcdir: docs\ndocroots: [docs/api, javadoc]\n"), 0o644))

	cfg, err := Load(FileName)
	require.NoError(t, err)
	assert.Equal(t, cwd, cfg.Dir)

	opts, err := cfg.SessionOptions()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "docs"), opts.SrcDir)
	assert.Equal(t, []docroot.Docroot{
		{Root: filepath.Join(cwd, "docs", "api"), Base: "api"},
		{Root: filepath.Join(cwd, "javadoc"), Base: "../javadoc"},
	}, opts.Docroots)
}

func TestRTJar(t *testing.T) {
	home := t.TempDir()
	rt := filepath.Join(home, "jre", "lib", "rt.jar")
	require.NoError(t, os.MkdirAll(filepath.Dir(rt), 0o755))
	require.NoError(t, os.WriteFile(rt, []byte("PK"), 0o644))

	cfg := Default()
	cfg.RTJar = true
	cfg.JavaHome = home
	cfg.Classpath = []string{"/classes"}

	entries, err := cfg.ClasspathEntries()
	require.NoError(t, err)
	assert.Equal(t, []string{rt, "/classes"}, entries)

	cfg.JavaHome = filepath.Join(home, "nope")
	_, err = cfg.ClasspathEntries()
	assert.Error(t, err)
}
