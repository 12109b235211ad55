// Package config reads javalink.yaml, the configuration of one
// documentation project.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dhamidi/javalink/classpath"
	"github.com/dhamidi/javalink/docroot"
	"github.com/dhamidi/javalink/javaref"
	"github.com/tliron/commonlog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up when none is given.
const FileName = "javalink.yaml"

var log = commonlog.GetLogger("javalink.config")

type Config struct {
	// Dir is the directory relative paths are resolved against. It is the
	// absolute directory of the file the configuration was read from.
	Dir string `yaml:"-"`

	SrcDir       string               `yaml:"srcdir"`
	Classpath    []string             `yaml:"classpath"`
	RTJar        bool                 `yaml:"rt_jar"`
	JavaHome     string               `yaml:"java_home"`
	Docroots     []docroot.Docroot    `yaml:"docroots"`
	Titles       javaref.TitleOptions `yaml:"titles"`
	FetchTimeout time.Duration        `yaml:"fetch_timeout"`
}

func Default() *Config {
	return &Config{
		Dir:          ".",
		SrcDir:       ".",
		Titles:       javaref.DefaultTitleOptions(),
		FetchTimeout: 10 * time.Second,
	}
}

// Load reads the configuration at path. An empty path means LoadDir(".").
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadDir(".")
	}
	return load(path)
}

// LoadDir reads javalink.yaml in dir. Defaults are used when the file does
// not exist.
func LoadDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Debugf("no %s in %s, using defaults", FileName, dir)
		cfg := Default()
		if cfg.Dir, err = filepath.Abs(dir); err != nil {
			return nil, errors.Errorf("config dir: %w", err)
		}
		return cfg, nil
	}
	return load(path)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Errorf("%s: %w", path, err)
	}
	if cfg.Dir, err = filepath.Abs(filepath.Dir(path)); err != nil {
		return nil, errors.Errorf("config dir: %w", err)
	}
	log.Infof("loaded %s", path)
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Errorf("parse config: %w", err)
	}
	if cfg.FetchTimeout < 0 {
		return nil, errors.Errorf("fetch_timeout must not be negative, got %s", cfg.FetchTimeout)
	}
	return cfg, nil
}

// Resolve returns the absolute form of a path in the configuration, which
// is relative to Dir.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	joined := filepath.Join(c.Dir, path)
	if abs, err := filepath.Abs(joined); err == nil {
		return abs
	}
	return joined
}

// ClasspathEntries is the classpath with relative entries resolved and the
// JDK runtime prepended when rt_jar is set.
func (c *Config) ClasspathEntries() ([]string, error) {
	var entries []string
	if c.RTJar {
		rt, err := classpath.FindRTJar(c.Resolve(c.JavaHome))
		if err != nil {
			return nil, err
		}
		entries = append(entries, rt)
	}
	for _, p := range c.Classpath {
		entries = append(entries, c.Resolve(p))
	}
	return entries, nil
}

// DocrootList resolves local docroots against Dir. Unless a base is given,
// links into a local docroot are relative to the source directory, which
// is what links without a scheme are taken to be relative to.
func (c *Config) DocrootList() []docroot.Docroot {
	srcdir := c.Resolve(c.SrcDir)
	roots := make([]docroot.Docroot, len(c.Docroots))
	for i, d := range c.Docroots {
		if !isURL(d.Root) {
			d.Root = c.Resolve(d.Root)
			if d.Base == "" {
				d.Base = localBase(srcdir, d.Root)
			}
		}
		roots[i] = d
	}
	return roots
}

func localBase(srcdir, root string) string {
	rel, err := filepath.Rel(srcdir, root)
	if err != nil {
		return (&url.URL{Scheme: "file", Path: filepath.ToSlash(root)}).String()
	}
	return filepath.ToSlash(rel)
}

func (c *Config) SessionOptions() (javaref.Options, error) {
	cp, err := c.ClasspathEntries()
	if err != nil {
		return javaref.Options{}, err
	}
	return javaref.Options{
		Classpath:    cp,
		Docroots:     c.DocrootList(),
		Titles:       c.Titles,
		SrcDir:       c.Resolve(c.SrcDir),
		FetchTimeout: c.FetchTimeout,
	}, nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && len(u.Scheme) > 1
}
