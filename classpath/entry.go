package classpath

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"gitlab.com/tozd/go/errors"
)

type Kind int

const (
	Directory Kind = iota
	Archive
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "dir"
	case Archive:
		return "jar"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one searchable location on an expanded classpath.
type Entry struct {
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
}

// Expand turns configured classpath entries into searchable resources,
// keeping their order. A "dir/*" entry expands to the jar and zip files in
// dir, in directory listing order.
func Expand(ctx context.Context, paths []string) ([]Entry, error) {
	var entries []Entry
	for _, path := range paths {
		expanded, err := expandEntry(ctx, path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, expanded...)
	}
	return entries, nil
}

func expandEntry(ctx context.Context, path string) ([]Entry, error) {
	if filepath.Base(path) == "*" {
		return expandWildcard(filepath.Dir(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &InvalidEntryError{Path: path, Err: err}
	}
	if info.IsDir() {
		return []Entry{{Path: path, Kind: Directory}}, nil
	}
	if !info.Mode().IsRegular() {
		return nil, &InvalidEntryError{Path: path}
	}
	if hasArchiveExt(path) {
		return []Entry{{Path: path, Kind: Archive}}, nil
	}

	ok, err := sniffZip(ctx, path)
	if err != nil {
		return nil, &InvalidEntryError{Path: path, Err: err}
	}
	if !ok {
		return nil, &InvalidEntryError{Path: path}
	}
	return []Entry{{Path: path, Kind: Archive}}, nil
}

func expandWildcard(dir string) ([]Entry, error) {
	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, &InvalidEntryError{Path: filepath.Join(dir, "*"), Err: err}
	}

	var entries []Entry
	for _, item := range listing {
		if item.IsDir() || !hasArchiveExt(item.Name()) {
			continue
		}
		entries = append(entries, Entry{Path: filepath.Join(dir, item.Name()), Kind: Archive})
	}
	return entries, nil
}

func hasArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip":
		return true
	}
	return false
}

// sniffZip accepts archives named without a .jar or .zip extension as long
// as their content is a zip file.
func sniffZip(ctx context.Context, path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	format, _, err := archives.Identify(ctx, filepath.Base(path), f)
	if errors.Is(err, archives.NoMatch) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_, ok := format.(archives.Zip)
	return ok, nil
}
