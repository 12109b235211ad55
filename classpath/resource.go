package classpath

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Resource is an opened classpath entry. Directories and archives expose
// the same view: a missing class or package reports fs.ErrNotExist no
// matter how the entry is stored.
type Resource struct {
	Entry
	fsys   fs.FS
	closer io.Closer
}

func (e Entry) Open() (*Resource, error) {
	switch e.Kind {
	case Directory:
		return &Resource{Entry: e, fsys: os.DirFS(e.Path)}, nil
	case Archive:
		zr, err := zip.OpenReader(e.Path)
		if err != nil {
			return nil, errors.Errorf("opening %s: %w", e.Path, err)
		}
		return &Resource{Entry: e, fsys: zr, closer: zr}, nil
	default:
		return nil, &InvalidEntryError{Path: e.Path}
	}
}

// Open opens a file by its slash separated path inside the resource.
func (r *Resource) Open(name string) (io.ReadCloser, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	f, err := r.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err == nil && info.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return f, nil
}

// HasDir reports whether the resource contains the directory at path. A
// trailing slash is ignored, "" names the root.
func (r *Resource) HasDir(path string) bool {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		path = "."
	}
	if !fs.ValidPath(path) {
		return false
	}
	info, err := fs.Stat(r.fsys, path)
	return err == nil && info.IsDir()
}

func (r *Resource) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
