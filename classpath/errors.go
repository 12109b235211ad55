package classpath

import (
	"fmt"
)

// InvalidEntryError reports a classpath entry that is neither a directory,
// an archive, nor a "dir/*" wildcard. It is a configuration error.
type InvalidEntryError struct {
	Path string
	Err  error
}

func (e *InvalidEntryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid classpath entry: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid classpath entry: %s", e.Path)
}

func (e *InvalidEntryError) Unwrap() error {
	return e.Err
}

// IntegrityError reports a class file stored under one name that declares
// another, which means the classpath cannot be trusted.
type IntegrityError struct {
	Requested string
	Found     string
	Resource  string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: expected class %s, found %s", e.Resource, e.Requested, e.Found)
}
