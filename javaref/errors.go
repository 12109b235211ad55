package javaref

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// UnresolvedError reports a reference that names no class or package on
// the classpath.
type UnresolvedError struct {
	Ref string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("reference not found: %s", e.Ref)
}

// UnknownMemberError reports a reference whose class exists but has no
// matching field or method.
type UnknownMemberError struct {
	Ref string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("unknown member: %s", e.Ref)
}

// MissingDocrootError reports a resolved class whose package is not listed
// by any docroot.
type MissingDocrootError struct {
	Class string
}

func (e *MissingDocrootError) Error() string {
	return fmt.Sprintf("root URL not found: %s", e.Class)
}

// InvalidImportError reports an import line that is not a dotted name.
type InvalidImportError struct {
	Text string
}

func (e *InvalidImportError) Error() string {
	return fmt.Sprintf("invalid import '%s'", e.Text)
}

type UnresolvedImportError struct {
	Import Import
}

func (e *UnresolvedImportError) Error() string {
	return fmt.Sprintf("unresolved import '%s'", e.Import)
}

// IsRecoverable reports whether err only affects a single link. Such errors
// become warnings and the reference is rendered as plain text; any other
// error means the classpath itself cannot be trusted.
func IsRecoverable(err error) bool {
	var unresolved *UnresolvedError
	var unknown *UnknownMemberError
	var missing *MissingDocrootError
	var badImport *UnresolvedImportError
	var invalidImport *InvalidImportError
	return errors.As(err, &unresolved) ||
		errors.As(err, &unknown) ||
		errors.As(err, &missing) ||
		errors.As(err, &badImport) ||
		errors.As(err, &invalidImport)
}
