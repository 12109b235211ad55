package javaref

import (
	"strings"
)

// TitleOptions control how much of a resolved name a link shows.
type TitleOptions struct {
	AddPackageNames     bool `yaml:"add_package_names" json:"add_package_names"`
	QualifyNestedTypes  bool `yaml:"qualify_nested_types" json:"qualify_nested_types"`
	AddMethodParameters bool `yaml:"add_method_parameters" json:"add_method_parameters"`
}

func DefaultTitleOptions() TitleOptions {
	return TitleOptions{AddPackageNames: true, QualifyNestedTypes: true, AddMethodParameters: true}
}

// Title renders t for display. Package overview pages show the package
// name only.
func (o TitleOptions) Title(t Target) string {
	if t.IsPackageSummary() {
		return t.Class.Package.Name()
	}

	var parts []string
	if o.AddPackageNames && !t.Class.Package.IsDefault() {
		parts = append(parts, t.Class.Package.Name())
	}
	if o.AddPackageNames || o.QualifyNestedTypes {
		parts = append(parts, t.Class.SourceName())
	} else {
		parts = append(parts, t.Class.SimpleName())
	}

	if fragment := t.Fragment(); fragment != "" {
		if !o.AddMethodParameters {
			fragment, _, _ = strings.Cut(fragment, "(")
		}
		parts = append(parts, fragment)
	}
	return strings.Join(parts, ".")
}
