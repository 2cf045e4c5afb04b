package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *Error matches exactly one of them with errors.Is.
var (
	// ErrInvalidComponent means a relative reference was used without a
	// component that identifies a module.
	ErrInvalidComponent = errors.New("invalid component identity")

	// ErrPackageNotFound means the module or package owning the reference
	// is unknown to the loader.
	ErrPackageNotFound = errors.New("package not found")

	// ErrAssetNotFound means the reference resolved to a resource that does
	// not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrUnsupportedValue means a resource handle could not be rendered to
	// a path.
	ErrUnsupportedValue = errors.New("unsupported attribute value")
)

// Error describes a failed resolution, validation or rendering step.
// Fields are empty when unknown at the point of failure.
type Error struct {
	Kind        error  // One of the Err* kinds
	Asset       string // Raw reference as written in the attribute
	Attr        string // Attribute name, e.g. "href"
	Tag         string // Element tag, e.g. "link"
	Component   string // Module of the component, or its Go type
	LogicalPath string // Computed logical path, when resolvable
	Err         error  // Underlying cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())

	var fields []string
	if e.Asset != "" {
		fields = append(fields, fmt.Sprintf("asset %q", e.Asset))
	}
	if e.Attr != "" {
		fields = append(fields, fmt.Sprintf("attribute %q", e.Attr))
	}
	if e.Tag != "" {
		fields = append(fields, fmt.Sprintf("element <%s>", e.Tag))
	}
	if e.Component != "" {
		fields = append(fields, fmt.Sprintf("component %q", e.Component))
	}
	if e.LogicalPath != "" {
		fields = append(fields, fmt.Sprintf("path %q", e.LogicalPath))
	}
	if len(fields) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(fields, ", "))
	}
	if e.Err != nil && e.Err != e.Kind {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the kind and the cause for errors.Is/As support.
func (e *Error) Unwrap() []error {
	if e.Err == nil || e.Err == e.Kind {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// withElement returns a copy of err annotated with the element context.
// Errors that are not *Error are wrapped with the given kind.
func withElement(err error, kind error, asset, attr, tag string) error {
	var ae *Error
	if errors.As(err, &ae) {
		out := *ae
		if asset != "" {
			out.Asset = asset
		}
		out.Attr = attr
		out.Tag = tag
		return &out
	}
	return &Error{
		Kind:  kind,
		Asset: asset,
		Attr:  attr,
		Tag:   tag,
		Err:   err,
	}
}
