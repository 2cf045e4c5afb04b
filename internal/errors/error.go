package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/vango-dev/assetref/pkg/assets"
	"github.com/vango-dev/assetref/pkg/render"
)

// Category represents the type of error.
type Category string

const (
	CategoryResolve  Category = "resolve"
	CategoryValidate Category = "validate"
	CategoryRender   Category = "render"
	CategoryPublish  Category = "publish"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Location represents a position in a file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Field is a labelled value shown under the error header.
type Field struct {
	Label string
	Value string
}

// CodedError is a structured error with a code, context and a hint.
type CodedError struct {
	// Code is a unique error identifier (e.g., "A003").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Fields locate the failure (asset, attribute, component...).
	Fields []Field

	// Location is the file position the error refers to, if any.
	Location *Location

	// Context contains the lines around Location, starting at ContextStart.
	Context      []string
	ContextStart int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CodedError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file position and the surrounding lines.
func (e *CodedError) WithLocation(file string, line, column int) *CodedError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.ContextStart = readContextLines(file, line, 5)
	return e
}

// WithField appends a labelled value. Empty values are skipped.
func (e *CodedError) WithField(label, value string) *CodedError {
	if value != "" {
		e.Fields = append(e.Fields, Field{Label: label, Value: value})
	}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CodedError) WithSuggestion(s string) *CodedError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *CodedError) WithDetail(d string) *CodedError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *CodedError) Wrap(err error) *CodedError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file
// and returns them with the number of the first one.
func readContextLines(filename string, targetLine, contextSize int) ([]string, int) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := max(targetLine-contextSize/2, 1)
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines, startLine
}

// New creates a CodedError from a registered error code.
func New(code string) *CodedError {
	template, ok := registry[code]
	if !ok {
		return &CodedError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &CodedError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new CodedError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *CodedError {
	return &CodedError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError converts err to a CodedError. Pipeline errors get the code of
// their kind and the context they carry; anything else gets fallback.
func FromError(err error, fallback string) *CodedError {
	if err == nil {
		return nil
	}
	var ce *CodedError
	if stderrors.As(err, &ce) {
		return ce
	}

	code := fallback
	switch {
	case stderrors.Is(err, assets.ErrInvalidComponent):
		code = "A001"
	case stderrors.Is(err, assets.ErrPackageNotFound):
		code = "A002"
	case stderrors.Is(err, assets.ErrAssetNotFound):
		code = "A003"
	case stderrors.Is(err, assets.ErrUnsupportedValue):
		code = "A004"
	case stderrors.Is(err, render.ErrUnrenderedAsset):
		code = "A005"
	}

	out := New(code)
	var ae *assets.Error
	if stderrors.As(err, &ae) {
		out.WithField("asset", ae.Asset).
			WithField("attribute", ae.Attr).
			WithField("component", ae.Component).
			WithField("path", ae.LogicalPath)
		if ae.Tag != "" {
			out.WithField("element", "<"+ae.Tag+">")
		}
		if ae.Err != nil {
			out.WithField("cause", ae.Err.Error())
		}
	}
	return out.Wrap(err)
}
