package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryStructure Category = "structure"
	CategoryAuthoring Category = "authoring"
	CategoryTarget    Category = "target"
	CategoryComponent Category = "component"
	CategoryRuntime   Category = "runtime"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// Location represents a position in a template source file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
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

// WeccoError is a structured error with a code, category and optional hints.
type WeccoError struct {
	// Code is a unique error identifier (e.g., "W001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the template source position, when known.
	Location *Location

	// Context contains surrounding source lines, starting at ContextLine.
	Context     []string
	ContextLine int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *WeccoError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		return e.Code + ": " + msg
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *WeccoError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a source location and reads the surrounding lines.
func (e *WeccoError) WithLocation(file string, line, column int) *WeccoError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.ContextLine, e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *WeccoError) WithSuggestion(s string) *WeccoError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *WeccoError) WithDetail(d string) *WeccoError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with formatting.
func (e *WeccoError) WithDetailf(format string, args ...any) *WeccoError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *WeccoError) Wrap(err error) *WeccoError {
	e.Wrapped = err
	return e
}

func readContextLines(filename string, targetLine, contextSize int) (int, []string) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, nil
	}
	defer file.Close()

	first := max(targetLine-contextSize/2, 1)
	last := targetLine + contextSize/2

	var lines []string
	scanner := bufio.NewScanner(file)
	for lineNum := 1; lineNum <= last && scanner.Scan(); lineNum++ {
		if lineNum >= first {
			lines = append(lines, scanner.Text())
		}
	}
	return first, lines
}

// New creates a WeccoError from a registered error code.
func New(code string) *WeccoError {
	tmpl, ok := registry[code]
	if !ok {
		return &WeccoError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &WeccoError{
		Code:       code,
		Category:   tmpl.Category,
		Message:    tmpl.Message,
		Suggestion: tmpl.Suggestion,
	}
}

// Newf creates a new WeccoError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *WeccoError {
	return &WeccoError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a WeccoError.
func FromError(err error, code string) *WeccoError {
	if err == nil {
		return nil
	}
	if we, ok := err.(*WeccoError); ok {
		return we
	}
	return New(code).Wrap(err)
}

// Code returns the code of err if it is (or wraps) a WeccoError.
func Code(err error) string {
	for err != nil {
		if we, ok := err.(*WeccoError); ok && we.Code != "" {
			return we.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
