package loader

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a load failure. Every kind is fatal to start-up.
type Kind int

const (
	// NotFound means the source could not be located or opened.
	NotFound Kind = iota + 1
	// SchemaMismatch means the header is missing or lacks a required column.
	SchemaMismatch
	// Unreadable means the source opened but failed mid-read.
	Unreadable
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case SchemaMismatch:
		return "schema mismatch"
	case Unreadable:
		return "unreadable"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is matching against a *LoadError.
var (
	ErrNotFound       = errors.New("dataset not found")
	ErrSchemaMismatch = errors.New("dataset schema mismatch")
	ErrUnreadable     = errors.New("dataset unreadable")
)

// LoadError reports why a dataset could not be loaded.
type LoadError struct {
	Kind    Kind
	Path    string
	Missing []string // required columns absent from the header (SchemaMismatch)
	Err     error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load dataset")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if len(e.Missing) > 0 {
		b.WriteString(": missing columns ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *LoadError) Is(target error) bool {
	switch e.Kind {
	case NotFound:
		return target == ErrNotFound
	case SchemaMismatch:
		return target == ErrSchemaMismatch
	case Unreadable:
		return target == ErrUnreadable
	}
	return false
}

func notFound(path string, err error) *LoadError {
	return &LoadError{Kind: NotFound, Path: path, Err: err}
}

func unreadable(path string, err error) *LoadError {
	return &LoadError{Kind: Unreadable, Path: path, Err: err}
}
