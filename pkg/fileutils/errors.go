package fileutils

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrDirectory     = errors.New("directory error")
	ErrProtected     = errors.New("protected path")
)

// PathError records the operation and path that failed. Its chain holds both
// one of the sentinels above and the underlying filesystem error.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error { return e.Err }

// classify wraps a filesystem error with the sentinel matching its cause.
func classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var kind error
	switch {
	// ENOTEMPTY also matches fs.ErrExist, so directory errnos go first.
	case errors.Is(err, syscall.ENOTDIR), errors.Is(err, syscall.EISDIR), errors.Is(err, syscall.ENOTEMPTY):
		kind = ErrDirectory
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrNotFound
	case errors.Is(err, fs.ErrExist):
		kind = ErrAlreadyExists
	}
	if kind == nil {
		return &PathError{Op: op, Path: path, Err: err}
	}
	return &PathError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", kind, err)}
}

// structural returns a directory error not backed by a syscall failure.
func structural(op, path, msg string) error {
	return &PathError{Op: op, Path: path, Err: fmt.Errorf("%w: %s", ErrDirectory, msg)}
}

// Kind returns a short label for err, used by metrics and the journal.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProtected):
		return "protected"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrDirectory):
		return "directory"
	default:
		return "other"
	}
}
