// Package fileutils provides shell-like file and directory operations
// (mkdir -p, rm -rf, cp, cd, pwd, freshness checks) as callable functions.
//
// Every operation accepts Options controlling verbose logging, dry runs
// (noop), forced removal and directory modes. Operations are synchronous and
// single-threaded; nothing is atomic with respect to concurrent external
// changes to the same paths.
package fileutils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Guard authorizes removal of a path before any removal operation touches it.
type Guard interface {
	ValidateRemoveTarget(path string) error
}

// Event describes one completed top-level operation.
type Event struct {
	Op       string
	Paths    []string
	Noop     bool
	Bytes    int64
	Duration time.Duration
	Err      error
}

// Observer is notified after every top-level operation.
type Observer interface {
	Observe(ev Event) error
}

// Config wires the collaborators of a Utils. Zero fields get defaults.
type Config struct {
	FS        afero.Fs
	Stderr    io.Writer
	Workdir   Workdir
	Guard     Guard
	Observers []Observer
	// Defaults are applied to every call before call-site options.
	Defaults []Option
}

// Utils runs operations against one filesystem collaborator.
type Utils struct {
	fs        afero.Fs
	stderr    io.Writer
	wd        Workdir
	guard     Guard
	observers []Observer
	preset    []Option
}

// New returns a Utils configured by cfg.
func New(cfg Config) *Utils {
	u := &Utils{
		fs:        cfg.FS,
		stderr:    cfg.Stderr,
		wd:        cfg.Workdir,
		guard:     cfg.Guard,
		observers: cfg.Observers,
		preset:    cfg.Defaults,
	}
	if u.fs == nil {
		u.fs = afero.NewOsFs()
	}
	if u.stderr == nil {
		u.stderr = os.Stderr
	}
	if u.wd == nil {
		u.wd = ProcessWorkdir{}
	}
	return u
}

// With returns a copy of u whose calls additionally apply opts by default.
func (u *Utils) With(opts ...Option) *Utils {
	c := *u
	c.preset = append(append([]Option(nil), u.preset...), opts...)
	return &c
}

// Fs returns the filesystem collaborator.
func (u *Utils) Fs() afero.Fs { return u.fs }

func (u *Utils) message(msg string) {
	fmt.Fprintln(u.stderr, msg)
}

func (u *Utils) notify(op string, paths []string, noop bool, bytes int64, start time.Time, err error) {
	if len(u.observers) == 0 {
		return
	}
	ev := Event{
		Op:       op,
		Paths:    paths,
		Noop:     noop,
		Bytes:    bytes,
		Duration: time.Since(start),
		Err:      err,
	}
	for _, o := range u.observers {
		if oerr := o.Observe(ev); oerr != nil {
			u.message("fileutils: observer: " + oerr.Error())
		}
	}
}

func (u *Utils) isDir(path string) bool {
	fi, err := u.fs.Stat(path)
	return err == nil && fi.IsDir()
}

func (u *Utils) exists(path string) bool {
	_, err := u.fs.Stat(path)
	return err == nil
}

func (u *Utils) checkRemove(op, path string) error {
	if u.guard == nil {
		return nil
	}
	if err := u.guard.ValidateRemoveTarget(path); err != nil {
		return &PathError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrProtected, err)}
	}
	return nil
}

// trimTrailingSlash removes one trailing separator; "/" is left as is.
func trimTrailingSlash(path string) string {
	if path == "/" {
		return path
	}
	return strings.TrimSuffix(path, "/")
}

func join(paths []string) string {
	return strings.Join(paths, " ")
}
