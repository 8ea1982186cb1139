package fileutils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

func (o Options) dirMode() os.FileMode {
	if o.Mode == nil {
		return os.ModePerm
	}
	return *o.Mode
}

// Mkdir creates each directory in paths. Parents must already exist and the
// directory itself must not.
func (u *Utils) Mkdir(paths []string, opts ...Option) error {
	o := u.resolve(defaultOptions, opts)
	start := time.Now()
	if o.Verbose {
		u.message("mkdir " + o.modeFlag() + join(paths))
	}
	if o.Noop {
		u.notify("mkdir", paths, true, 0, start, nil)
		return nil
	}

	var err error
	for _, dir := range paths {
		if err = u.mkdir(dir, o.dirMode()); err != nil {
			break
		}
	}
	u.notify("mkdir", paths, false, 0, start, err)
	return err
}

// MkdirP creates each directory in paths along with any missing ancestors.
// Directories that already exist are not an error. It returns paths.
func (u *Utils) MkdirP(paths []string, opts ...Option) ([]string, error) {
	o := u.resolve(defaultOptions, opts)
	start := time.Now()
	if o.Verbose {
		u.message("mkdir -p " + o.modeFlag() + join(paths))
	}
	if o.Noop {
		u.notify("mkdir_p", paths, true, 0, start, nil)
		return paths, nil
	}

	var err error
	for _, p := range paths {
		if err = u.mkdirAll(trimTrailingSlash(p), o.dirMode()); err != nil {
			break
		}
	}
	u.notify("mkdir_p", paths, false, 0, start, err)
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (u *Utils) mkdirAll(path string, mode os.FileMode) error {
	if err := u.fs.Mkdir(path, mode); err == nil || u.isDir(path) {
		return nil
	}

	// Collect path and its ancestors up to the root (or "."), then create
	// from the top down.
	stack := []string{path}
	for p := path; ; {
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		stack = append(stack, parent)
		p = parent
	}
	for i := len(stack) - 1; i >= 0; i-- {
		dir := stack[i]
		if err := u.fs.Mkdir(dir, mode); err != nil && !u.isDir(dir) {
			return mkdirError(dir, err)
		}
	}
	return nil
}

func (u *Utils) mkdir(dir string, mode os.FileMode) error {
	return mkdirError(dir, u.fs.Mkdir(dir, mode))
}

// mkdirError reports a missing parent as a directory error rather than
// not found.
func mkdirError(dir string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return &PathError{Op: "mkdir", Path: dir, Err: fmt.Errorf("%w: parent missing: %w", ErrDirectory, err)}
	}
	return classify("mkdir", dir, err)
}

// Rmdir removes each directory in paths that exists; absent directories are
// skipped. With Parents, ancestors are removed too until one cannot be.
func (u *Utils) Rmdir(paths []string, opts ...Option) error {
	o := u.resolve(defaultOptions, opts)
	start := time.Now()
	if o.Verbose {
		flag := ""
		if o.Parents {
			flag = "-p "
		}
		u.message("rmdir " + flag + join(paths))
	}
	if o.Noop {
		u.notify("rmdir", paths, true, 0, start, nil)
		return nil
	}

	var err error
	for _, p := range paths {
		if err = u.rmdir(trimTrailingSlash(p), o.Parents); err != nil {
			break
		}
	}
	u.notify("rmdir", paths, false, 0, start, err)
	return err
}

func (u *Utils) rmdir(dir string, parents bool) error {
	if err := u.checkRemove("rmdir", dir); err != nil {
		return err
	}
	if err := u.removeDir(dir); err != nil {
		return err
	}
	if !parents {
		return nil
	}
	for {
		parent := filepath.Dir(dir)
		if parent == "." || parent == dir || filepath.Dir(parent) == parent {
			return nil
		}
		dir = parent
		if u.checkRemove("rmdir", dir) != nil {
			return nil
		}
		if fi, err := u.lstat(dir); err != nil || !fi.IsDir() || u.fs.Remove(dir) != nil {
			return nil
		}
	}
}

// removeDir removes an empty directory. A symlink is refused even when it
// points to a directory.
func (u *Utils) removeDir(dir string) error {
	fi, err := u.lstat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return classify("rmdir", dir, err)
	}
	if !fi.IsDir() {
		return structural("rmdir", dir, "not a directory")
	}
	return classify("rmdir", dir, u.fs.Remove(dir))
}
