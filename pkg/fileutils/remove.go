package fileutils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// RemoveFile unlinks a single file. A missing file is an error unless Force
// is set.
func (u *Utils) RemoveFile(path string, opts ...Option) error {
	o := u.resolve(defaultOptions, opts)
	return u.removeFiles("remove_file", []string{path}, o)
}

// RmF removes each file in paths. Force defaults to true.
func (u *Utils) RmF(paths []string, opts ...Option) error {
	o := u.resolve(forceOptions, opts)
	return u.removeFiles("rm_f", paths, o)
}

func (u *Utils) removeFiles(op string, paths []string, o Options) error {
	start := time.Now()
	if o.Verbose {
		flag := ""
		if o.Force {
			flag = " -f"
		}
		u.message("rm" + flag + " " + join(paths))
	}
	if o.Noop {
		u.notify(op, paths, true, 0, start, nil)
		return nil
	}

	var err error
	for _, p := range paths {
		if err = u.checkRemove("rm", p); err != nil {
			break
		}
		if err = u.removeFile(p, o.Force); err != nil {
			break
		}
	}
	u.notify(op, paths, false, 0, start, err)
	return err
}

// RmR removes each path in paths, descending into directories.
func (u *Utils) RmR(paths []string, opts ...Option) error {
	o := u.resolve(defaultOptions, opts)
	return u.removeTrees("rm_r", paths, o)
}

// RmRF is RmR with Force defaulting to true.
func (u *Utils) RmRF(paths []string, opts ...Option) error {
	o := u.resolve(forceOptions, opts)
	return u.removeTrees("rm_rf", paths, o)
}

func (u *Utils) removeTrees(op string, paths []string, o Options) error {
	start := time.Now()
	if o.Verbose {
		flag := ""
		if o.Force {
			flag = "f"
		}
		u.message("rm -r" + flag + " " + join(paths))
	}
	if o.Noop {
		u.notify(op, paths, true, 0, start, nil)
		return nil
	}

	var err error
	for _, p := range paths {
		if err = u.checkRemove("rm", p); err != nil {
			break
		}
		if err = u.removeTree(p, o.Force); err != nil {
			break
		}
	}
	u.notify(op, paths, false, 0, start, err)
	return err
}

func (u *Utils) removeTree(path string, force bool) error {
	fi, err := u.lstat(path)
	if err != nil || !fi.IsDir() {
		return u.removeFile(path, force)
	}

	entries, err := afero.ReadDir(u.fs, path)
	if err != nil {
		if force && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return classify("rm", path, err)
	}
	for _, ent := range entries {
		child := filepath.Join(path, ent.Name())
		if ent.IsDir() {
			err = u.removeTree(child, force)
		} else {
			err = u.removeFile(child, force)
		}
		if err != nil {
			return err
		}
	}
	return u.removeDir(path)
}

// removeFile unlinks path. Directories are refused.
func (u *Utils) removeFile(path string, force bool) error {
	fi, err := u.lstat(path)
	if err != nil {
		if force && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return classify("rm", path, err)
	}
	if fi.IsDir() {
		return structural("rm", path, "is a directory")
	}
	if err := u.fs.Remove(path); err != nil {
		if force && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return classify("rm", path, err)
	}
	return nil
}

// lstat does not follow a final symlink when the filesystem supports it.
func (u *Utils) lstat(path string) (os.FileInfo, error) {
	if l, ok := u.fs.(afero.Lstater); ok {
		fi, _, err := l.LstatIfPossible(path)
		return fi, err
	}
	return u.fs.Stat(path)
}
