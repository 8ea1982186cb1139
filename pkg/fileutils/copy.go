package fileutils

import (
	"io"
	"os"
	"path/filepath"
	"time"
)

// CopyFile copies the bytes of src to dst, creating dst with src's mode.
// preserve is accepted for compatibility; timestamps and ownership are not
// copied.
func (u *Utils) CopyFile(src, dst string, preserve bool) error {
	start := time.Now()
	n, err := u.copyFile(src, dst)
	u.notify("copy_file", []string{src, dst}, false, n, start, err)
	return err
}

// Cp copies each source to dst. When dst is an existing directory every
// source lands inside it under its own base name; otherwise sources are
// written to dst itself.
func (u *Utils) Cp(srcs []string, dst string, opts ...Option) error {
	o := u.resolve(defaultOptions, opts)
	start := time.Now()
	args := append(append([]string(nil), srcs...), dst)
	if o.Verbose {
		flag := ""
		if o.Preserve {
			flag = " -p"
		}
		u.message("cp" + flag + " " + join(args))
	}
	if o.Noop {
		u.notify("cp", args, true, 0, start, nil)
		return nil
	}

	var (
		total int64
		err   error
	)
	for _, src := range srcs {
		target := dst
		if u.isDir(dst) {
			target = filepath.Join(dst, filepath.Base(src))
		}
		var n int64
		n, err = u.copyFile(src, target)
		total += n
		if err != nil {
			break
		}
	}
	u.notify("cp", args, false, total, start, err)
	return err
}

func (u *Utils) copyFile(src, dst string) (n int64, err error) {
	in, err := u.fs.Open(src)
	if err != nil {
		return 0, classify("cp", src, err)
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return 0, classify("cp", src, err)
	}
	if fi.IsDir() {
		return 0, structural("cp", src, "is a directory")
	}
	perm := fi.Mode().Perm()

	out, err := u.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, classify("cp", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = classify("cp", dst, cerr)
		}
	}()

	if n, err = io.Copy(out, in); err != nil {
		return n, classify("cp", dst, err)
	}
	// OpenFile's mode is subject to the umask.
	if err = u.fs.Chmod(dst, perm); err != nil {
		return n, classify("cp", dst, err)
	}
	return n, nil
}
