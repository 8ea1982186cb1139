// Package fsops holds filesystem collaborators built on afero.
package fsops

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

const writeFlags = os.O_WRONLY | os.O_RDWR | os.O_CREATE | os.O_TRUNC | os.O_APPEND

// RecordingFs wraps an afero.Fs and records every mutating call before
// passing it through. Tests use it to prove dry runs never mutate.
type RecordingFs struct {
	afero.Fs
	Calls []string
}

// NewRecordingFs wraps fs.
func NewRecordingFs(fs afero.Fs) *RecordingFs {
	return &RecordingFs{Fs: fs, Calls: []string{}}
}

func (r *RecordingFs) record(op, name string) {
	r.Calls = append(r.Calls, op+":"+name)
}

func (r *RecordingFs) Create(name string) (afero.File, error) {
	r.record("create", name)
	return r.Fs.Create(name)
}

func (r *RecordingFs) Mkdir(name string, perm os.FileMode) error {
	r.record("mkdir", name)
	return r.Fs.Mkdir(name, perm)
}

func (r *RecordingFs) MkdirAll(path string, perm os.FileMode) error {
	r.record("mkdirall", path)
	return r.Fs.MkdirAll(path, perm)
}

func (r *RecordingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&writeFlags != 0 {
		r.record("write", name)
	}
	return r.Fs.OpenFile(name, flag, perm)
}

func (r *RecordingFs) Remove(name string) error {
	r.record("rm", name)
	return r.Fs.Remove(name)
}

func (r *RecordingFs) RemoveAll(path string) error {
	r.record("rmall", path)
	return r.Fs.RemoveAll(path)
}

func (r *RecordingFs) Rename(oldname, newname string) error {
	r.record("mv", oldname+" "+newname)
	return r.Fs.Rename(oldname, newname)
}

func (r *RecordingFs) Chmod(name string, mode os.FileMode) error {
	r.record("chmod", name)
	return r.Fs.Chmod(name, mode)
}

func (r *RecordingFs) Chown(name string, uid, gid int) error {
	r.record("chown", name)
	return r.Fs.Chown(name, uid, gid)
}

func (r *RecordingFs) Chtimes(name string, atime, mtime time.Time) error {
	r.record("chtimes", name)
	return r.Fs.Chtimes(name, atime, mtime)
}

// LstatIfPossible keeps the wrapped filesystem's lstat support visible.
func (r *RecordingFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	if l, ok := r.Fs.(afero.Lstater); ok {
		return l.LstatIfPossible(name)
	}
	fi, err := r.Fs.Stat(name)
	return fi, false, err
}

