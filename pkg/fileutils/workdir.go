package fileutils

import (
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Workdir is the current-directory state that Pwd and Cd operate on.
// Implementations are not required to be safe for concurrent use.
type Workdir interface {
	Getwd() (string, error)
	Chdir(dir string) error
}

// ProcessWorkdir is the process-wide working directory. Chdir changes it for
// every goroutine until it is changed again.
type ProcessWorkdir struct{}

func (ProcessWorkdir) Getwd() (string, error) { return os.Getwd() }

func (ProcessWorkdir) Chdir(dir string) error { return os.Chdir(dir) }

// Pwd returns the current working directory.
func (u *Utils) Pwd() (string, error) {
	return u.wd.Getwd()
}

// Cd changes the working directory for the rest of the process.
func (u *Utils) Cd(dir string, opts ...Option) error {
	o := u.resolve(defaultOptions, opts)
	start := time.Now()
	if o.Verbose {
		u.message("cd " + dir)
	}
	err := u.chdir(dir)
	u.notify("cd", []string{dir}, false, 0, start, err)
	return err
}

// CdFunc changes into dir, runs fn and changes back to the previous
// directory, also when fn fails or panics. Errors from fn and from the
// restore are combined.
func (u *Utils) CdFunc(dir string, fn func() error, opts ...Option) (err error) {
	o := u.resolve(defaultOptions, opts)
	start := time.Now()
	if o.Verbose {
		u.message("cd " + dir)
	}
	defer func() { u.notify("cd", []string{dir}, false, 0, start, err) }()

	prev, err := u.wd.Getwd()
	if err != nil {
		return classify("cd", dir, err)
	}
	if err = u.chdir(dir); err != nil {
		return err
	}
	defer func() {
		if rerr := u.chdir(prev); rerr != nil {
			if err == nil {
				err = rerr
			} else {
				err = multierror.Append(err, rerr)
			}
		}
		if o.Verbose {
			u.message("cd -")
		}
	}()
	return fn()
}

func (u *Utils) chdir(dir string) error {
	return classify("cd", dir, u.wd.Chdir(dir))
}
