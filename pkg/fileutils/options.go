package fileutils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Options controls a single operation. The zero value is the default for
// every operation except RmF and RmRF, which default Force to true.
type Options struct {
	// Verbose writes one line describing the operation to the sink before it runs.
	Verbose bool
	// Noop logs the operation (if Verbose) and skips every mutation.
	Noop bool
	// Force downgrades "not found" removal failures to success.
	Force bool
	// Mode is applied to directories created by Mkdir and MkdirP. Nil means
	// the platform default (0777 before umask).
	Mode *os.FileMode
	// Preserve is accepted by Cp and CopyFile but metadata is never copied.
	Preserve bool
	// Parents makes Rmdir also remove ancestor directories.
	Parents bool
}

// Option mutates an Options record.
type Option func(*Options)

func WithVerbose() Option { return func(o *Options) { o.Verbose = true } }

func WithNoop() Option { return func(o *Options) { o.Noop = true } }

func WithForce(force bool) Option { return func(o *Options) { o.Force = force } }

// WithMode sets the mode for new directories. The octal setuid, setgid and
// sticky bits (04000, 02000, 01000) are accepted as well as their
// os.FileMode flags.
func WithMode(mode os.FileMode) Option {
	mode = fileMode(uint32(mode)&0o7777) | mode&(os.ModeSetuid|os.ModeSetgid|os.ModeSticky)
	return func(o *Options) { o.Mode = &mode }
}

func WithPreserve() Option { return func(o *Options) { o.Preserve = true } }

func WithParents() Option { return func(o *Options) { o.Parents = true } }

var (
	defaultOptions = Options{}
	forceOptions   = Options{Force: true}
)

// resolve builds the options for one call: operation defaults, then the
// preset options of u, then the call-site options.
func (u *Utils) resolve(defaults Options, opts []Option) Options {
	o := defaults
	for _, fn := range u.preset {
		fn(&o)
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// modeFlag renders "-m 700 " or "" for verbose messages.
func (o Options) modeFlag() string {
	if o.Mode == nil {
		return ""
	}
	return fmt.Sprintf("-m %03o ", unixMode(*o.Mode))
}

var errInvalidMode = errors.New("mode must be octal and at most 07777")

// ParseMode parses an octal permission string such as "0755" or "1777".
func ParseMode(s string) (os.FileMode, error) {
	m, err := strconv.ParseUint(s, 8, 32)
	if err != nil || m > 0o7777 {
		return 0, fmt.Errorf("%w: %q", errInvalidMode, s)
	}
	return fileMode(uint32(m)), nil
}

// fileMode converts Unix permission bits to an os.FileMode.
func fileMode(m uint32) os.FileMode {
	mode := os.FileMode(m & 0o777)
	if m&0o4000 != 0 {
		mode |= os.ModeSetuid
	}
	if m&0o2000 != 0 {
		mode |= os.ModeSetgid
	}
	if m&0o1000 != 0 {
		mode |= os.ModeSticky
	}
	return mode
}

// unixMode is the inverse of fileMode.
func unixMode(mode os.FileMode) uint32 {
	m := uint32(mode.Perm())
	if mode&os.ModeSetuid != 0 {
		m |= 0o4000
	}
	if mode&os.ModeSetgid != 0 {
		m |= 0o2000
	}
	if mode&os.ModeSticky != 0 {
		m |= 0o1000
	}
	return m
}
