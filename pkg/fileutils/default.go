package fileutils

// Default operates on the OS filesystem, the process working directory and
// os.Stderr. The package-level functions call it.
var Default = New(Config{})

// Presets derived from Default.
var (
	Verbose = Default.With(WithVerbose())
	NoWrite = Default.With(WithNoop())
	DryRun  = Default.With(WithNoop(), WithVerbose())
)

func Pwd() (string, error) { return Default.Pwd() }

func Cd(dir string, opts ...Option) error { return Default.Cd(dir, opts...) }

func CdFunc(dir string, fn func() error, opts ...Option) error {
	return Default.CdFunc(dir, fn, opts...)
}

func Uptodate(target string, sources []string) bool { return Default.Uptodate(target, sources) }

func Mkdir(paths []string, opts ...Option) error { return Default.Mkdir(paths, opts...) }

func MkdirP(paths []string, opts ...Option) ([]string, error) { return Default.MkdirP(paths, opts...) }

func Rmdir(paths []string, opts ...Option) error { return Default.Rmdir(paths, opts...) }

func RemoveFile(path string, opts ...Option) error { return Default.RemoveFile(path, opts...) }

func RmF(paths []string, opts ...Option) error { return Default.RmF(paths, opts...) }

func RmR(paths []string, opts ...Option) error { return Default.RmR(paths, opts...) }

func RmRF(paths []string, opts ...Option) error { return Default.RmRF(paths, opts...) }

func CopyFile(src, dst string, preserve bool) error { return Default.CopyFile(src, dst, preserve) }

func Cp(srcs []string, dst string, opts ...Option) error { return Default.Cp(srcs, dst, opts...) }

// Aliases.
var (
	Getwd     = Pwd
	Chdir     = Cd
	ChdirFunc = CdFunc
	Mkpath    = MkdirP
	Makedirs  = MkdirP
)

func (u *Utils) Getwd() (string, error) { return u.Pwd() }

func (u *Utils) Chdir(dir string, opts ...Option) error { return u.Cd(dir, opts...) }

func (u *Utils) Mkpath(paths []string, opts ...Option) ([]string, error) {
	return u.MkdirP(paths, opts...)
}

func (u *Utils) Makedirs(paths []string, opts ...Option) ([]string, error) {
	return u.MkdirP(paths, opts...)
}
