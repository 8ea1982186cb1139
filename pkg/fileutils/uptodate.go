package fileutils

// Uptodate reports whether target exists and is strictly newer than every
// existing path in sources. Missing sources are ignored.
func (u *Utils) Uptodate(target string, sources []string) bool {
	ti, err := u.fs.Stat(target)
	if err != nil {
		return false
	}
	newTime := ti.ModTime()
	for _, src := range sources {
		si, err := u.fs.Stat(src)
		if err != nil {
			continue
		}
		if !newTime.After(si.ModTime()) {
			return false
		}
	}
	return true
}
