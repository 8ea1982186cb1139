package fileutils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"fileutils/internal/fsops"
)

// newTestUtils returns a Utils on the OS filesystem whose verbose output is
// captured, plus a fresh temporary root.
func newTestUtils(t *testing.T) (*Utils, *bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	u := New(Config{FS: afero.NewOsFs(), Stderr: &buf})
	return u, &buf, t.TempDir()
}

// newRecordingUtils returns a Utils whose filesystem records every mutation.
func newRecordingUtils(t *testing.T) (*Utils, *fsops.RecordingFs, *bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	rfs := fsops.NewRecordingFs(afero.NewOsFs())
	u := New(Config{FS: rfs, Stderr: &buf})
	return u, rfs, &buf, t.TempDir()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func requireDir(t *testing.T, path string) {
	t.Helper()
	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "%s should be a directory", path)
}

func requireMissing(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err), "%s should not exist, got %v", path, err)
}

// countDirs returns the number of directories strictly below root.
func countDirs(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory, updates PWD, and restores both on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Open(".")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		oldwd.Close()
		t.Fatal(err)
	}
	if !filepath.IsAbs(dir) {
		if dir, err = os.Getwd(); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		err := oldwd.Chdir()
		oldwd.Close()
		if err != nil {
			panic("testing.Chdir: " + err.Error())
		}
	})
}
