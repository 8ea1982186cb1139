package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	u, _, root := newTestUtils(t)
	src := filepath.Join(root, "copy_src")
	dst := filepath.Join(root, "copy_dst")
	content := []byte{0x00, 't', 'e', 's', 't', 0xff, '\n'}
	require.NoError(t, os.WriteFile(src, content, 0o640))
	require.NoError(t, os.Chmod(src, 0o640))

	require.NoError(t, u.CopyFile(src, dst, false))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, content, got)

	si, err := os.Stat(src)
	require.NoError(t, err)
	di, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, si.Mode(), di.Mode())
}

func TestCopyFileOverwrites(t *testing.T) {
	u, _, root := newTestUtils(t)
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")
	writeFile(t, src, "new")
	writeFile(t, dst, "much longer old content")

	require.NoError(t, u.CopyFile(src, dst, true))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "new", string(got))
}

func TestCopyFileErrors(t *testing.T) {
	u, _, root := newTestUtils(t)

	err := u.CopyFile(filepath.Join(root, "missing"), filepath.Join(root, "dst"), false)
	require.ErrorIs(t, err, ErrNotFound)
	requireMissing(t, filepath.Join(root, "dst"))

	err = u.CopyFile(root, filepath.Join(root, "dst"), false)
	require.ErrorIs(t, err, ErrDirectory)
}

func TestCpIntoDirectory(t *testing.T) {
	u, buf, root := newTestUtils(t)
	x := filepath.Join(root, "x")
	y := filepath.Join(root, "y")
	dst := filepath.Join(root, "dst")
	writeFile(t, x, "test1")
	writeFile(t, y, "test2")
	require.NoError(t, u.Mkdir([]string{dst}))

	require.NoError(t, u.Cp([]string{x}, dst, WithVerbose()))
	got, err := os.ReadFile(filepath.Join(dst, "x"))
	require.NoError(t, err)
	require.Equal(t, "test1", string(got))
	require.NoError(t, u.RemoveFile(filepath.Join(dst, "x")))

	require.NoError(t, u.Cp([]string{x, y}, dst, WithVerbose(), WithPreserve()))
	got, err = os.ReadFile(filepath.Join(dst, "x"))
	require.NoError(t, err)
	require.Equal(t, "test1", string(got))
	got, err = os.ReadFile(filepath.Join(dst, "y"))
	require.NoError(t, err)
	require.Equal(t, "test2", string(got))

	require.Equal(t, "cp "+x+" "+dst+"\ncp -p "+x+" "+y+" "+dst+"\n", buf.String())
}

func TestCpToFile(t *testing.T) {
	u, _, root := newTestUtils(t)
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "renamed")
	writeFile(t, src, "payload")

	require.NoError(t, u.Cp([]string{src}, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "payload", string(got))
}

func TestCpNoop(t *testing.T) {
	u, rfs, buf, root := newRecordingUtils(t)
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")
	writeFile(t, src, "payload")

	require.NoError(t, u.Cp([]string{src}, dst, WithNoop(), WithVerbose()))
	requireMissing(t, dst)
	require.Empty(t, rfs.Calls)
	require.Equal(t, "cp "+src+" "+dst+"\n", buf.String())
}
