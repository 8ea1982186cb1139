package fileutils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type denyGuard struct {
	denied string
}

func (g denyGuard) ValidateRemoveTarget(path string) error {
	if path == g.denied {
		return errors.New("outside allowed roots")
	}
	return nil
}

// buildTree creates root/tree/{f1, sub/{f2, deeper/f3}} and returns root/tree.
func buildTree(t *testing.T, root string) string {
	t.Helper()
	tree := filepath.Join(root, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "sub", "deeper"), 0o755))
	writeFile(t, filepath.Join(tree, "f1"), "1")
	writeFile(t, filepath.Join(tree, "sub", "f2"), "2")
	writeFile(t, filepath.Join(tree, "sub", "deeper", "f3"), "3")
	return tree
}

func TestRemoveFile(t *testing.T) {
	u, _, root := newTestUtils(t)
	path := filepath.Join(root, "rm_file")
	writeFile(t, path, "test")

	require.NoError(t, u.RemoveFile(path, WithVerbose()))
	requireMissing(t, path)

	require.NoError(t, u.RemoveFile(path, WithVerbose(), WithForce(true)))

	err := u.RemoveFile(path, WithVerbose())
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Equal(t, "not_found", Kind(err))
}

func TestRemoveFileRefusesDirectory(t *testing.T) {
	u, _, root := newTestUtils(t)
	dir := filepath.Join(root, "dir")
	require.NoError(t, os.Mkdir(dir, 0o755))

	err := u.RemoveFile(dir, WithForce(true))
	require.ErrorIs(t, err, ErrDirectory)
	requireDir(t, dir)
}

func TestRmFDefaultsToForce(t *testing.T) {
	u, buf, root := newTestUtils(t)
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	writeFile(t, a, "a")

	require.NoError(t, u.RmF([]string{a, b}, WithVerbose()))
	requireMissing(t, a)
	require.Equal(t, "rm -f "+a+" "+b+"\n", buf.String())
}

func TestRmFExplicitNoForceAbortsBatch(t *testing.T) {
	u, buf, root := newTestUtils(t)
	missing := filepath.Join(root, "missing")
	present := filepath.Join(root, "present")
	writeFile(t, present, "x")

	err := u.RmF([]string{missing, present}, WithForce(false), WithVerbose())
	require.ErrorIs(t, err, ErrNotFound)
	_, statErr := os.Stat(present)
	require.NoError(t, statErr, "remaining batch must not run after a failure")
	require.Equal(t, "rm "+missing+" "+present+"\n", buf.String())
}

func TestRmR(t *testing.T) {
	u, buf, root := newTestUtils(t)
	tree := buildTree(t, root)

	require.NoError(t, u.RmR([]string{tree}, WithVerbose()))
	requireMissing(t, tree)
	require.Equal(t, "rm -r "+tree+"\n", buf.String(), "one line per call, not per entry")

	// plain file
	writeFile(t, tree, "test")
	require.NoError(t, u.RmR([]string{tree}))
	requireMissing(t, tree)

	require.NoError(t, u.RmR([]string{tree}, WithForce(true)))

	err := u.RmR([]string{tree})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRmRThenMkdirYieldsEmptyDirectory(t *testing.T) {
	u, _, root := newTestUtils(t)
	tree := buildTree(t, root)

	require.NoError(t, u.RmR([]string{tree}))
	require.NoError(t, u.Mkdir([]string{tree}))

	entries, err := os.ReadDir(tree)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRmRF(t *testing.T) {
	u, buf, root := newTestUtils(t)
	tree := buildTree(t, root)

	require.NoError(t, u.RmRF([]string{tree}, WithVerbose()))
	requireMissing(t, tree)
	require.NoError(t, u.RmRF([]string{tree}, WithVerbose()))
	require.Equal(t, strings.Repeat("rm -rf "+tree+"\n", 2), buf.String())

	err := u.RmRF([]string{tree}, WithForce(false))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRmRFDoesNotFollowSymlinks(t *testing.T) {
	u, _, root := newTestUtils(t)
	outside := filepath.Join(root, "outside")
	require.NoError(t, os.Mkdir(outside, 0o755))
	keep := filepath.Join(outside, "keep")
	writeFile(t, keep, "keep")

	tree := buildTree(t, root)
	require.NoError(t, os.Symlink(outside, filepath.Join(tree, "link")))

	require.NoError(t, u.RmRF([]string{tree}))
	requireMissing(t, tree)
	_, err := os.Stat(keep)
	require.NoError(t, err)
}

func TestRemovalNoop(t *testing.T) {
	u, rfs, buf, root := newRecordingUtils(t)
	tree := buildTree(t, root)
	f1 := filepath.Join(tree, "f1")

	require.NoError(t, u.RmRF([]string{tree}, WithNoop(), WithVerbose()))
	require.NoError(t, u.RmR([]string{tree}, WithNoop()))
	require.NoError(t, u.RmF([]string{f1}, WithNoop()))
	require.NoError(t, u.RemoveFile(f1, WithNoop()))
	require.NoError(t, u.RemoveFile(filepath.Join(root, "missing"), WithNoop()))

	require.Empty(t, rfs.Calls, "noop must never mutate")
	requireDir(t, tree)
	require.Equal(t, "rm -rf "+tree+"\n", buf.String())
}

func TestGuardRejectsEvenWithForce(t *testing.T) {
	var buf strings.Builder
	root := t.TempDir()
	tree := buildTree(t, root)
	u := New(Config{Stderr: &buf, Guard: denyGuard{denied: tree}})

	err := u.RmRF([]string{tree})
	require.ErrorIs(t, err, ErrProtected)
	require.Equal(t, "protected", Kind(err))
	requireDir(t, tree)

	err = u.Rmdir([]string{tree})
	require.ErrorIs(t, err, ErrProtected)
}
