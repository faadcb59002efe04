package filex

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("data")
	require.NoError(t, err)

	want := filepath.Join(tmp, "data")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureDir_AbsoluteAndIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)

	require.Equal(t, dir, first)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("data", []byte("x"), 0o660))

	_, err := EnsureDir("data")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestCreateAtomic_WritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")

	require.NoError(t, CreateAtomic(path, []byte("h\n")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "h\n", string(got))

	err = CreateAtomic(path, []byte("other\n"))
	require.ErrorIs(t, err, fs.ErrExist)

	got, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "h\n", string(got))
}

func TestCreateAtomic_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, CreateAtomic(filepath.Join(dir, "x.csv"), []byte("a")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestAppendAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branches.csv")
	require.NoError(t, os.WriteFile(path, []byte("h\n"), 0o660))

	require.NoError(t, AppendAtomic(path, []byte("a\n")))
	require.NoError(t, AppendAtomic(path, []byte("b\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "h\na\nb\n", string(got))
}

func TestAppendAtomic_MissingFile(t *testing.T) {
	err := AppendAtomic(filepath.Join(t.TempDir(), "absent.csv"), []byte("a"))
	require.Error(t, err)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	ok, err := Exists(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = Exists(dir)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestReplaceAtomic_TempKeepsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")

	var seen string
	err := ReplaceAtomic(path, func(tmp string) error {
		seen = tmp
		return os.WriteFile(tmp, []byte("x"), 0o660)
	}, true)
	require.NoError(t, err)
	require.Equal(t, ".xlsx", filepath.Ext(seen))

	_, err = os.Stat(seen)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReplaceAtomic_WriterErrorKeepsOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("orig"), 0o660))

	err := ReplaceAtomic(path, func(tmp string) error { return fs.ErrPermission }, true)
	require.ErrorIs(t, err, fs.ErrPermission)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "orig", string(got))
}
