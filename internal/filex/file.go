// Package filex contains small file-system helpers used by the record
// backends: data directory creation and all-or-nothing writes.
package filex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// Exists reports whether path names an existing file.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// CreateAtomic writes data to a temporary sibling of path and renames it into
// place, so path either does not exist or holds all of data. It fails if path
// already exists.
func CreateAtomic(path string, data []byte) error {
	return ReplaceAtomic(path, func(tmp string) error {
		return os.WriteFile(tmp, data, 0o660)
	}, false)
}

// ReplaceAtomic lets write populate a temporary sibling of path, then renames
// it over path. When overwrite is false an existing path is an error.
func ReplaceAtomic(path string, write func(tmp string) error, overwrite bool) error {
	if !overwrite {
		ok, err := Exists(path)
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("create %s: %w", path, fs.ErrExist)
		}
	}

	// The temp name keeps the extension; some writers validate it.
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	f, err := os.CreateTemp(filepath.Dir(path), "."+strings.TrimSuffix(base, ext)+".*"+ext)
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmp := f.Name()
	_ = f.Close()

	if err := write(tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// AppendAtomic appends data to an existing file with a single write. If the
// write or sync fails the file is truncated back to its previous size.
func AppendAtomic(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	size := st.Size()

	if _, err = f.Write(data); err == nil {
		err = f.Sync()
	}
	if err != nil {
		if terr := f.Truncate(size); terr != nil {
			return errors.Join(fmt.Errorf("append %s: %w", path, err), terr)
		}
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}
