// Package csvstore stores a container as a comma-delimited text file whose
// first line is the header.
package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/storekeeper/internal/filex"
	"github.com/dmitrijs2005/storekeeper/internal/records"
)

// Backend reads and appends one delimited text file.
type Backend struct {
	path string
}

// Open is the records.Opener for records.FormatCSV.
func Open(loc records.Location) (records.Backend, error) {
	if loc.Path == "" {
		return nil, fmt.Errorf("csv %s: empty path", loc.Kind)
	}
	return &Backend{path: loc.Path}, nil
}

// Load reads the file, skipping its header. A missing file has no rows.
func (b *Backend) Load(ctx context.Context) ([]records.Row, error) {
	f, err := os.Open(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []records.Row{}, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows := []records.Row{}
	header := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", b.path, err)
		}
		if header {
			header = false
			continue
		}
		rows = append(rows, records.Row(rec))
	}
	return rows, nil
}

// Append encodes header (only when the file is new or empty) and rows into a
// buffer, then commits it with a single write.
func (b *Backend) Append(ctx context.Context, header records.Row, rows ...records.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	missing, empty, err := b.state()
	if err != nil {
		return err
	}
	fresh := missing || empty
	if !fresh && len(rows) == 0 {
		return nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if fresh {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	switch {
	case missing:
		// Fails rather than clobbering a file created since the stat.
		return filex.CreateAtomic(b.path, buf.Bytes())
	case empty:
		return filex.ReplaceAtomic(b.path, func(tmp string) error {
			return os.WriteFile(tmp, buf.Bytes(), 0o660)
		}, true)
	}
	return filex.AppendAtomic(b.path, buf.Bytes())
}

// Header returns the first record of the file, or nil if the file is missing
// or empty.
func (b *Backend) Header(ctx context.Context) (records.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rec, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}
	return records.Row(rec), nil
}

// state reports whether the file is missing or empty. Either way it still
// needs a header.
func (b *Backend) state() (missing, empty bool, err error) {
	st, err := os.Stat(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, false, nil
		}
		return false, false, err
	}
	return false, st.Size() == 0, nil
}
