// Package xlsxstore stores a container as a worksheet named after the
// container kind. Row 1 holds the header.
package xlsxstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storekeeper/internal/filex"
	"github.com/dmitrijs2005/storekeeper/internal/records"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Backend reads and appends one worksheet of a workbook file.
type Backend struct {
	path  string
	sheet string
}

// Open is the records.Opener for records.FormatXLSX.
func Open(loc records.Location) (records.Backend, error) {
	if loc.Path == "" {
		return nil, fmt.Errorf("xlsx %s: empty path", loc.Kind)
	}
	return &Backend{path: loc.Path, sheet: loc.Kind.String()}, nil
}

// Load returns the worksheet rows after the header. A missing workbook or
// sheet has no rows. Rows shorter than the header are padded with empty
// fields, since trailing blank cells are not stored.
func (b *Backend) Load(ctx context.Context) ([]records.Row, error) {
	exists, err := filex.Exists(b.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []records.Row{}, nil
	}

	f, err := excelize.OpenFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", b.path, err)
	}
	defer f.Close()

	raw, err := b.sheetRows(f)
	if err != nil {
		return nil, err
	}

	rows := []records.Row{}
	if len(raw) < 2 {
		return rows, nil
	}
	width := len(raw[0])
	for _, r := range raw[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := make(records.Row, max(width, len(r)))
		copy(row, r)
		rows = append(rows, row)
	}
	return rows, nil
}

// Append adds rows below the last used row and saves the workbook through a
// temporary file, so a failed save leaves the previous workbook intact.
func (b *Backend) Append(ctx context.Context, header records.Row, rows ...records.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	exists, err := filex.Exists(b.path)
	if err != nil {
		return err
	}

	var f *excelize.File
	if exists {
		if f, err = excelize.OpenFile(b.path); err != nil {
			return fmt.Errorf("open %s: %w", b.path, err)
		}
	} else {
		f = excelize.NewFile()
		if err := f.SetSheetName(defaultSheet, b.sheet); err != nil {
			_ = f.Close()
			return err
		}
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(b.sheet)
	if err != nil {
		return err
	}
	if idx < 0 {
		if _, err := f.NewSheet(b.sheet); err != nil {
			return err
		}
	}

	existing, err := b.sheetRows(f)
	if err != nil {
		return err
	}

	next := len(existing) + 1
	if len(existing) == 0 {
		if err := b.setRow(f, next, header); err != nil {
			return err
		}
		next++
	} else if len(rows) == 0 {
		return nil
	}

	for _, r := range rows {
		if err := b.setRow(f, next, r); err != nil {
			return err
		}
		next++
	}

	return filex.ReplaceAtomic(b.path, func(tmp string) error {
		return f.SaveAs(tmp)
	}, true)
}

// sheetRows returns every row up to the last row element of the sheet,
// blank ones included. GetRows is not used: it drops trailing rows whose
// cells are all empty, which would hide blank records and let the next
// append overwrite them.
func (b *Backend) sheetRows(f *excelize.File) ([][]string, error) {
	idx, err := f.GetSheetIndex(b.sheet)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, nil
	}
	it, err := f.Rows(b.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", b.sheet, err)
	}
	defer it.Close()

	var rows [][]string
	for it.Next() {
		cols, err := it.Columns()
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", b.sheet, err)
		}
		rows = append(rows, cols)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", b.sheet, err)
	}
	return rows, nil
}

func (b *Backend) setRow(f *excelize.File, n int, r records.Row) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	values := make([]any, len(r))
	for i, v := range r {
		values[i] = v
	}
	return f.SetSheetRow(b.sheet, cell, &values)
}
