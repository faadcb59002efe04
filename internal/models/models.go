// Package models defines the storekeeper entities and their row codecs.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/storekeeper/internal/common"
	"github.com/dmitrijs2005/storekeeper/internal/records"
	"github.com/dmitrijs2005/storekeeper/internal/timex"
)

// Credential is one operator login.
type Credential struct {
	Username string
	Password string
}

// Branch is a store of the chain.
type Branch struct {
	ID       string
	Name     string
	Location string
}

// Product is a sellable item. It is never joined against sales.
type Product struct {
	ID   string
	Name string
}

// Sale is one entry of the append-only sales log. Amount is in LKR.
type Sale struct {
	BranchID  string
	ProductID string
	Amount    int64
	Date      time.Time
}

// RowError is a data fault: a persisted row that does not decode.
// It matches common.ErrMalformedRecord with errors.Is.
type RowError struct {
	Kind  records.Kind
	Line  int // 1-based, counting the header as line 1
	Field string
	Err   error
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s line %d: %v", e.Kind, e.Line, e.Err)
	}
	return fmt.Sprintf("%s line %d: field %q: %v", e.Kind, e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() []error {
	return []error{common.ErrMalformedRecord, e.Err}
}

// LineOf converts a zero-based data row index to its RowError line.
func LineOf(index int) int { return index + 2 }

func checkWidth(kind records.Kind, line int, r records.Row) error {
	if want := len(kind.Header()); len(r) < want {
		return &RowError{Kind: kind, Line: line, Err: fmt.Errorf("expected %d fields, got %d", want, len(r))}
	}
	return nil
}

func (c Credential) Row() records.Row { return records.Row{c.Username, c.Password} }

// CredentialFromRow decodes a users row.
func CredentialFromRow(line int, r records.Row) (Credential, error) {
	if err := checkWidth(records.KindUsers, line, r); err != nil {
		return Credential{}, err
	}
	return Credential{Username: r[0], Password: r[1]}, nil
}

func (b Branch) Row() records.Row { return records.Row{b.ID, b.Name, b.Location} }

// BranchFromRow decodes a branches row.
func BranchFromRow(line int, r records.Row) (Branch, error) {
	if err := checkWidth(records.KindBranches, line, r); err != nil {
		return Branch{}, err
	}
	return Branch{ID: r[0], Name: r[1], Location: r[2]}, nil
}

func (p Product) Row() records.Row { return records.Row{p.ID, p.Name} }

// ProductFromRow decodes a products row.
func ProductFromRow(line int, r records.Row) (Product, error) {
	if err := checkWidth(records.KindProducts, line, r); err != nil {
		return Product{}, err
	}
	return Product{ID: r[0], Name: r[1]}, nil
}

func (s Sale) Row() records.Row {
	return records.Row{s.BranchID, s.ProductID, strconv.FormatInt(s.Amount, 10), timex.FormatDate(s.Date)}
}

// SaleFromRow decodes a sales row. The amount must be an integer and the
// date must be YYYY-MM-DD; anything else is a RowError, never a zero value.
func SaleFromRow(line int, r records.Row) (Sale, error) {
	if err := checkWidth(records.KindSales, line, r); err != nil {
		return Sale{}, err
	}

	amount, err := ParseAmount(r[2])
	if err != nil {
		return Sale{}, &RowError{Kind: records.KindSales, Line: line, Field: "Amount Sold", Err: err}
	}

	date, err := timex.ParseDate(strings.TrimSpace(r[3]))
	if err != nil {
		return Sale{}, &RowError{Kind: records.KindSales, Line: line, Field: "Date", Err: err}
	}

	return Sale{BranchID: r[0], ProductID: r[1], Amount: amount, Date: date}, nil
}

// ParseAmount parses an integer LKR amount, tolerating surrounding blanks.
func ParseAmount(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
