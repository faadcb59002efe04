package records

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/storekeeper/internal/common"
)

// Kind names a container kind.
type Kind string

const (
	KindUsers    Kind = "users"
	KindBranches Kind = "branches"
	KindProducts Kind = "products"
	KindSales    Kind = "sales"
)

// Kinds lists every container kind in creation order.
var Kinds = []Kind{KindUsers, KindBranches, KindProducts, KindSales}

var headers = map[Kind]Row{
	KindUsers:    {"Username", "Password"},
	KindBranches: {"Branch ID", "Branch Name", "Location"},
	KindProducts: {"Product ID", "Product Name"},
	KindSales:    {"Branch ID", "Product ID", "Amount Sold", "Date"},
}

// Header returns a copy of the header row of k.
func (k Kind) Header() Row {
	return append(Row(nil), headers[k]...)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := headers[k]
	return ok
}

func (k Kind) String() string { return string(k) }

// KindFromName maps a container name to its kind. The name may be the bare
// kind ("sales") or a file name or path whose stem is the kind
// ("data/sales.csv").
func KindFromName(name string) (Kind, error) {
	base := filepath.Base(strings.TrimSpace(name))
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	k := Kind(stem)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedContainerKind, name)
	}
	return k, nil
}
