package records

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/storekeeper/internal/common"
)

// Storage format tags.
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatSQLite = "sqlite"
)

// Row is one record: its fields in header order.
type Row []string

// Location says where a container lives and which format stores it.
type Location struct {
	Kind   Kind
	Format string
	Path   string
}

// Backend is a storage strategy bound to one container.
type Backend interface {
	// Load returns every data row in insertion order, header excluded.
	// A container that does not exist yet yields an empty slice.
	Load(ctx context.Context) ([]Row, error)

	// Append persists rows after the existing ones. If the container does not
	// exist it is created with header first. The call is all-or-nothing.
	Append(ctx context.Context, header Row, rows ...Row) error
}

// HeaderReader is implemented by backends that can report the header a
// container was created with. Header returns nil if the container does not
// exist.
type HeaderReader interface {
	Header(ctx context.Context) (Row, error)
}

// Opener binds a storage strategy to a location.
type Opener func(loc Location) (Backend, error)

// Registry is the strategy table keyed by format tag.
type Registry struct {
	mu      sync.RWMutex
	openers map[string]Opener
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{openers: make(map[string]Opener)}
}

// Register adds or replaces the opener for format.
func (r *Registry) Register(format string, o Opener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openers[format] = o
}

// Formats returns the registered tags, sorted.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.openers))
	for f := range r.openers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Open returns the backend for loc using the opener registered for its format.
func (r *Registry) Open(loc Location) (Backend, error) {
	r.mu.RLock()
	o, ok := r.openers[loc.Format]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, loc.Format)
	}
	return o(loc)
}

// Store resolves containers to backends and exposes kind-level Load/Append.
type Store struct {
	registry  *Registry
	locations map[Kind]Location
}

// NewStore builds a Store over the given locations. Later locations for the
// same kind win.
func NewStore(registry *Registry, locations []Location) *Store {
	m := make(map[Kind]Location, len(locations))
	for _, l := range locations {
		m[l.Kind] = l
	}
	return &Store{registry: registry, locations: m}
}

// Location returns the configured location for k.
func (s *Store) Location(k Kind) (Location, bool) {
	l, ok := s.locations[k]
	return l, ok
}

// Resolve maps a container name to the backend able to read it.
func (s *Store) Resolve(name string) (Backend, error) {
	k, err := KindFromName(name)
	if err != nil {
		return nil, err
	}
	return s.backend(k)
}

func (s *Store) backend(k Kind) (Backend, error) {
	loc, ok := s.locations[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no configured location", common.ErrUnsupportedContainerKind, k)
	}
	return s.registry.Open(loc)
}

// Load reads every data row of the container of kind k.
func (s *Store) Load(ctx context.Context, k Kind) ([]Row, error) {
	b, err := s.backend(k)
	if err != nil {
		return nil, err
	}
	rows, err := b.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", k, err)
	}
	return rows, nil
}

// Append adds rows to the container of kind k, creating it with the kind's
// header if needed.
func (s *Store) Append(ctx context.Context, k Kind, rows ...Row) error {
	b, err := s.backend(k)
	if err != nil {
		return err
	}
	if err := b.Append(ctx, k.Header(), rows...); err != nil {
		return fmt.Errorf("append %s: %w", k, err)
	}
	return nil
}

// Ensure creates every configured container that does not exist yet. For
// backends that implement HeaderReader it also checks that the stored header
// is the kind's header, so a container pointed at the wrong file is refused.
func (s *Store) Ensure(ctx context.Context) error {
	for _, k := range Kinds {
		if _, ok := s.locations[k]; !ok {
			continue
		}
		if err := s.Append(ctx, k); err != nil {
			return err
		}
		if err := s.checkHeader(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) checkHeader(ctx context.Context, k Kind) error {
	b, err := s.backend(k)
	if err != nil {
		return err
	}
	hr, ok := b.(HeaderReader)
	if !ok {
		return nil
	}
	got, err := hr.Header(ctx)
	if err != nil {
		return fmt.Errorf("header %s: %w", k, err)
	}
	if got == nil {
		return nil
	}
	if want := k.Header(); !sameHeader(got, want) {
		return fmt.Errorf("%w: %s has %q, want %q", common.ErrHeaderMismatch, k, got, want)
	}
	return nil
}

// sameHeader compares field by field, ignoring case, surrounding blanks and
// a leading byte order mark.
func sameHeader(got, want Row) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		g := strings.TrimSpace(strings.TrimPrefix(got[i], "\ufeff"))
		if !strings.EqualFold(g, want[i]) {
			return false
		}
	}
	return true
}
