// Package collection implements the list view-model shared by every
// dashboard page: one owner for a fetched collection's state, its
// filter/page bookkeeping, and its mutation lifecycle.
package collection

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Mode selects where filtering and pagination happen.
type Mode int

const (
	// ClientFiltered fetches the whole collection once and filters/pages
	// locally. Used for collections that fit in one response.
	ClientFiltered Mode = iota
	// ServerFiltered re-queries the backend on every filter or page
	// change. Used for collections the backend paginates.
	ServerFiltered
)

// ErrBusy is returned when a mutation of the same kind is already in
// flight for the same item.
var ErrBusy = errors.New("operation already in flight for this item")

// ErrNotConfirmed is returned by Remove when the caller has not obtained
// confirmation; no request is issued.
var ErrNotConfirmed = errors.New("delete not confirmed")

// Filter is the client-visible search state of one page.
type Filter struct {
	Search   string
	Category string
	Status   string
}

// Query is what a Source receives: the active filter plus the 0-based
// page cursor. Client-filtered sources get a zero Query and must return
// everything.
type Query struct {
	Filter
	Page     int
	PageSize int
}

// Result is one page (or the whole collection) as returned by a Source.
type Result[T any] struct {
	Items      []T
	TotalCount int
}

// Source is the backend binding a View drives. Implementations live in
// the catalog package, one per entity.
type Source[T any] interface {
	List(ctx context.Context, q Query) (Result[T], error)
	Create(ctx context.Context, payload any) (T, error)
	Update(ctx context.Context, id string, payload any) (T, error)
	Delete(ctx context.Context, id string) error
}

// State is a snapshot of the collection as the presentation layer sees
// it. Items must be treated as read-only.
type State[T any] struct {
	Items      []T
	Loading    bool
	Err        error
	Page       int
	PageSize   int
	TotalCount int
}

// Config wires a View to its Source and declares how items are matched
// against a Filter in client mode.
type Config[T any] struct {
	Source   Source[T]
	Mode     Mode
	PageSize int

	// Fields returns the searchable text fields of an item; nil disables
	// text search. Category returns the item's category value; nil
	// disables category filtering.
	Fields   func(T) map[string]string
	Category func(T) string
}

// View owns one collection's state. All exported methods are safe for
// concurrent use; the state is only ever mutated under the view's lock.
type View[T any] struct {
	cfg Config[T]

	mu     sync.Mutex
	state  State[T]
	filter Filter
	gen    uint64
	busy   map[string]struct{}
}

func NewView[T any](cfg Config[T]) *View[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 25
	}
	return &View[T]{
		cfg:  cfg,
		busy: make(map[string]struct{}),
		state: State[T]{
			PageSize: cfg.PageSize,
		},
	}
}

// State returns a snapshot of the current collection state.
func (v *View[T]) State() State[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Filter returns the active filter.
func (v *View[T]) Filter() Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// Mount initializes filter and page and performs the first load, the
// page-open sequence.
func (v *View[T]) Mount(ctx context.Context, f Filter, page int) error {
	v.mu.Lock()
	v.filter = f
	v.state.Page = clampPage(page)
	v.mu.Unlock()
	return v.Load(ctx)
}

// Load fetches the collection. Responses are applied last-request-wins:
// if another Load was issued after this one, this response is discarded
// when it arrives, whatever the order of arrival.
func (v *View[T]) Load(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.state.Loading = true
	q := v.queryLocked()
	src := v.cfg.Source
	v.mu.Unlock()

	res, err := src.List(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		// A newer load owns the state now; drop this response.
		return nil
	}
	v.state.Loading = false
	if err != nil {
		v.state.Err = err
		return err
	}
	v.state.Err = nil
	v.state.Items = res.Items
	v.state.TotalCount = res.TotalCount
	return nil
}

// Create posts a new item and refreshes the collection with the current
// filter and page. There is no optimistic insert: server-assigned fields
// only ever come from the reload.
func (v *View[T]) Create(ctx context.Context, payload any) (T, error) {
	item, err := v.cfg.Source.Create(ctx, payload)
	if err != nil {
		var zero T
		return zero, err
	}
	_ = v.Load(ctx)
	return item, nil
}

// Update mutates one item and refreshes. A second Update for the same id
// while one is pending returns ErrBusy without touching the network.
func (v *View[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var item T
	err := v.Do(ctx, "update", id, func(ctx context.Context) error {
		var err error
		item, err = v.cfg.Source.Update(ctx, id, payload)
		return err
	})
	return item, err
}

// Remove deletes one item. confirmed reflects a confirmation the caller
// already obtained; without it no request is issued. Same-id Remove calls
// are serialized like Update.
func (v *View[T]) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return v.Do(ctx, "remove", id, func(ctx context.Context) error {
		return v.cfg.Source.Delete(ctx, id)
	})
}

// Do runs op under the per-(kind,id) in-flight guard and refreshes the
// collection when it succeeds. Update and Remove are built on it; pages
// with extra mutations (ticket replies) use it directly.
func (v *View[T]) Do(ctx context.Context, kind, id string, op func(context.Context) error) error {
	if err := v.acquire(kind, id); err != nil {
		return err
	}
	err := op(ctx)
	v.release(kind, id)
	if err != nil {
		return err
	}
	_ = v.Load(ctx)
	return nil
}

// SetFilter replaces the filter. In client mode the derived view simply
// recomputes; in server mode the page resets to 0 and a new load is
// issued.
func (v *View[T]) SetFilter(ctx context.Context, f Filter) error {
	v.mu.Lock()
	v.filter = f
	if v.cfg.Mode == ClientFiltered {
		v.mu.Unlock()
		return nil
	}
	v.state.Page = 0
	v.mu.Unlock()
	return v.Load(ctx)
}

// SetPage moves the page cursor. Server mode re-queries.
func (v *View[T]) SetPage(ctx context.Context, page int) error {
	v.mu.Lock()
	v.state.Page = clampPage(page)
	if v.cfg.Mode == ClientFiltered {
		v.mu.Unlock()
		return nil
	}
	v.mu.Unlock()
	return v.Load(ctx)
}

// Visible returns the items the current page shows: in client mode the
// filtered slice of the loaded collection at the page cursor, in server
// mode the items as the backend returned them.
func (v *View[T]) Visible() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cfg.Mode == ServerFiltered {
		return v.state.Items
	}
	filtered := v.filteredLocked()
	start := v.state.Page * v.state.PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + v.state.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// VisibleTotal is the number of items matching the filter: the filtered
// count in client mode, the backend's total in server mode.
func (v *View[T]) VisibleTotal() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cfg.Mode == ServerFiltered {
		return v.state.TotalCount
	}
	return len(v.filteredLocked())
}

func (v *View[T]) filteredLocked() []T {
	items := v.state.Items
	f := v.filter
	if f.Search == "" && f.Category == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if v.matches(it, f) {
			out = append(out, it)
		}
	}
	return out
}

func (v *View[T]) matches(item T, f Filter) bool {
	var fields map[string]string
	if v.cfg.Fields != nil {
		fields = v.cfg.Fields(item)
	}
	category := ""
	if v.cfg.Category != nil {
		category = v.cfg.Category(item)
	}
	return Matches(fields, category, f)
}

// Matches reports whether an item with the given searchable fields and
// category passes the filter: category must equal when set, and the
// search text must case-insensitively substring-match at least one field
// when non-empty.
func Matches(fields map[string]string, category string, f Filter) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, category) {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, val := range fields {
		if strings.Contains(strings.ToLower(val), needle) {
			return true
		}
	}
	return false
}

func (v *View[T]) queryLocked() Query {
	if v.cfg.Mode == ClientFiltered {
		return Query{}
	}
	return Query{
		Filter:   v.filter,
		Page:     v.state.Page,
		PageSize: v.state.PageSize,
	}
}

func (v *View[T]) acquire(kind, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	key := kind + ":" + id
	if _, inFlight := v.busy[key]; inFlight {
		return ErrBusy
	}
	v.busy[key] = struct{}{}
	return nil
}

func (v *View[T]) release(kind, id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.busy, kind+":"+id)
}

func clampPage(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
