// Package controller implements the Catalog Controller.
//
// The controller sits between the fetcher and the view. It owns the raw
// items, the search term, the sort key and the load status, and it derives
// the rendered view from them.
//
//	┌─────────┐     ┌────────────┐     ┌──────┐
//	│ Fetcher │ ──> │ Controller │ ──> │ View │
//	└─────────┘     └────────────┘     └──────┘
//	                      ^                │
//	                      └── search/sort ─┘
//
// # Lifecycle
//
// New issues the load: the controller starts in the loading state and
// Load performs the single network call. Load may run on any goroutine;
// Apply, the setters and the getters belong to the UI goroutine. Dispose
// cancels an in-flight load, and any result that arrives afterwards is
// discarded by Apply.
package controller

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abelbrown/catalog/internal/catalog"
	"github.com/abelbrown/catalog/internal/diag"
	"github.com/abelbrown/catalog/internal/logging"
)

// FailureMessage is shown to the user when the load fails.
const FailureMessage = "Failed to fetch items data. Please try again later."

// ErrAlreadyLoaded is returned by a second call to Load.
var ErrAlreadyLoaded = errors.New("controller: items already loaded")

// Loader fetches the raw item list.
type Loader interface {
	Load(ctx context.Context) ([]catalog.Item, error)
}

// LoadResult is the outcome of Load, handed back to Apply.
type LoadResult struct {
	RequestID string
	Items     []catalog.Item
	Err       error
	Elapsed   time.Duration
}

// LoadFailure is the stored load error. Message is safe to show to users;
// Cause is for logs.
type LoadFailure struct {
	Message string
	Cause   error
}

func (f *LoadFailure) Error() string { return f.Message }

func (f *LoadFailure) Unwrap() error { return f.Cause }

// state is everything the controller owns. It is only mutated through
// Controller methods.
type state struct {
	items   []catalog.Item
	search  string
	sortKey catalog.SortKey
	loading bool
	failure *LoadFailure
	applied bool
}

// Controller owns catalog state and derives the rendered view.
type Controller struct {
	loader   Loader
	collator *collate.Collator
	log      *log.Logger
	events   *diag.Ring

	ctx    context.Context
	cancel context.CancelFunc

	started  atomic.Bool
	disposed atomic.Bool

	state state
	view  []catalog.Item
}

// Option configures a Controller.
type Option func(*Controller)

// WithCollator sets the collator used for name ordering.
func WithCollator(c *collate.Collator) Option {
	return func(ctrl *Controller) { ctrl.collator = c }
}

// WithSortKey sets the initial sort key.
func WithSortKey(k catalog.SortKey) Option {
	return func(ctrl *Controller) { ctrl.state.sortKey = k }
}

// WithLogger replaces the controller's logger.
func WithLogger(l *log.Logger) Option {
	return func(ctrl *Controller) { ctrl.log = l }
}

// WithEvents records load, search and sort events into ring.
func WithEvents(ring *diag.Ring) Option {
	return func(ctrl *Controller) { ctrl.events = ring }
}

// New creates a controller in the loading state. The parent context bounds
// the load; Dispose cancels it early.
func New(parent context.Context, loader Loader, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(parent)
	c := &Controller{
		loader: loader,
		ctx:    ctx,
		cancel: cancel,
		state: state{
			items:   []catalog.Item{},
			loading: true,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.WithPrefix("controller")
	}
	if c.collator == nil {
		c.collator = collate.New(language.English)
	}
	c.recompute()
	return c
}

// Context is cancelled when the controller is disposed. Follow-up work
// tied to this controller (thumbnails) should use it.
func (c *Controller) Context() context.Context {
	return c.ctx
}

// Load performs the one network call of this controller's lifetime.
// It blocks and only reads immutable fields, so it is safe to run off the
// UI goroutine. Every call after the first returns ErrAlreadyLoaded
// without touching the network.
func (c *Controller) Load() LoadResult {
	res := LoadResult{RequestID: uuid.NewString()}
	if !c.started.CompareAndSwap(false, true) {
		res.Err = ErrAlreadyLoaded
		return res
	}

	c.log.Debug("load started", "request", res.RequestID)
	c.events.Push(diag.Event{Kind: diag.KindLoadStart, Level: diag.LevelInfo, RequestID: res.RequestID})
	start := time.Now()
	res.Items, res.Err = c.loader.Load(c.ctx)
	res.Elapsed = time.Since(start)
	return res
}

// Apply stores a load result. It reports false when the result was
// discarded: the controller is disposed, the result is a duplicate
// load, or a result was already applied.
func (c *Controller) Apply(res LoadResult) bool {
	if c.disposed.Load() {
		c.log.Debug("load result discarded after dispose", "request", res.RequestID)
		c.events.Push(diag.Event{Kind: diag.KindLoadDiscard, Level: diag.LevelDebug, RequestID: res.RequestID})
		return false
	}
	if errors.Is(res.Err, ErrAlreadyLoaded) || c.state.applied {
		return false
	}

	c.state.applied = true
	c.state.loading = false

	if res.Err != nil {
		c.state.failure = &LoadFailure{Message: FailureMessage, Cause: res.Err}
		c.state.items = []catalog.Item{}
		c.log.Error("Error fetching items data", "request", res.RequestID, "elapsed", res.Elapsed, "err", res.Err)
		c.events.Push(diag.Event{
			Kind:      diag.KindLoadError,
			Level:     diag.LevelError,
			RequestID: res.RequestID,
			Dur:       res.Elapsed,
			Err:       res.Err.Error(),
		})
		c.recompute()
		return true
	}

	c.state.failure = nil
	c.state.items = res.Items
	if c.state.items == nil {
		c.state.items = []catalog.Item{}
	}
	if dups := duplicateIDs(c.state.items); len(dups) > 0 {
		c.log.Warn("duplicate item ids", "request", res.RequestID, "ids", dups)
	}
	c.log.Info("items loaded", "request", res.RequestID, "count", len(c.state.items), "elapsed", res.Elapsed)
	c.events.Push(diag.Event{
		Kind:      diag.KindLoadComplete,
		Level:     diag.LevelInfo,
		RequestID: res.RequestID,
		Dur:       res.Elapsed,
		Count:     len(c.state.items),
	})
	c.recompute()
	return true
}

// Dispose cancels any in-flight load. Safe to call more than once.
func (c *Controller) Dispose() {
	if c.disposed.CompareAndSwap(false, true) {
		c.cancel()
		c.events.Push(diag.Event{Kind: diag.KindDispose, Level: diag.LevelDebug})
	}
}

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool {
	return c.disposed.Load()
}

// SetSearch replaces the search term and recomputes the view.
func (c *Controller) SetSearch(term string) {
	if term == c.state.search {
		return
	}
	c.state.search = term
	c.recompute()
	c.events.Push(diag.Event{Kind: diag.KindSearch, Level: diag.LevelDebug, Term: term, Count: len(c.view)})
}

// SetSortKey replaces the sort key and recomputes the view.
func (c *Controller) SetSortKey(k catalog.SortKey) {
	if k == c.state.sortKey {
		return
	}
	c.state.sortKey = k
	c.recompute()
	c.events.Push(diag.Event{Kind: diag.KindSort, Level: diag.LevelDebug, Sort: k.String(), Count: len(c.view)})
}

// Search returns the current search term.
func (c *Controller) Search() string { return c.state.search }

// SortKey returns the current sort key.
func (c *Controller) SortKey() catalog.SortKey { return c.state.sortKey }

// Loading reports whether the load is still outstanding.
func (c *Controller) Loading() bool { return c.state.loading }

// Failure returns the stored load failure, or nil.
func (c *Controller) Failure() *LoadFailure { return c.state.failure }

// Items returns the raw fetched items.
func (c *Controller) Items() []catalog.Item { return c.state.items }

// Events returns the diagnostics ring, or nil when none was configured.
func (c *Controller) Events() *diag.Ring { return c.events }

// View returns the derived view. Callers must not modify it.
func (c *Controller) View() []catalog.Item {
	return c.view
}

func (c *Controller) recompute() {
	c.view = catalog.Derive(c.state.items, c.state.search, c.state.sortKey, c.collator)
}

func duplicateIDs(items []catalog.Item) []catalog.ID {
	seen := make(map[catalog.ID]bool, len(items))
	var dups []catalog.ID
	for _, item := range items {
		if seen[item.ID] {
			dups = append(dups, item.ID)
			continue
		}
		seen[item.ID] = true
	}
	return dups
}
