// Package view holds the item board's client-side state machine and its HTML
// rendering. A View is driven by Mount and Submit and rendered from a Snapshot.
package view

import (
	"context"
	"strings"
	"sync"

	"github.com/ghuser/itemboard/services/item/application/client"
)

// Phase is the display phase of a View.
type Phase int

const (
	Loading Phase = iota
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// User-facing error messages.
const (
	MsgFetchFailed  = "Failed to fetch items"
	MsgCreateFailed = "Failed to create item"
)

// API is the subset of the item API a View needs. *client.Client satisfies it.
type API interface {
	ListItems(ctx context.Context) ([]client.Item, error)
	CreateItem(ctx context.Context, name string) (client.Item, error)
}

const pageTitle = "Item Board"

// Snapshot is an immutable copy of a View's state.
type Snapshot struct {
	Phase Phase
	Items []client.Item
	// ListLoaded is true only while Items holds the result of a successful
	// fetch. A failed create keeps it; a failed fetch clears it.
	ListLoaded bool
	Input      string
	Error      string
	Submitting bool
}

// View is safe for concurrent use.
type View struct {
	api API

	mu         sync.Mutex
	phase      Phase
	items      []client.Item
	listLoaded bool
	input      string
	errMsg     string
	submitting bool
}

// New returns a View in the Loading phase.
func New(api API) *View {
	return &View{api: api, phase: Loading, items: []client.Item{}}
}

// Mount fetches the item list. On failure the View enters the error phase
// with MsgFetchFailed and no items are displayed.
func (v *View) Mount(ctx context.Context) {
	v.mu.Lock()
	v.phase = Loading
	v.mu.Unlock()

	items, err := v.api.ListItems(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.phase = Failed
		v.errMsg = MsgFetchFailed
		v.items = []client.Item{}
		v.listLoaded = false
		return
	}
	v.phase = Loaded
	v.errMsg = ""
	v.items = append([]client.Item(nil), items...)
	v.listLoaded = true
}

// SetInput replaces the pending item name.
func (v *View) SetInput(s string) {
	v.mu.Lock()
	v.input = s
	v.mu.Unlock()
}

// Submit creates an item from the current input. Blank input, or a submit
// while another is in flight, does nothing. Success clears the input and
// refreshes the list; failure keeps both the input and the displayed items.
func (v *View) Submit(ctx context.Context) {
	v.mu.Lock()
	name := v.input
	if strings.TrimSpace(name) == "" || v.submitting {
		v.mu.Unlock()
		return
	}
	v.submitting = true
	v.mu.Unlock()

	_, err := v.api.CreateItem(ctx, name)

	v.mu.Lock()
	v.submitting = false
	if err != nil {
		v.phase = Failed
		v.errMsg = MsgCreateFailed
		v.mu.Unlock()
		return
	}
	v.input = ""
	v.mu.Unlock()

	v.Mount(ctx)
}

// Snapshot returns a copy of the current state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		Phase:      v.phase,
		Items:      append([]client.Item{}, v.items...),
		ListLoaded: v.listLoaded,
		Input:      v.input,
		Error:      v.errMsg,
		Submitting: v.submitting,
	}
}
