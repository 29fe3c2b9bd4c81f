package navigation

import (
	"context"
	"sync"
)

// A History tracks where a single client is in the dashboard.
// A History is safe for concurrent use; pushes are applied one at a time.
type History struct {
	nav *Navigator
	doc Document

	mu      sync.Mutex
	current string
	pending *Pending
}

// NewHistory constructs a *History for doc, starting before any navigation.
func NewHistory(nav *Navigator, doc Document) *History {
	return &History{nav: nav, doc: doc}
}

// Push navigates from the current location to path.
// A committed push supersedes the previous one, cancelling its pending view load.
// A push failing to commit leaves the current location as it was.
func (h *History) Push(ctx context.Context, path string) (*Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := h.nav.Navigate(ctx, h.doc, h.current, path)
	if err != nil {
		return nil, err
	}

	if h.pending != nil {
		h.pending.Cancel()
	}

	h.current = res.Match.Path
	h.pending = res.Pending
	return res, nil
}

// Current returns the path last committed to,
// or an empty string if nothing was.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}
