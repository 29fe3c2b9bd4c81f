package navigation

import (
	"context"

	"github.com/xy-planning-network/cryptodash/view"
)

// A Pending is a view still loading for a committed navigation.
type Pending struct {
	done   chan struct{}
	cancel context.CancelFunc

	view view.View
	err  error
}

// newPending runs load on its own goroutine.
func newPending(ctx context.Context, load func(context.Context) (view.View, error)) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pending{done: make(chan struct{}), cancel: cancel}

	go func() {
		defer close(p.done)
		defer cancel()
		p.view, p.err = load(ctx)
	}()

	return p
}

// Done is closed once the load finishes.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the load finishes or ctx ends.
func (p *Pending) Wait(ctx context.Context) (view.View, error) {
	select {
	case <-ctx.Done():
		return view.View{}, ctx.Err()
	case <-p.done:
		return p.view, p.err
	}
}

// Cancel drops interest in the load.
// A loader honoring its context stops early and Wait reports its error.
func (p *Pending) Cancel() { p.cancel() }
