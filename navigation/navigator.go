package navigation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/http/router"
	"github.com/xy-planning-network/cryptodash/logger"
	"github.com/xy-planning-network/cryptodash/view"
)

const defaultMaxRedirects = 10

var (
	ErrCancelled      = errors.New("navigation cancelled")
	ErrNoContinuation = errors.New("hook returned without calling next")
	ErrRedirectLoop   = errors.New("too many redirects")
)

// An Observer is told about every navigation a Navigator commits.
type Observer interface {
	Navigated(route string)
	Redirected()
	ViewLoaded(route string, took time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) Navigated(string)                       {}
func (noopObserver) Redirected()                            {}
func (noopObserver) ViewLoaded(string, time.Duration, error) {}

// A Navigator moves between locations in a [router.Table].
// A Navigator is safe for concurrent use.
type Navigator struct {
	table        *router.Table
	hooks        []Hook
	logger       logger.Logger
	observer     Observer
	maxRedirects int
}

// A NavigatorOpt configures a *Navigator.
type NavigatorOpt func(*Navigator)

// WithHooks appends hooks to run before every navigation commits, in order.
func WithHooks(hooks ...Hook) NavigatorOpt {
	return func(n *Navigator) {
		n.hooks = append(n.hooks, hooks...)
	}
}

// WithLogger sets the logger the Navigator reports misbehaving hooks to.
func WithLogger(l logger.Logger) NavigatorOpt {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithMaxRedirects bounds how many redirects a single navigation follows.
func WithMaxRedirects(limit int) NavigatorOpt {
	return func(n *Navigator) {
		if limit > 0 {
			n.maxRedirects = limit
		}
	}
}

// WithObserver sets the Observer of committed navigations.
func WithObserver(o Observer) NavigatorOpt {
	return func(n *Navigator) {
		if o != nil {
			n.observer = o
		}
	}
}

// NewNavigator constructs a *Navigator over table.
func NewNavigator(table *router.Table, opts ...NavigatorOpt) *Navigator {
	n := &Navigator{
		table:        table,
		logger:       logger.New(logger.WithKind(cryptodash.NavigationLogKind)),
		observer:     noopObserver{},
		maxRedirects: defaultMaxRedirects,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// A Result is a committed navigation.
type Result struct {
	Event   *Event
	Match   router.Match
	Pending *Pending
}

// Navigate moves doc from the path from to the path to.
// If from is empty, the navigation starts at [Start].
//
// Route redirects are followed before any hook runs.
// Hooks then run in order; the first not allowing the navigation decides its fate.
// Navigate returns an error wrapping:
//   - [ErrCancelled] if a hook cancels
//   - [ErrNoContinuation] if a hook returns without calling next
//   - [ErrRedirectLoop] if the navigation redirects more times than allowed
//
// Once every hook allows it, the navigation commits
// and the matched view starts loading behind [Result.Pending].
func (n *Navigator) Navigate(ctx context.Context, doc Document, from, to string) (*Result, error) {
	origin := Start
	if from != "" {
		origin = LocationOf(n.table.Resolve(from))
	}

	var (
		redirects      int
		redirectedFrom string
		target         = to
	)

	for {
		m := n.table.Resolve(target)
		for m.IsRedirect() {
			if redirects >= n.maxRedirects {
				return nil, fmt.Errorf("%w: navigating to %s", ErrRedirectLoop, to)
			}

			if redirectedFrom == "" {
				redirectedFrom = m.Path
			}

			redirects++
			n.observer.Redirected()
			m = n.table.Resolve(m.Route.Redirect)
		}

		m.RedirectedFrom = redirectedFrom
		ev := &Event{
			ID:       uuid.New(),
			From:     origin,
			To:       LocationOf(m),
			Document: doc,
		}

		d, err := n.runHooks(ctx, ev)
		if err != nil {
			return nil, err
		}

		switch d.kind {
		case allow:
			return n.commit(ctx, ev, m), nil
		case cancel:
			return nil, fmt.Errorf("%w: navigating to %s", ErrCancelled, ev.To.Path)
		}

		if redirects >= n.maxRedirects {
			return nil, fmt.Errorf("%w: navigating to %s", ErrRedirectLoop, to)
		}

		if redirectedFrom == "" {
			redirectedFrom = m.Path
		}

		redirects++
		n.observer.Redirected()
		target = d.path
	}
}

// Resolve describes where navigating to the path to would land,
// following route redirects without running hooks or loading the view.
// Resolve returns an error wrapping [ErrRedirectLoop]
// if the path redirects more times than allowed.
func (n *Navigator) Resolve(to string) (Location, error) {
	m := n.table.Resolve(to)
	var redirectedFrom string
	for redirects := 0; m.IsRedirect(); redirects++ {
		if redirects >= n.maxRedirects {
			return Location{}, fmt.Errorf("%w: resolving %s", ErrRedirectLoop, to)
		}

		if redirectedFrom == "" {
			redirectedFrom = m.Path
		}

		m = n.table.Resolve(m.Route.Redirect)
	}

	m.RedirectedFrom = redirectedFrom
	return LocationOf(m), nil
}

// runHooks runs every hook for ev,
// stopping at the first that does not allow the navigation.
func (n *Navigator) runHooks(ctx context.Context, ev *Event) (Decision, error) {
	for i, hook := range n.hooks {
		if err := ctx.Err(); err != nil {
			return Decision{}, err
		}

		c := new(continuation)
		hook(ctx, ev, c.next)

		d, called, extra := c.result()
		if !called {
			return Decision{}, fmt.Errorf("%w: hook %d navigating to %s", ErrNoContinuation, i, ev.To.Path)
		}

		if extra > 0 {
			n.logger.Warn(fmt.Sprintf("hook %d called next %d extra times", i, extra), &logger.LogContext{
				Data: map[string]any{"id": ev.ID.String(), "to": ev.To.Path, "decision": d.String()},
			})
		}

		if d.kind != allow {
			return d, nil
		}
	}

	return Allow(), nil
}

func (n *Navigator) commit(ctx context.Context, ev *Event, m router.Match) *Result {
	route := m.Route.Name
	n.observer.Navigated(route)

	p := newPending(ctx, func(ctx context.Context) (view.View, error) {
		start := time.Now()
		v, err := n.table.Load(ctx, m)
		n.observer.ViewLoaded(route, time.Since(start), err)
		return v, err
	})

	return &Result{Event: ev, Match: m, Pending: p}
}
