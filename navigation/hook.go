package navigation

import (
	"context"
	"fmt"
	"sync"

	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/http/router"
	"github.com/xy-planning-network/cryptodash/logger"
)

// AppName is the title of the dashboard.
const AppName = "Crypto Dashboard"

type decisionKind int

const (
	allow decisionKind = iota
	cancel
	redirect
)

// A Decision is what a Hook passes to Next.
type Decision struct {
	kind decisionKind
	path string
}

// Allow lets the navigation proceed.
func Allow() Decision { return Decision{kind: allow} }

// Cancel aborts the navigation.
func Cancel() Decision { return Decision{kind: cancel} }

// RedirectTo abandons the navigation and starts a new one to path.
func RedirectTo(path string) Decision { return Decision{kind: redirect, path: path} }

func (d Decision) String() string {
	switch d.kind {
	case allow:
		return "allow"
	case cancel:
		return "cancel"
	default:
		return "redirect to " + d.path
	}
}

// Next continues a navigation with the Decision a Hook makes.
type Next func(Decision)

// A Hook runs before a navigation commits.
//
// A Hook must call next exactly once before returning.
// Calls after the first are ignored.
type Hook func(ctx context.Context, ev *Event, next Next)

// FormatTitle derives the document title for a location with meta.
func FormatTitle(appName string, meta router.Meta) string {
	if title, ok := meta.Title(); ok {
		return fmt.Sprintf("%s | %s", title, appName)
	}

	return appName
}

// Title sets the title of the Event's Document from the meta of the location navigated to.
// Title always allows the navigation.
//
// If appName is empty, [AppName] is used.
func Title(appName string) Hook {
	if appName == "" {
		appName = AppName
	}

	return func(_ context.Context, ev *Event, next Next) {
		if ev.Document != nil {
			ev.Document.SetTitle(FormatTitle(appName, ev.To.Meta))
		}

		next(Allow())
	}
}

// Log records where every navigation comes from and goes to,
// along with the client's address when the context carries one.
// Log always allows the navigation.
func Log(l logger.Logger) Hook {
	return func(ctx context.Context, ev *Event, next Next) {
		data := map[string]any{
			cryptodash.LogKindKey: cryptodash.NavigationLogKind,
			"id":                  ev.ID.String(),
			"from":                ev.From.Path,
			"to":                  ev.To.Path,
		}

		if ev.To.Name != "" {
			data["route"] = ev.To.Name
		}

		if ev.To.RedirectedFrom != "" {
			data["redirectedFrom"] = ev.To.RedirectedFrom
		}

		if ip, ok := cryptodash.IPAddressFromContext(ctx); ok {
			data["ip"] = ip
		}

		l.Info(fmt.Sprintf("navigating from %s to %s", ev.From.Path, ev.To.Path), &logger.LogContext{Data: data})
		next(Allow())
	}
}

// continuation records the first Decision passed to it.
type continuation struct {
	mu       sync.Mutex
	called   bool
	decision Decision
	extra    int
}

func (c *continuation) next(d Decision) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.called {
		c.extra++
		return
	}

	c.called = true
	c.decision = d
}

func (c *continuation) result() (d Decision, called bool, extra int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decision, c.called, c.extra
}
