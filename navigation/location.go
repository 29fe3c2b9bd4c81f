package navigation

import (
	"sync"

	"github.com/google/uuid"
	"github.com/xy-planning-network/cryptodash/http/router"
)

// A Location describes where a navigation starts or ends.
type Location struct {
	Path   string            `json:"path"`
	Name   string            `json:"name,omitempty"`
	Params map[string]string `json:"params,omitempty"`
	Meta   router.Meta       `json:"meta,omitempty"`

	// RedirectedFrom is the path originally navigated to
	// when redirects led to this Location.
	RedirectedFrom string `json:"redirectedFrom,omitempty"`
}

// Start is the Location every first navigation comes from.
var Start = Location{Path: "/"}

// LocationOf describes the Location a Match resolves to.
func LocationOf(m router.Match) Location {
	return Location{
		Path:           m.Path,
		Name:           m.Route.Name,
		Params:         m.Params,
		Meta:           m.Route.Meta,
		RedirectedFrom: m.RedirectedFrom,
	}
}

// A Document is whatever displays the dashboard and carries its title.
type Document interface {
	SetTitle(title string)
	Title() string
}

// A Page is an in-memory Document.
// A Page is safe for concurrent use.
type Page struct {
	mu    sync.RWMutex
	title string
}

func (p *Page) SetTitle(title string) {
	p.mu.Lock()
	p.title = title
	p.mu.Unlock()
}

func (p *Page) Title() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.title
}

// An Event is one navigation, handed to every Hook before it commits.
type Event struct {
	ID       uuid.UUID
	From     Location
	To       Location
	Document Document
}

// Meta is the resolved meta of the Location navigated to.
func (e *Event) Meta() router.Meta { return e.To.Meta }
