package session

import (
	"net/http"

	gorilla "github.com/gorilla/sessions"
)

// keys used internal to the Session.
const (
	sessionKey  = "cryptodash-session-gorilla"
	lastPathKey = sessionKey + "-last-path"
)

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Delete(w http.ResponseWriter, r *http.Request) error
	Get(key string) any
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
}

// The NavigationSessionable remembers the location a client last navigated to,
// so the next navigation knows where it comes from.
type NavigationSessionable interface {
	LastPath() string
	SetLastPath(w http.ResponseWriter, r *http.Request, path string) error
	Sessionable
}

// A Session lightly wraps a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a Session from a *gorilla.Session.
func NewSession(g *gorilla.Session) Session { return Session{s: g} }

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// LastPath retrieves the path last committed by a navigation in this session.
// If none was, LastPath returns an empty string.
func (s Session) LastPath() string {
	if s.s == nil {
		return ""
	}

	p, _ := s.s.Values[lastPathKey].(string)
	return p
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// SetLastPath stores the path a navigation committed to.
func (s Session) SetLastPath(w http.ResponseWriter, r *http.Request, path string) error {
	return s.Set(w, r, lastPathKey, path)
}
