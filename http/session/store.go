package session

import (
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/boj/redistore"
	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/cryptodash"
)

const defaultMaxAge = 86400 // 1 day

// The SessionStorer defines methods for retrieving the Session for the given *http.Request.
type SessionStorer interface {
	GetSession(r *http.Request) (Session, error)
}

// A Service wraps a gorilla.Store to manage constructing a new one
// and accessing the sessions contained in it.
//
// Service implements SessionStorer.
type Service struct {
	// The authentication key.
	ak []byte

	// The encryption key.
	ek []byte

	// The name this Service's sessions are stored under.
	// Also used as the name of the cookie.
	sn string

	// The environment the Service is operating within.
	env cryptodash.Environment

	// The number of seconds a session is valid.
	maxAge int

	// how the Service actually implements storing sessions.
	store gorilla.Store
}

// A Config provides the required values
type Config struct {
	Env cryptodash.Environment

	// The name sessions are stored under.
	SessionName string

	// Hex-encoded key
	AuthKey string

	// Hex-encoded key
	EncryptKey string
}

func validateConfig(c Config) error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: %s", cryptodash.ErrBadConfig, err)
	}

	if c.SessionName == "" {
		return fmt.Errorf("%w: SessionName cannot be %q", cryptodash.ErrBadConfig, c.SessionName)
	}

	return nil
}

// NewStoreService initiates a data store for web sessions
// with the provided config.
// If no backing storage is provided through a functional option -
// like WithRedis - NewStoreService stores sessions in cookies.
func NewStoreService(cfg Config, opts ...ServiceOpt) (Service, error) {
	if err := validateConfig(cfg); err != nil {
		return Service{}, err
	}

	s := Service{
		env:    cfg.Env,
		maxAge: defaultMaxAge,
		sn:     cfg.SessionName,
	}

	var err error
	s.ak, err = hex.DecodeString(cfg.AuthKey)
	if err != nil {
		return Service{}, fmt.Errorf("%w: authentication key is not valid: %s", cryptodash.ErrBadConfig, err)
	}

	s.ek, err = hex.DecodeString(cfg.EncryptKey)
	if err != nil {
		return Service{}, fmt.Errorf("%w: encryption key is not valid: %s", cryptodash.ErrBadConfig, err)
	}

	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return Service{}, fmt.Errorf("%w: %s", cryptodash.ErrBadConfig, err)
		}
	}

	if s.store == nil {
		if err := WithCookie()(&s); err != nil {
			return Service{}, fmt.Errorf("%w: %s", cryptodash.ErrBadConfig, err)
		}
	}

	return s, nil
}

// GetSession retrieves the Session for the *http.Request,
// or creates a brand new one.
func (s Service) GetSession(r *http.Request) (Session, error) {
	session, err := s.store.Get(r, s.sn)
	return Session{s: session}, err
}

// A ServiceOpt configures the provided *Service,
// returning an error if unable to.
type ServiceOpt func(*Service) error

// WithCookie configures the Service to back session storage with cookies.
func WithCookie() ServiceOpt {
	return func(s *Service) error {
		var c *gorilla.CookieStore
		if len(s.ek) > 0 {
			c = gorilla.NewCookieStore(s.ak, s.ek)
		} else {
			c = gorilla.NewCookieStore(s.ak)
		}

		c.Options.Secure = !(s.env.IsDevelopment() || s.env.IsTesting())
		c.Options.HttpOnly = true
		c.MaxAge(s.maxAge)
		s.store = c
		return nil
	}
}

// WithMaxAge sets the time-to-live of a session.
//
// Call before other options so this value is available.
//
// Otherwise, the Service uses defaultMaxAge.
func WithMaxAge(secs int) ServiceOpt {
	return func(s *Service) error {
		s.maxAge = secs
		return nil
	}
}

// WithRedis configures the Service to back session storage with Redis.
//
// To authenticate to the Redis server, provide pass, otherwise its zero-value is acceptable.
func WithRedis(uri, pass string) ServiceOpt {
	return func(s *Service) error {
		r, err := redistore.NewRediStore(10, "tcp", uri, pass, s.ak, s.ek)
		if err != nil {
			return fmt.Errorf("%w: failed initializing Redis: %s", cryptodash.ErrBadConfig, err)
		}

		r.Options.Secure = !(s.env.IsDevelopment() || s.env.IsTesting())
		r.Options.HttpOnly = true
		r.SetMaxAge(s.maxAge)
		s.store = r
		return nil
	}
}

// A Stub is an in-memory SessionStorer for tests.
// Every request shares the one session.
type Stub struct {
	s *gorilla.Session
}

// NewStub constructs a *Stub, remembering lastPath if not empty.
func NewStub(lastPath string) *Stub {
	s := new(Stub)
	s.s = gorilla.NewSession(s, "stub")
	if lastPath != "" {
		s.s.Values[lastPathKey] = lastPath
	}

	return s
}

func (s *Stub) GetSession(r *http.Request) (Session, error) { return Session{s.s}, nil }

func (s *Stub) Get(r *http.Request, name string) (*gorilla.Session, error)               { return s.s, nil }
func (s *Stub) New(r *http.Request, name string) (*gorilla.Session, error)               { return s.s, nil }
func (s *Stub) Save(r *http.Request, w http.ResponseWriter, sess *gorilla.Session) error { return nil }
