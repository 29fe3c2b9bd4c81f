package view

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/xy-planning-network/cryptodash"
	"golang.org/x/sync/singleflight"
)

const (
	CoinsList  = "CoinsList"
	CoinDetail = "CoinDetail"
	AdminPanel = "AdminPanel"

	// DefaultDevOrigin is where the Vite dev server runs in development.
	DefaultDevOrigin = "http://localhost:8080"

	assetsBase = "client/dist/assets"
	devSrcDir  = "src/views"
)

// ErrLoad wraps every failure to locate a view.
var ErrLoad = errors.New("cannot load view")

// A View is the client-side component a route renders.
type View struct {
	// Name of the component, e.g. "CoinDetail".
	Name string `json:"name"`

	// Entry is the URI of the module implementing the component.
	Entry string `json:"entry"`
}

// A Loader produces a View when a route is navigated to.
type Loader func(ctx context.Context) (View, error)

// A Set holds the Loader for each of the dashboard's views.
type Set struct {
	CoinsList  Loader
	CoinDetail Loader
	AdminPanel Loader
}

// A Bundle finds view modules in the build output of the client application.
type Bundle struct {
	env       cryptodash.Environment
	fs        fs.FS
	devOrigin string
}

// A BundleOpt configures a *Bundle.
type BundleOpt func(*Bundle)

// WithDevOrigin sets the origin of the dev server modules are served from in development.
func WithDevOrigin(origin string) BundleOpt {
	return func(b *Bundle) {
		b.devOrigin = origin
	}
}

// NewBundle constructs a *Bundle reading from filesys.
// If filesys is nil, the working directory is used.
func NewBundle(env cryptodash.Environment, filesys fs.FS, opts ...BundleOpt) *Bundle {
	if filesys == nil {
		filesys = os.DirFS(".")
	}

	b := &Bundle{env: env, fs: filesys, devOrigin: DefaultDevOrigin}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Loader returns a memoized Loader for the named view.
func (b *Bundle) Loader(name string) Loader {
	return Lazy(func(_ context.Context) (View, error) {
		entry, err := b.entry(name)
		if err != nil {
			return View{}, err
		}

		return View{Name: name, Entry: entry}, nil
	})
}

// Set returns the Loaders for every dashboard view.
func (b *Bundle) Set() Set {
	return Set{
		CoinsList:  b.Loader(CoinsList),
		CoinDetail: b.Loader(CoinDetail),
		AdminPanel: b.Loader(AdminPanel),
	}
}

// entry resolves the URI of the module for the named view.
//
// In development, the Vite dev server compiles the component source on request.
// Otherwise, the hashed chunk emitted by Vite must exist,
// e.g., client/dist/assets/CoinDetail-1a2b3c.js.
func (b *Bundle) entry(name string) (string, error) {
	if b.env.IsDevelopment() {
		return fmt.Sprintf("%s/%s/%s.vue", b.devOrigin, devSrcDir, name), nil
	}

	glob := fmt.Sprintf("%s/%s-*.js", assetsBase, name)
	matches, err := fs.Glob(b.fs, glob)
	if errors.Is(err, path.ErrBadPattern) {
		return "", fmt.Errorf("%w %s: %s", ErrLoad, name, err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w %s: %w: no chunk matching %s", ErrLoad, name, cryptodash.ErrNotExist, glob)
	}

	return "/" + matches[0], nil
}

// Lazy wraps load so that it runs at most once successfully.
// Concurrent calls share a single in-flight load;
// a caller whose ctx ends stops waiting without cancelling the load for others.
func Lazy(load Loader) Loader {
	lz := &lazy{load: load}
	return lz.get
}

type lazy struct {
	load  Loader
	group singleflight.Group

	mu   sync.RWMutex
	view *View
}

func (lz *lazy) get(ctx context.Context) (View, error) {
	lz.mu.RLock()
	v := lz.view
	lz.mu.RUnlock()
	if v != nil {
		return *v, nil
	}

	ch := lz.group.DoChan("view", func() (any, error) {
		lz.mu.RLock()
		done := lz.view
		lz.mu.RUnlock()
		if done != nil {
			return *done, nil
		}

		v, err := lz.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		lz.mu.Lock()
		lz.view = &v
		lz.mu.Unlock()

		return v, nil
	})

	select {
	case <-ctx.Done():
		return View{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return View{}, res.Err
		}

		return res.Val.(View), nil
	}
}
