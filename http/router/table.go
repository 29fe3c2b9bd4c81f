package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/view"
)

// CatchAllPath is the pattern of the route matching any path no other route matches.
const CatchAllPath = "*"

// Names of the routes in the dashboard's route table.
const (
	CoinsListRoute  = "CoinsList"
	CoinDetailRoute = "CoinDetail"
	AdminPanelRoute = "AdminPanel"
)

var (
	ErrNoView = errors.New("route has no view")

	paramName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Meta is arbitrary data describing a Route, e.g. its title.
type Meta map[string]any

// Title returns the title set in Meta under "title".
// ok is false when no title is set, it is not a string, or it is empty.
func (m Meta) Title() (title string, ok bool) {
	title, ok = m["title"].(string)
	return title, ok && title != ""
}

// A Route maps a path pattern to the view rendered at it.
//
// Path is either a literal path like "/admin",
// a parameterized path whose ":name" segments each bind one path segment, like "/coin/:id",
// or [CatchAllPath].
//
// A Route has either a Loader or a Redirect.
type Route struct {
	Path string
	Name string

	// Loader is called only once the Route is navigated to.
	Loader view.Loader

	Meta Meta

	// Props exposes the path parameters to the view as named props.
	Props bool

	// Redirect sends navigations matching this Route to another path.
	Redirect string
}

func (r Route) isCatchAll() bool { return r.Path == CatchAllPath }

func (r Route) isLiteral() bool { return !strings.Contains(r.Path, "/:") }

// A Match is the result of resolving a path against a [Table].
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
	Query  url.Values

	// RedirectedFrom is the path originally requested when Route was reached by following redirects.
	RedirectedFrom string
}

// IsRedirect asserts whether the matched Route redirects elsewhere.
func (m Match) IsRedirect() bool { return m.Route.Redirect != "" }

// Props returns the path parameters as the view's props,
// or nil if the matched Route does not pass them on.
func (m Match) Props() map[string]string {
	if !m.Route.Props || len(m.Params) == 0 {
		return nil
	}

	props := make(map[string]string, len(m.Params))
	for k, v := range m.Params {
		props[k] = v
	}

	return props
}

// A Table is an ordered, immutable set of Routes.
// A Table is safe for concurrent use.
type Table struct {
	routes   []Route
	byName   map[string]int
	catchAll int
	m        *mux.Router
}

// NewTable constructs a *Table from routes, in order.
//
// NewTable returns an error wrapping [cryptodash.ErrNotValid] when:
//   - two routes share a path or a name
//   - a route has both or neither of a Loader and Redirect
//   - a path is not absolute or declares a malformed parameter
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes:   make([]Route, len(routes)),
		byName:   make(map[string]int),
		catchAll: -1,
		m:        mux.NewRouter().UseEncodedPath(),
	}
	copy(t.routes, routes)

	paths := make(map[string]bool)
	for i, r := range t.routes {
		if err := validate(r); err != nil {
			return nil, err
		}

		if paths[r.Path] {
			return nil, fmt.Errorf("%w: duplicate path %q", cryptodash.ErrNotValid, r.Path)
		}
		paths[r.Path] = true

		if r.Name != "" {
			if _, ok := t.byName[r.Name]; ok {
				return nil, fmt.Errorf("%w: duplicate name %q", cryptodash.ErrNotValid, r.Name)
			}
			t.byName[r.Name] = i
		}

		if r.isCatchAll() {
			t.catchAll = i
		}
	}

	// NOTE: mux tries routes in the order registered,
	// so literal paths go in before parameterized ones.
	for i, r := range t.routes {
		if !r.isCatchAll() && r.isLiteral() {
			t.m.Path(r.Path).Name(strconv.Itoa(i))
		}
	}

	for i, r := range t.routes {
		if !r.isCatchAll() && !r.isLiteral() {
			t.m.Path(muxTemplate(r.Path)).Name(strconv.Itoa(i))
		}
	}

	return t, nil
}

// DefaultTable constructs the dashboard's route table from its views.
func DefaultTable(views view.Set) (*Table, error) {
	return NewTable(
		Route{
			Path:   "/",
			Name:   CoinsListRoute,
			Loader: views.CoinsList,
			Meta:   Meta{"title": "Список монет"},
		},
		Route{
			Path:   "/coin/:id",
			Name:   CoinDetailRoute,
			Loader: views.CoinDetail,
			Meta:   Meta{"title": "Детали монеты"},
			Props:  true,
		},
		Route{
			Path:   "/admin",
			Name:   AdminPanelRoute,
			Loader: views.AdminPanel,
			Meta:   Meta{"title": "Админ-панель"},
		},
		Route{
			Path:     CatchAllPath,
			Redirect: "/",
		},
	)
}

// Resolve matches target against the Table.
//
// Literal paths match first, then parameterized paths, each in the order declared.
// If neither do, the catch-all route matches.
// If the Table has no catch-all route, an unmatched target resolves to a redirect to "/".
//
// A query string or fragment in target is ignored for matching; the query is kept in [Match.Query].
// A trailing slash is ignored.
// Segments match in their escaped form, so "%2F" stays inside the parameter it appears in.
// [Match.Path] stays escaped; [Match.Params] are unescaped.
func (t *Table) Resolve(target string) Match {
	raw, query := splitTarget(target)
	p, err := url.PathUnescape(raw)
	if err != nil {
		p = raw
	}
	m := Match{Path: raw, Query: query}

	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: p, RawPath: raw}}
	var rm mux.RouteMatch
	if t.m.Match(req, &rm) && rm.Route != nil {
		if i, err := strconv.Atoi(rm.Route.GetName()); err == nil {
			m.Route = t.routes[i]
			if len(rm.Vars) > 0 {
				m.Params = make(map[string]string, len(rm.Vars))
				for k, v := range rm.Vars {
					if u, err := url.PathUnescape(v); err == nil {
						v = u
					}
					m.Params[k] = v
				}
			}

			return m
		}
	}

	if t.catchAll >= 0 {
		m.Route = t.routes[t.catchAll]
	} else {
		m.Route = Route{Path: CatchAllPath, Redirect: "/"}
	}

	return m
}

// Load calls the Loader of the matched Route.
// Load errors are returned to the caller.
func (t *Table) Load(ctx context.Context, m Match) (view.View, error) {
	if m.Route.Loader == nil {
		return view.View{}, fmt.Errorf("%w: %s", ErrNoView, m.Route.Path)
	}

	v, err := m.Route.Loader(ctx)
	if err != nil {
		return view.View{}, fmt.Errorf("route %s: %w", m.Route.label(), err)
	}

	return v, nil
}

// Lookup returns the Route named name.
func (t *Table) Lookup(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}

	return t.routes[i], true
}

// Routes returns a copy of the Routes in the order declared.
func (t *Table) Routes() []Route {
	routes := make([]Route, len(t.routes))
	copy(routes, t.routes)
	return routes
}

// label identifies the Route in error messages.
func (r Route) label() string {
	if r.Name != "" {
		return r.Name
	}

	return r.Path
}

func validate(r Route) error {
	if (r.Loader == nil) == (r.Redirect == "") {
		return fmt.Errorf("%w: route %q needs exactly one of a loader or a redirect", cryptodash.ErrNotValid, r.Path)
	}

	if r.isCatchAll() {
		return nil
	}

	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("%w: route path %q is not absolute", cryptodash.ErrNotValid, r.Path)
	}

	if strings.ContainsAny(r.Path, "{}") {
		return fmt.Errorf("%w: route path %q cannot contain braces", cryptodash.ErrNotValid, r.Path)
	}

	for _, seg := range strings.Split(r.Path, "/") {
		if strings.HasPrefix(seg, ":") && !paramName.MatchString(seg[1:]) {
			return fmt.Errorf("%w: route path %q has malformed parameter %q", cryptodash.ErrNotValid, r.Path, seg)
		}
	}

	return nil
}

// muxTemplate rewrites ":name" segments into mux "{name}" variables.
func muxTemplate(p string) string {
	segs := strings.Split(p, "/")
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") {
			segs[i] = "{" + seg[1:] + "}"
		}
	}

	return strings.Join(segs, "/")
}

// splitTarget separates the cleaned, still escaped path from the query of target.
func splitTarget(target string) (string, url.Values) {
	p := target
	var query url.Values
	if u, err := url.Parse(target); err == nil {
		p = u.EscapedPath()
		query = u.Query()
	} else if i := strings.IndexAny(target, "?#"); i >= 0 {
		p = target[:i]
	}

	if p == "" {
		return "/", query
	}

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return path.Clean(p), query
}
