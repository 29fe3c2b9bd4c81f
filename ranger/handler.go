package ranger

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/apiclient"
	"github.com/xy-planning-network/cryptodash/http/req"
	"github.com/xy-planning-network/cryptodash/http/resp"
	"github.com/xy-planning-network/cryptodash/http/session"
	"github.com/xy-planning-network/cryptodash/http/template"
	"github.com/xy-planning-network/cryptodash/logger"
	"github.com/xy-planning-network/cryptodash/navigation"
)

// pageHandler navigates to the requested path and renders the dashboard shell for the view it lands on.
//
// The navigation comes from the path the session last landed on.
// A path the route table redirects answers with a redirect before any hook runs,
// unless the request does not accept HTML, in which case it is not found.
// A hook redirecting the navigation is answered the same way.
func (rng *Ranger) pageHandler(w http.ResponseWriter, r *http.Request) {
	sess, hasSession := r.Context().Value(cryptodash.SessionKey).(session.Session)

	loc, err := rng.nav.Resolve(r.URL.RequestURI())
	if err != nil {
		rng.Err(w, r, err)
		return
	}

	if loc.RedirectedFrom != "" {
		rng.obs.Redirected()
		rng.redirectPage(w, r, loc.Path)
		return
	}

	doc := new(navigation.Page)
	res, err := rng.nav.Navigate(r.Context(), doc, sess.LastPath(), r.URL.RequestURI())
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return
	case errors.Is(err, navigation.ErrCancelled):
		rng.Err(w, r, err, resp.Code(http.StatusForbidden))
		return
	case err != nil:
		rng.Err(w, r, err)
		return
	}

	if res.Match.RedirectedFrom != "" {
		res.Pending.Cancel()
		rng.redirectPage(w, r, res.Match.Path)
		return
	}

	v, err := res.Pending.Wait(r.Context())
	if err != nil {
		rng.Err(w, r, err)
		return
	}

	if hasSession {
		if err := sess.SetLastPath(w, r, res.Match.Path); err != nil {
			rng.l.Warn("unable to remember last path: "+err.Error(), &logger.LogContext{Request: r, Error: err})
		}
	}

	data := map[string]any{
		"view": v,
		"props": map[string]any{
			"route":   res.Event.To,
			"params":  res.Match.Params,
			"apiBase": apiclient.BasePath,
			"view":    v,
		},
	}

	if err := rng.Html(w, r, resp.Title(doc.Title()), resp.Data(data), resp.Vue(clientEntry)); err != nil {
		rng.l.Error(err.Error(), &logger.LogContext{Request: r, Error: err})
	}
}

func (rng *Ranger) redirectPage(w http.ResponseWriter, r *http.Request, to string) {
	if !acceptsHTML(r) {
		http.NotFound(w, r)
		return
	}

	rng.Redirect(w, r, resp.Url(to))
}

type resolveQuery struct {
	Path string `schema:"path" validate:"required,abspath"`
}

// resolveHandler reports where navigating to the "path" query param would land.
func (rng *Ranger) resolveHandler(w http.ResponseWriter, r *http.Request) {
	var q resolveQuery
	if err := rng.req.ParseQueryParams(r.URL.Query(), &q); err != nil {
		var verrs req.ValidationErrors
		if errors.As(err, &verrs) {
			rng.Json(w, r, resp.Code(http.StatusBadRequest), resp.Data(verrs))
			return
		}

		rng.Err(w, r, err)
		return
	}

	loc, err := rng.nav.Resolve(q.Path)
	if err != nil {
		rng.Err(w, r, err, resp.Code(http.StatusUnprocessableEntity))
		return
	}

	rng.Json(w, r, resp.Data(loc))
}

// MaintModeHandler answers every request with 503 Service Unavailable,
// rendering the maintenance template for requests accepting HTML.
func MaintModeHandler(p template.Parser, l logger.Logger, contact string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "600")
		if !acceptsHTML(r) {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		tmpl, err := p.Parse(template.MaintenanceTmpl)
		if err != nil {
			l.Error(err.Error(), &logger.LogContext{Request: r, Error: err})
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		b := new(bytes.Buffer)
		err = tmpl.ExecuteTemplate(b, path.Base(template.MaintenanceTmpl), map[string]any{"Contact": contact})
		if err != nil {
			l.Error(err.Error(), &logger.LogContext{Request: r, Error: err})
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		b.WriteTo(w)
	}
}

func acceptsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}
