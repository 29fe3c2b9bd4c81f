package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sync"

	"github.com/xy-planning-network/cryptodash/http/template"
	"github.com/xy-planning-network/cryptodash/logger"
)

const responderFrames = 0

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes many common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Err
//	Html
//	Json
//	Redirect
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Initialized template parser
	parser template.Parser

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Message rendered by the error template
	contactErrMsg string

	// Root URL the responder is listening on, also used when in an error state
	rootUrl *url.URL

	templates struct {
		// Root template to render when an error occurs
		// and no other response can be formed
		err string

		// Vue template to render when rendering a Vue app
		vue string
	}
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	if d.parser != nil {
		d.parser.AddFn(template.FnNonce, template.Nonce)
		d.parser.AddFn(template.FnRootURL, template.RootURL(d.rootUrl))
	}

	return d
}

// Err wraps http.Error(), logging the error causing the failure state.
//
// Use in exceptional circumstances when no Redirect or Html can occur.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	var msg string
	if err != nil {
		msg = err.Error()
	}

	code := http.StatusInternalServerError
	if rr != nil && rr.code != 0 {
		code = rr.code
	}

	http.Error(w, msg, code)
}

// Html composes together HTML templates set in *Responder
// and configured by Tmpls, Vue and other such calls.
func (doer *Responder) Html(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return doer.handleHtmlError(w, r, err)
	}

	if doer.parser == nil {
		return doer.handleHtmlError(w, r, fmt.Errorf("%w: no parser configured", ErrBadConfig))
	}

	if len(rr.tmpls) == 0 {
		return doer.handleHtmlError(w, r, fmt.Errorf("%w: no templates to render", ErrMissingData))
	}

	if rr.vue != "" {
		rr.data = doer.vueData(rr)
	}

	tmpl, err := doer.parser.Parse(rr.tmpls...)
	if err != nil {
		return doer.handleHtmlError(w, r, fmt.Errorf("cannot parse: %w", err))
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	rd := struct{ Data any }{Data: rr.data}
	if err := tmpl.ExecuteTemplate(b, path.Base(rr.tmpls[0]), rd); err != nil {
		return doer.handleHtmlError(w, r, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if rr.code != 0 {
		w.WriteHeader(rr.code)
	}

	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

type jsonSchema struct {
	D any `json:"data,omitempty"`
}

// Json responds with data in JSON format, collating it from Data() and setting appropriate headers.
//
// The JSON schema will look like this:
//
//	{
//		"data": {}
//	}
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(jsonSchema{D: rr.data}); err != nil {
		doer.Err(w, r, err)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, append([]Fn{ToRoot()}, opts...)...)
	if err != nil {
		return err
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE: code is already a 3xx, so do nothing
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	http.Redirect(w, r, rr.url.String(), rr.code)
	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless attempts to retry calling functional options until all do not return errors or,
// a set of options unable to not return errors is reached.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		w:     w,
		r:     r,
		tmpls: make([]string, 0),
	}

	redos := make([]Fn, 0)
	for _, opt := range opts {
		if err := r.Context().Err(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDone, err)
		}

		if err := opt(*doer, resp); err != nil {
			redos = append(redos, opt)
		}
	}

	// NOTE: redo shrinks redos until every remaining option keeps failing.
	for i := -1; i != len(redos); {
		i = len(redos)
		redos = doer.redo(resp, redos...)
	}

	var err error
	for _, opt := range redos {
		nested := opt(*doer, resp)
		if err == nil {
			err = nested
			continue
		}
		err = fmt.Errorf("%w: %s", err, nested)
	}

	if err != nil {
		return resp, err
	}

	return resp, nil
}

// handleHtmlError specially renders the error template set on the Responder
// and reports errors.
func (doer *Responder) handleHtmlError(w http.ResponseWriter, r *http.Request, err error) error {
	doer.logger.Error(err.Error(), newLogContext(r, err, nil))

	if doer.templates.err == "" || doer.parser == nil {
		err = fmt.Errorf(
			"%w: no error template provided, encountered while handling: %s",
			ErrBadConfig,
			err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	tmpl, nested := doer.parser.Parse(doer.templates.err)
	if nested != nil {
		err = fmt.Errorf("%w: %s", nested, err)
		doer.logger.Error(err.Error(), nil)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	nested = tmpl.Execute(b, map[string]any{"Contact": doer.contactErrMsg, "Error": err})
	if nested != nil {
		err = fmt.Errorf("%w: %s", nested, err)
		doer.logger.Error(err.Error(), nil)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	b.WriteTo(w)
	return nil
}

// redo applies as many Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}
