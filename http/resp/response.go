package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/cryptodash"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w     http.ResponseWriter
	r     *http.Request
	code  int
	data  any
	title string
	tmpls []string
	url   *url.URL
	vue   string
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Html and Responder.Json.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), newLogContext(r.r, e, r.data))
		}

		return Code(http.StatusInternalServerError)(d, r)
	}
}

// Param adds the query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// Title sets the document title rendered by the Vue template.
//
// Used with Responder.Html.
func Title(t string) Fn {
	return func(_ Responder, r *Response) error {
		r.title = t
		return nil
	}
}

// Tmpls appends to the templates to be rendered.
//
// Used with Responder.Html.
func Tmpls(fps ...string) Fn {
	return func(_ Responder, r *Response) error {
		r.tmpls = append(r.tmpls, fps...)
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		if d.rootUrl == nil {
			r.url = &url.URL{Path: "/"}
			return nil
		}

		u := *d.rootUrl
		r.url = &u
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		good, err := url.Parse(u)
		if err != nil {
			return fmt.Errorf("%w: invalid URL %q: %s", cryptodash.ErrNotValid, u, err)
		}

		r.url = good
		return nil
	}
}

// Vue sets a *Response up for rendering the Vue app built from the client entry.
// Vue appends the Vue template set by WithVueTemplate to existing tmpls.
//
// When rendering, the data set by Data is structured according to this schema:
//
//	{
//		"entry": entry,
//		"title": title set by Title,
//		"props": {
//			"initialProps": {
//				"baseURL": d.rootUrl,
//			},
//			...key-value pairs set by cryptodash.NewAppPropsContext
//			...key-value pairs set by Data
//		},
//	}
//
// If the map passed to Data has a "props" key holding a map[string]any,
// that map is merged into "props" and every other key is set alongside "entry".
// If the value passed to Data is not a map[string]any, it is placed under props["props"].
func Vue(entry string) Fn {
	return func(d Responder, r *Response) error {
		if d.templates.vue == "" {
			return fmt.Errorf("%w: no Vue template configured", ErrBadConfig)
		}

		if entry == "" {
			return fmt.Errorf("%w: no Vue entry", ErrMissingData)
		}

		r.vue = entry
		return Tmpls(d.templates.vue)(d, r)
	}
}

// vueData structures the data of r according to the schema described by Vue.
func (doer Responder) vueData(r *Response) map[string]any {
	data := map[string]any{"entry": r.vue, "title": r.title}
	init := map[string]any{}
	if doer.rootUrl != nil {
		init["baseURL"] = doer.rootUrl.String()
	}

	props := map[string]any{"initialProps": init}
	for k, v := range cryptodash.AppPropsFromContext(r.r.Context()) {
		props[k] = v
	}

	switch t := r.data.(type) {
	case nil:
	case map[string]any:
		nested, ok := t["props"].(map[string]any)
		if !ok {
			for k, v := range t {
				props[k] = v
			}
			break
		}

		for k, v := range nested {
			props[k] = v
		}

		for k, v := range t {
			if k != "props" {
				data[k] = v
			}
		}
	default:
		props["props"] = r.data
	}

	data["props"] = props
	return data
}
