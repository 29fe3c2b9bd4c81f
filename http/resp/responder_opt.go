package resp

import (
	"net/url"

	"github.com/xy-planning-network/cryptodash/http/template"
	"github.com/xy-planning-network/cryptodash/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithContactErrMsg sets the message rendered by the error template.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithErrTemplate sets the template identified by the filepath to use for rendering
// when an unexpected, unhandled error occurs while rendering HTML.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.err = fp
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, a default logger.ColorLogger will be configured.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithParser sets the provided implementation of template.Parser to use for parsing HTML templates.
func WithParser(p template.Parser) ResponderOptFn {
	return func(d *Responder) {
		d.parser = p
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for rendering and redirecting
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes "/".
func WithRootUrl(u string) ResponderOptFn {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good = &url.URL{Path: "/"}
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}

// WithVueTemplate sets the template identified by the filepath to use for rendering
// a Vue client application.
//
// Vue requires this option.
func WithVueTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.vue = fp
	}
}
