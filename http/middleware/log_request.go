package middleware

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/logger"
)

// A LogRequestRecord is the set of fields LogRequest reports for every request.
type LogRequestRecord struct {
	BodySize       int    `json:"bodySize"`
	Host           string `json:"host"`
	ID             string `json:"id,omitempty"`
	IPAddr         string `json:"ipAddr,omitempty"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Protocol       string `json:"protocol"`
	Referrer       string `json:"referrer,omitempty"`
	ReqContentType string `json:"reqContentType,omitempty"`
	Scheme         string `json:"scheme,omitempty"`
	Status         int    `json:"status"`
	URI            string `json:"uri"`
	UserAgent      string `json:"userAgent,omitempty"`
}

// LogRequest logs the request's method, requested URL, originating IP address, and response status
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values of [cryptodash.SensitiveParams] from the logged URI.
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(io.Discard, h, func(_ io.Writer, p handlers.LogFormatterParams) {
			rec := NewLogRequestRecord(p)
			ls.Info(fmt.Sprintf("%s %s %d", rec.Method, rec.URI, rec.Status), &logger.LogContext{
				Data: map[string]any{cryptodash.LogKindKey: cryptodash.HTTPLogKind, "request": rec},
			})
		})
	}
}

// NewLogRequestRecord collects a LogRequestRecord from the parameters gorilla/handlers
// reports once a response has been written.
func NewLogRequestRecord(p handlers.LogFormatterParams) LogRequestRecord {
	r := p.Request
	q := p.URL.Query()
	cryptodash.Mask(q, cryptodash.SensitiveParams...)

	uri := p.URL.Path
	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	rec := LogRequestRecord{
		BodySize:       p.Size,
		Host:           r.Host,
		Method:         r.Method,
		Path:           p.URL.Path,
		Protocol:       r.Proto,
		Referrer:       r.Referer(),
		ReqContentType: r.Header.Get("Content-Type"),
		Scheme:         p.URL.Scheme,
		Status:         p.StatusCode,
		URI:            uri,
		UserAgent:      r.UserAgent(),
	}

	if id, ok := r.Context().Value(cryptodash.RequestIDKey).(string); ok {
		rec.ID = id
	}

	if ip, ok := cryptodash.IPAddressFromContext(r.Context()); ok {
		rec.IPAddr = ip
	}

	return rec
}
