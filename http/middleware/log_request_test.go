package middleware_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/handlers"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/http/middleware"
	"github.com/xy-planning-network/cryptodash/logger"
)

func TestLogRequestNil(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))
}

func TestLogRequest(t *testing.T) {
	// Arrange
	color.NoColor = true
	b := new(bytes.Buffer)
	l := logger.NewWriter(b, logger.WithKind(cryptodash.HTTPLogKind))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/coin/42?password=hunter2", nil)

	// Act
	middleware.LogRequest(l)(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		wx.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(w, r)

	// Assert
	out := b.String()
	require.Contains(t, out, "[INFO]")
	require.Contains(t, out, "GET /coin/42?password="+cryptodash.LogMaskVal+" 418")
	require.NotContains(t, out, "hunter2")
}

func TestNewLogRequestRecord(t *testing.T) {
	// Arrange
	ip := "192.168.0.0"
	testID := "test-id"
	useragent := "cryptodash/test"
	content := "very-secret/encoding; shhh"
	referrer := "example.com/referrer"
	newExpected := func(expected middleware.LogRequestRecord) middleware.LogRequestRecord {
		expected.BodySize = 4
		expected.Host = "example.com"
		expected.ID = testID
		expected.Protocol = "HTTP/1.1"
		expected.Referrer = referrer
		expected.ReqContentType = content
		expected.Status = 200
		expected.UserAgent = useragent

		return expected
	}

	tcs := []struct {
		name     string
		method   string
		ip       string
		url      *url.URL
		expected middleware.LogRequestRecord
	}{
		{
			"Zero-Value",
			http.MethodGet,
			"",
			&url.URL{Path: "/"},
			newExpected(middleware.LogRequestRecord{
				Method: http.MethodGet,
				Path:   "/",
				URI:    "/",
			}),
		},
		{
			"With-IP",
			http.MethodPost,
			ip,
			&url.URL{Path: "/"},
			newExpected(middleware.LogRequestRecord{
				IPAddr: ip,
				Method: http.MethodPost,
				Path:   "/",
				URI:    "/",
			}),
		},
		{
			"With-Query-Params",
			http.MethodGet,
			ip,
			&url.URL{Path: "/coin/bitcoin", RawQuery: "param=true"},
			newExpected(middleware.LogRequestRecord{
				IPAddr: ip,
				Method: http.MethodGet,
				Path:   "/coin/bitcoin",
				URI:    "/coin/bitcoin?param=true",
			}),
		},
		{
			"With-Query-Params-Hid",
			http.MethodGet,
			ip,
			&url.URL{Scheme: "http", Path: "/", RawQuery: "param=true&password=hunter2"},
			newExpected(middleware.LogRequestRecord{
				IPAddr: ip,
				Method: http.MethodGet,
				Path:   "/",
				URI:    "/?param=true&password=" + cryptodash.LogMaskVal,
				Scheme: "http",
			}),
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(tc.method, "http://example.com"+tc.url.RequestURI(), nil)
			r.Proto = "HTTP/1.1"
			r = r.Clone(context.WithValue(r.Context(), cryptodash.RequestIDKey, testID))
			r.Header.Set("User-Agent", useragent)
			r.Header.Set("Content-Type", content)
			r.Header.Set("Referer", referrer)

			if tc.ip != "" {
				r = r.Clone(context.WithValue(r.Context(), cryptodash.IpAddrKey, tc.ip))
			}

			p := handlers.LogFormatterParams{
				Request:    r,
				URL:        *tc.url,
				TimeStamp:  time.Now(),
				StatusCode: http.StatusOK,
				Size:       4,
			}

			// Act
			actual := middleware.NewLogRequestRecord(p)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}
