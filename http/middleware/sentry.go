package middleware

import (
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/cryptodash"
)

// ReportPanic recovers and reports panics to Sentry,
// unless env is DEVELOPMENT, in which case NoopAdapter returns.
func ReportPanic(env cryptodash.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return sh.Handle
}
