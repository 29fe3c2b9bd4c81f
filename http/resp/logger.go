package resp

import (
	"net/http"

	"github.com/xy-planning-network/cryptodash/logger"
)

// newLogContext helps structure a logger.LogContext from the provided parts.
func newLogContext(r *http.Request, err error, data any) *logger.LogContext {
	if r == nil && err == nil && data == nil {
		return nil
	}

	ctx := new(logger.LogContext)
	if r != nil {
		ctx.Request = r
	}

	if err != nil {
		ctx.Error = err
	}

	if mapped, ok := data.(map[string]any); ok {
		ctx.Data = mapped
	}

	return ctx
}
