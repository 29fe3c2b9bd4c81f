package resp

import (
	"errors"

	"github.com/xy-planning-network/cryptodash"
)

var (
	// ErrBadConfig and ErrMissingData are the dashboard-wide errors,
	// so callers can check responder failures the same way as any other.
	ErrBadConfig   = cryptodash.ErrBadConfig
	ErrMissingData = cryptodash.ErrMissingData

	// ErrDone reports the request's context ended before a response was written.
	ErrDone = errors.New("request context done")
)
