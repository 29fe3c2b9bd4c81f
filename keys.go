package cryptodash

import "context"

type Key string

const (
	// appPropsKey stashes additional props to be included in HTTP responses.
	appPropsKey Key = "AppPropsKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by cryptodash.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "cryptodash context key: " + string(k)
}

// IPAddressFromContext retrieves the client address stored under [IpAddrKey].
func IPAddressFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(IpAddrKey).(string)
	return ip, ok && ip != ""
}

// An AppProps passes data from the server to the client as a set of props needed for general application state.
// The data is passed around in a context.Context and rendered as JSON.
// The data is expected to be marshaled into Vue/JS props.
//
// NB: Data not representable by JSON will create errors; review [encoding/json.Marshaler].
type AppProps map[string]any

// NewAppPropsContext adds props to ctx, returning the resulting context.
// If props have already been added to ctx, its key-value pairs are merged into a copy of the existing ones.
// If any keys collide, those in props overwrite previous values.
func NewAppPropsContext(ctx context.Context, props AppProps) context.Context {
	merged := make(AppProps)
	for k, v := range AppPropsFromContext(ctx) {
		merged[k] = v
	}

	for k, v := range props {
		merged[k] = v
	}

	return context.WithValue(ctx, appPropsKey, merged)
}

// AppPropsFromContext retrieves an AppProps in ctx.
// If not already set, it initializes a new AppProps.
func AppPropsFromContext(ctx context.Context) AppProps {
	props, ok := ctx.Value(appPropsKey).(AppProps)
	if !ok {
		props = make(AppProps)
	}

	return props
}
