package cryptodash

import (
	"net/url"
	"strings"
)

const (
	LogKindKey = "kind"
	LogMaskVal = "xxxxxx"
)

const (
	AppLogKind        = "app"
	HTTPLogKind       = "http"
	NavigationLogKind = "navigation"
)

// SensitiveParams are query parameters whose values never reach a log.
var SensitiveParams = []string{"api_key", "password", "secret", "token"}

// Mask replaces every value under each of keys in vals with a single [LogMaskVal].
// Keys match regardless of case; vals without them are left untouched.
func Mask(vals url.Values, keys ...string) {
	for k := range vals {
		for _, key := range keys {
			if strings.EqualFold(k, key) {
				vals[k] = []string{LogMaskVal}
				break
			}
		}
	}
}
