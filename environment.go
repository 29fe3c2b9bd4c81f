package cryptodash

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/cryptodash/logger"
)

// An Environment is a different context in which a cryptodash app operates.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Review      Environment = "REVIEW"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Development, Production, Review, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsProduction() bool  { return e == Production }
func (e Environment) IsReview() bool      { return e == Review }
func (e Environment) IsStaging() bool     { return e == Staging }
func (e Environment) IsTesting() bool     { return e == Testing }

// EnvVarOrBool gets the environment variable for the provided key and
// returns whether it matches "true" or "false" (after lower casing it)
// or the default value.
func EnvVarOrBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// EnvVarOrDuration gets the environment variable for the provided key,
// parses it into a [time.Duration], or, returns
// the default [time.Duration].
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}

	return d
}

// EnvVarOrEnv gets the environment variable for the provided key,
// casts it into an [Environment],
// or returns the provided default [Environment] if key is not a valid [Environment].
func EnvVarOrEnv(key string, def Environment) Environment {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	env := Environment(strings.ToUpper(val))
	if err := env.Valid(); err != nil {
		return def
	}

	return env
}

// EnvVarOrInt gets the environment variable for the provided key,
// creates an int from the retrieved value,
// or returns the provided default
// if the value is not a valid int.
func EnvVarOrInt(key string, def int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}

	return val
}

// EnvVarOrLogLevel gets the environment variable for the provided key,
// creates a [logger.LogLevel] from the retrieved value,
// or returns the provided default
// if the value is an unknown [logger.LogLevel].
func EnvVarOrLogLevel(key string, def logger.LogLevel) logger.LogLevel {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	ll := logger.NewLogLevel(strings.ToUpper(val))
	if ll == logger.LogLevelUnk {
		return def
	}

	return ll
}

// EnvVarOrString gets the environment variable for the provided key or the provided default string.
func EnvVarOrString(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	return val
}

// EnvVarOrURL gets the environment variable for the provided key or the provided default *url.URL.
// If neither parse, EnvVarOrURL returns nil.
func EnvVarOrURL(key, def string) *url.URL {
	defURL, err := url.ParseRequestURI(def)
	if err != nil {
		return nil
	}

	if defURL.Path == "" {
		defURL.Path = "/"
	}

	val := os.Getenv(key)
	if val == "" {
		return defURL
	}

	u, err := url.ParseRequestURI(val)
	if err != nil {
		return defURL
	}

	return u
}
