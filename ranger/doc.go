/*
Package ranger initializes and manages the Crypto Dashboard web server with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on [DefaultHost]:[DefaultPort] (localhost:3000).
Stop that web server with [*Ranger.Shutdown],
call [*Ranger.Cancel],
or send a signal [*Ranger.Guide] listens for.

Every request for a page is a navigation.
The route table resolves the requested path,
the navigation hooks set the document title and log where the client came from and went to,
and the view the path lands on renders inside the dashboard shell.
Paths the route table does not know redirect to "/".

Besides pages, a [Ranger] serves:
  - [MetricsPath]: Prometheus metrics about navigations and view loads
  - [ResolvePath]: where navigating to the "path" query param would land, as JSON
  - /client/dist/ and /assets/: the client's build output and public files

# Configuration

A developer configures the dashboard through environment variables and [RangerOption].
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - API_ORIGIN: the origin of the backend API; default: BASE_URL
  - APP_TITLE: the application name in document titles; default: Crypto Dashboard
  - BASE_URL: the base URL the application runs on; replaces HOST & PORT
  - CORS_ORIGIN: comma-separated origins allowed to call /routes/resolve; default in development: http://localhost:8080
  - CONTACT_US_EMAIL: the email address shown on error pages
  - ENVIRONMENT: the environment the application is running in; cf. [cryptodash.Environment]
  - HOST: the host the application is running on; default: localhost
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAINTENANCE_MODE: answer every page request with 503 Service Unavailable
  - PORT: the port the application should listen on; default: :3000
  - REDIS_URL: store sessions in the Redis server at this address instead of cookies
  - REDIS_PASSWORD: the password for authenticating to REDIS_URL
  - SENTRY_DSN: report errors to Sentry
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
*/
package ranger
