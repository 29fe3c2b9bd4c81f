/*
Package middleware defines what a middleware is for the dashboard's HTTP server and a set of basic middlewares.

The available middlewares are:
  - CORS: lets listed origins call GET endpoints like /routes/resolve
  - ForceHTTPS
  - InjectIPAddress: stores [ClientIP] for navigation and request logs
  - InjectSession
  - LogRequest
  - RateLimit: throttles each [ClientIP]
  - ReportPanic
  - RequestID

Package ranger runs every request through them in this order:

	middleware.RateLimit(middleware.NewVisitors()),
	middleware.ForceHTTPS(env),
	middleware.RequestID(),
	middleware.InjectIPAddress(),
	middleware.LogRequest(httpLogger),

Page requests then pass through InjectSession and ReportPanic,
and /routes/resolve through CORS.
*/
package middleware
