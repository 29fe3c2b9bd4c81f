/*
Package logger provides logging functionality to a cryptodash app by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

# ColorLogger

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - kind, when configured with [WithKind]
  - call site
  - message
  - log context

Here's an example:

	2026/04/28 15:55:21 [INFO] navigation navigation/hook.go:43 'navigating / -> /coin/42' log_context: {"data":{"from":"/","to":"/coin/42"}}

The log context is a JSON-encoded [LogContext].
It allows for including additional data inessential to the message proper,
but provides a fuller picture of the application state at the time of logging.

# SentryLogger

When a Sentry DSN is available, [NewSentryLogger] wraps a [ColorLogger]
so that errors logged at WARN and above are also captured by Sentry.
*/
package logger
