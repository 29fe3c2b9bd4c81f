package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"runtime"

	"github.com/fatih/color"
)

const knownFrames = 2

var projectPathRegex = regexp.MustCompile("cryptodash.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

func NewLogLevel(val string) LogLevel {
	switch val {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelDebug:
		return "[DEBUG]"
	case LogLevelInfo:
		return "[INFO]"
	case LogLevelWarn:
		return "[WARN]"
	case LogLevelError:
		return "[ERROR]"
	case LogLevelFatal:
		return "[FATAL]"
	default:
		return "[UNK]"
	}
}

// ColorLogger implements Logger using log,
// colorizing each message according to its LogLevel.
type ColorLogger struct {
	skip int
	env  string
	kind string
	l    *log.Logger
	ll   LogLevel
}

// New constructs a *ColorLogger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The default environment is DEVELOPMENT.
// The default log level is INFO.
func New(opts ...LoggerOptFn) *ColorLogger {
	l := &ColorLogger{
		env: "DEVELOPMENT",
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// NewWriter constructs a *ColorLogger printing to w.
func NewWriter(w io.Writer, opts ...LoggerOptFn) *ColorLogger {
	return New(append([]LoggerOptFn{WithLogger(log.New(w, "", log.LstdFlags))}, opts...)...)
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *ColorLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *ColorLogger) Debug(msg string, ctx *LogContext) {
	if l.ll > LogLevelDebug {
		return
	}

	l.log(color.WhiteString, LogLevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *ColorLogger) Error(msg string, ctx *LogContext) {
	if l.ll > LogLevelError {
		return
	}

	l.log(color.RedString, LogLevelError, msg, ctx)
}

// Fatal writes a fatal log.
func (l *ColorLogger) Fatal(msg string, ctx *LogContext) {
	if l.ll > LogLevelFatal {
		return
	}

	l.log(color.MagentaString, LogLevelFatal, msg, ctx)
}

// Info writes an info log.
func (l *ColorLogger) Info(msg string, ctx *LogContext) {
	if l.ll > LogLevelInfo {
		return
	}

	l.log(color.BlueString, LogLevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *ColorLogger) Warn(msg string, ctx *LogContext) {
	if l.ll > LogLevelWarn {
		return
	}

	l.log(color.YellowString, LogLevelWarn, msg, ctx)
}

// LogLevel returns the LogLevel set for the ColorLogger.
func (l *ColorLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *ColorLogger) Skip() int { return l.skip }

// log executes printing the log message,
// including any context if available.
func (l *ColorLogger) log(colorizer func(string, ...any) string, level LogLevel, msg string, ctx *LogContext) {
	var caller string
	if ctx != nil && ctx.Caller != "" {
		caller = ctx.Caller
	} else {
		// NOTE: skip the frames the ColorLogger has
		// and however many the ColorLogger is configured with
		_, file, line, _ := runtime.Caller(knownFrames + l.skip)
		if match := projectPathRegex.FindString(file); match != "" {
			caller = fmt.Sprintf(callerTmpl, match, line)
		} else {
			caller = fmt.Sprintf(callerTmpl, immediateFilepath(file), line)
		}
	}

	prefix := level.String()
	if l.kind != "" {
		prefix += " " + l.kind
	}

	out := colorizer("%s %s '%s'", prefix, caller, msg)
	if ctx == nil {
		l.l.Println(out)
		return
	}

	l.l.Println(out, "log_context:", ctx)
}
