package log

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	Level  = zapcore.Level
	Field  = zap.Field
	Option = zap.Option
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

// field constructors, re-exported so callers don't need to import zap
var (
	Any        = zap.Any
	Bool       = zap.Bool
	Duration   = zap.Duration
	Float64    = zap.Float64
	Int        = zap.Int
	Int64      = zap.Int64
	String     = zap.String
	Strings    = zap.Strings
	Time       = zap.Time
	ErrorField = zap.Error
)

var (
	WithCaller    = zap.WithCaller
	AddCallerSkip = zap.AddCallerSkip
)

type Logger struct {
	l     *zap.Logger
	level zap.AtomicLevel
}

// New creates a logger with json output
func New(writer io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	return newLogger(zapcore.NewJSONEncoder(cfg), writer, level, opts...)
}

// DevLogger creates a logger with human readable console output
func DevLogger(writer io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	return newLogger(zapcore.NewConsoleEncoder(cfg), writer, level, opts...)
}

func newLogger(enc zapcore.Encoder, writer io.Writer, level Level, opts ...Option) *Logger {
	if writer == nil {
		writer = os.Stderr
	}
	atomicLevel := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(enc, zapcore.AddSync(writer), atomicLevel)
	return &Logger{l: zap.New(core, opts...), level: atomicLevel}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

// Log logs msg at the given level
func (l *Logger) Log(level Level, msg string, fields ...Field) { l.l.Log(level, msg, fields...) }

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{l: l.l.With(fields...), level: l.level}
}

func (l *Logger) Enabled(level Level) bool {
	return l.level.Enabled(level)
}

func (l *Logger) Level() Level {
	return l.level.Level()
}

func (l *Logger) Sync() error {
	return l.l.Sync()
}

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

var std = DevLogger(os.Stderr, InfoLevel)

func Default() *Logger {
	return std
}

// ResetDefault replaces the logger used by the package level functions.
// not thread safe, call it during startup only
func ResetDefault(l *Logger) {
	std = l
	Debug = std.Debug
	Info = std.Info
	Warn = std.Warn
	Error = std.Error
	Fatal = std.Fatal
}

var (
	Debug = std.Debug
	Info  = std.Info
	Warn  = std.Warn
	Error = std.Error
	Fatal = std.Fatal
)

func Sync() error {
	if std != nil {
		return std.Sync()
	}
	return nil
}

type ctxLoggerKey struct{}

func AddToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, l)
}

// GetFromContext returns the logger stored in ctx or the default logger
func GetFromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*Logger); ok {
		return l
	}
	return std
}
