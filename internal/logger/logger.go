// Package logger provides structured logging for gocycle using zap.
package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dbsmedya/gocycle/internal/config"
)

// Logger wraps zap.SugaredLogger with context methods.
type Logger struct {
	*zap.SugaredLogger
	base *zap.Logger
}

// New creates a new Logger from configuration.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	level := parseLevel(cfg.Level)
	encoder := buildEncoder(cfg.Format)
	writers := buildWriters(cfg.Output)

	core := zapcore.NewCore(encoder, writers, level)
	baseLogger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{
		SugaredLogger: baseLogger.Sugar(),
		base:          baseLogger,
	}, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	base := zap.NewNop()
	return &Logger{
		SugaredLogger: base.Sugar(),
		base:          base,
	}
}

// parseLevel converts string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// buildEncoder creates the appropriate encoder based on format.
func buildEncoder(format string) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// buildWriters creates the output writers based on configuration.
func buildWriters(output string) zapcore.WriteSyncer {
	switch output {
	case "stderr", "":
		return zapcore.AddSync(os.Stderr)
	case "stdout":
		return zapcore.AddSync(os.Stdout)
	default:
		file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			// Fall back to stderr
			return zapcore.AddSync(os.Stderr)
		}
		return zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(file),
			zapcore.AddSync(os.Stderr),
		)
	}
}

// WithInput returns a Logger with input source context (file path or table).
func (l *Logger) WithInput(input string) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With("input", input),
		base:          l.base,
	}
}

// WithRun returns a Logger tagged with a run identifier.
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With("run", runID),
		base:          l.base,
	}
}

// WithSearch returns a Logger tagged with the size of the graph being
// searched and the number of probe workers.
func (l *Logger) WithSearch(vertices, edges, workers int) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With("vertices", vertices, "edges", edges, "workers", workers),
		base:          l.base,
	}
}

// WithEdge returns a Logger tagged with a single edge.
func (l *Logger) WithEdge(from, to int, weight int64) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With("edge", fmt.Sprintf("%d->%d", from, to), "weight", weight),
		base:          l.base,
	}
}

// SearchProgress logs how many of total edge probes have finished.
func (l *Logger) SearchProgress(done, total int, elapsed time.Duration) {
	percent := 100.0
	if total > 0 {
		percent = float64(done) * 100 / float64(total)
	}
	l.Debugw("Edge probes",
		"done", done,
		"total", total,
		"percent", fmt.Sprintf("%.1f", percent),
		"elapsed", elapsed,
	)
}

// SearchComplete logs the outcome of a shortest-cycle search.
// A search with no cycle logs length 0.
func (l *Logger) SearchComplete(found bool, length int64, probes int, elapsed time.Duration) {
	if !found {
		length = 0
	}
	l.Infow("Search complete",
		"found", found,
		"length", length,
		"probes", probes,
		"duration", elapsed,
	)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}
