// Package logger provides the structured, levelled logger for Atelier,
// built on log/slog.
//
// Every HTTP handler logs through a per-request logger carrying the
// request_id, injected by the Logger middleware:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", order.ID, "total", order.TotalAmount)
//	// → time=... level=INFO msg="order placed" request_id=a1b2c3d4 order_id=42 total=40
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/skbags/atelier/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		opts := &slog.HandlerOptions{Level: slog.LevelInfo}
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for aggregators
	default:
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	// Mirror everything into MongoDB when a sink is configured.
	if uri := config.Get("LOG_MONGO_URI", ""); uri != "" {
		db := config.Get("LOG_MONGO_DB", "atelier")
		col := config.Get("LOG_MONGO_COLLECTION", "logs")
		if mh, err := NewMongoHandler(uri, db, col); err == nil {
			handler = NewMultiHandler(handler, mh)
		}
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the *slog.Logger stored in ctx by the Logger middleware,
// already tagged with the request_id. Falls back to the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware; not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
