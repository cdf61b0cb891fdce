package http

import (
	"context"
	"log/slog"

	"github.com/example/staffing-reports/internal/logging"
)

type contextKey string

const (
	scheduleIDContextKey contextKey = "schedule_id"
	reportIDContextKey   contextKey = "report_id"
)

// ContextWithLogger attaches the request logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext returns the request logger, if RequestLogger attached one.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

// ContextWithScheduleID injects the schedule identifier resolved from the request path.
func ContextWithScheduleID(ctx context.Context, scheduleID string) context.Context {
	return context.WithValue(ctx, scheduleIDContextKey, scheduleID)
}

// ScheduleIDFromContext extracts a schedule identifier previously associated with the context.
func ScheduleIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(scheduleIDContextKey).(string)
	return id, ok
}

// ContextWithReportID injects the published report identifier resolved from the request path.
func ContextWithReportID(ctx context.Context, reportID string) context.Context {
	return context.WithValue(ctx, reportIDContextKey, reportID)
}

// ReportIDFromContext extracts a published report identifier from the context.
func ReportIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(reportIDContextKey).(string)
	return id, ok
}
