package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics reports decode failures and timings to Sentry. It does
// nothing unless Init was given a DSN.
type SentryMetrics struct {
	enabled bool
}

func Init(dsn, environment string) (*SentryMetrics, error) {
	if dsn == "" {
		return &SentryMetrics{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing sentry: %w", err)
	}
	return &SentryMetrics{enabled: true}, nil
}

func (m *SentryMetrics) Enabled() bool {
	return m.enabled
}

// RecordDecode records one collection decode.
func (m *SentryMetrics) RecordDecode(ctx context.Context, duration time.Duration, songs, failures int) {
	if !m.enabled {
		return
	}
	span := sentry.StartSpan(ctx, "collection.decode")
	defer span.Finish()

	span.SetTag("has_failures", fmt.Sprintf("%t", failures > 0))
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("songs", songs)
	span.SetData("failures", failures)
	if failures > 0 {
		span.Status = sentry.SpanStatusInvalidArgument
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Description = fmt.Sprintf("Decode: %d songs, %d failures", songs, failures)
}

// RecordError sends err with the request path attached.
func (m *SentryMetrics) RecordError(err error, path string) {
	if !m.enabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("path", path)
		sentry.CaptureException(err)
	})
}

func (m *SentryMetrics) Flush() {
	if m.enabled {
		sentry.Flush(2 * time.Second)
	}
}
