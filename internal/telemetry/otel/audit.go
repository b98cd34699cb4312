package otel

import (
	"context"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"pirate-admin/backend/internal/audit/domain"
)

const auditScope = "pirate-admin.audit"

// RecordEmitter is the part of an OTel logger the audit producer uses.
type RecordEmitter interface {
	Emit(ctx context.Context, rec otellog.Record)
}

// AuditProducer publishes audit events as OTel log records. It satisfies audit.Producer.
type AuditProducer struct {
	logger RecordEmitter
}

// NewAuditProducer returns a producer emitting through provider. Returns nil when provider is nil.
func NewAuditProducer(provider *sdklog.LoggerProvider) *AuditProducer {
	if provider == nil {
		return nil
	}
	return &AuditProducer{logger: provider.Logger(auditScope)}
}

// NewAuditProducerWithLogger returns a producer emitting through logger.
func NewAuditProducerWithLogger(logger RecordEmitter) *AuditProducer {
	return &AuditProducer{logger: logger}
}

// Emit converts the event to a log record: metadata becomes the body, the rest attributes.
func (p *AuditProducer) Emit(ctx context.Context, event *domain.Event) error {
	if p == nil || p.logger == nil || event == nil {
		return nil
	}
	rec := otellog.Record{}
	rec.SetSeverity(otellog.SeverityInfo)
	rec.SetEventName("audit")
	ts := event.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	rec.SetTimestamp(ts)
	if event.Metadata != "" {
		rec.SetBody(otellog.StringValue(event.Metadata))
	}
	rec.AddAttributes(
		otellog.String("event_id", event.ID),
		otellog.String("user_id", event.UserID),
		otellog.String("action", event.Action),
		otellog.String("resource", event.Resource),
		otellog.String("ip", event.IP),
	)
	p.logger.Emit(ctx, rec)
	return nil
}

// Close is a no-op; the provider is shut down with the other providers.
func (p *AuditProducer) Close() error {
	return nil
}
