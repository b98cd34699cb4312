package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/audit/domain"
	"pirate-admin/backend/internal/logging"
)

// IPExtractor returns the client IP from the request context.
type IPExtractor func(context.Context) string

// AuditLogger writes a single audit event with explicit action/resource.
// LogEvent is best-effort: failures are logged and do not affect the caller.
type AuditLogger interface {
	LogEvent(ctx context.Context, userID, action, resource, metadata string)
}

// Logger implements AuditLogger. Every event is written to the log; when a producer is set it is
// also published asynchronously.
type Logger struct {
	producer    Producer
	ipExtractor IPExtractor
	logger      *zap.Logger
	wg          sync.WaitGroup
}

// NewLogger returns a Logger. producer may be nil to only log. ipExtractor may be nil; then IP is
// recorded as "unknown". logger may be nil.
func NewLogger(producer Producer, ipExtractor IPExtractor, logger *zap.Logger) *Logger {
	return &Logger{
		producer:    producer,
		ipExtractor: ipExtractor,
		logger:      logging.OrGlobal(logger).Named("audit"),
	}
}

// LogEvent records one audit event. Publishing runs in the background, detached from ctx's
// cancellation.
func (l *Logger) LogEvent(ctx context.Context, userID, action, resource, metadata string) {
	ip := "unknown"
	if l.ipExtractor != nil {
		if v := l.ipExtractor(ctx); v != "" {
			ip = v
		}
	}
	event := &domain.Event{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	l.logger.Info("audit event",
		zap.String("event_id", event.ID),
		zap.String("user_id", userID),
		zap.String("action", action),
		zap.String("resource", resource),
		zap.String("ip", ip),
	)
	if l.producer == nil {
		return
	}

	emitCtx := context.WithoutCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.producer.Emit(emitCtx, event); err != nil {
			l.logger.Warn("failed to publish audit event", zap.String("action", action), zap.String("resource", resource), zap.Error(err))
		}
	}()
}

// Close waits for in-flight publishes and closes the producer.
func (l *Logger) Close() error {
	l.wg.Wait()
	if l.producer == nil {
		return nil
	}
	return l.producer.Close()
}

type clientIPKey struct{}

// WithClientIP returns ctx carrying the request's client IP for ClientIPFromContext.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIPFromContext is the IPExtractor for contexts prepared with WithClientIP.
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
