package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/directory-admin/internal/config"
	"github.com/spec-kit/directory-admin/internal/events"
)

// StreamAppender appends entries to a capped stream.
type StreamAppender interface {
	AppendStream(ctx context.Context, stream string, maxLen int64, values map[string]any) (string, error)
}

// AuditService records moderation events in a stream for later review.
type AuditService struct {
	dispatcher events.Dispatcher
	sink       StreamAppender
	logger     *zap.Logger
	cfg        config.AuditConfig
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, sink StreamAppender, logger *zap.Logger, cfg config.AuditConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		sink:       sink,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to every moderation event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil || !a.cfg.Enabled {
		return
	}
	for _, eventType := range events.AllEventTypes {
		a.dispatcher.Subscribe(eventType, a.handleEvent)
	}
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	a.logger.Debug("audit event",
		zap.String("event_type", string(event.Type)),
		zap.String("user_id", event.UserID))

	if a.sink == nil || strings.TrimSpace(a.cfg.Stream) == "" {
		return nil
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	id, err := a.sink.AppendStream(ctx, a.cfg.Stream, a.cfg.MaxLen, map[string]any{
		"event_id":  event.ID,
		"type":      string(event.Type),
		"user_id":   event.UserID,
		"role":      string(event.Role),
		"admin_id":  event.Actor.AdminID,
		"timestamp": event.Timestamp.Format(time.RFC3339Nano),
		"payload":   string(payload),
	})
	if err != nil {
		a.logger.Warn("append audit entry", zap.String("stream", a.cfg.Stream), zap.Error(err))
		return err
	}
	a.logger.Debug("audit entry appended", zap.String("stream", a.cfg.Stream), zap.String("entry_id", id))
	return nil
}
