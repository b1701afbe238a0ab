package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-analytics-be/internal/pkg/logger"
	"ai-analytics-be/pkg/events"
	pktNats "ai-analytics-be/pkg/nats"
)

// Pipeline activity event types.
const (
	EventDatasetUploaded = "DATASET_UPLOADED"
	EventCleaningApplied = "CLEANING_APPLIED"
	EventQueryExecuted   = "QUERY_EXECUTED"
	EventChartsGenerated = "CHARTS_GENERATED"
	EventReportGenerated = "REPORT_GENERATED"
	EventSessionReset    = "SESSION_RESET"
)

// ActivityEvent is the payload fanned out to websocket watchers and, when
// configured, mirrored onto NATS.
type ActivityEvent struct {
	SessionID string                 `json:"session_id"`
	Type      string                 `json:"type"`
	Detail    map[string]interface{} `json:"detail,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

type IActivityService interface {
	// Emit records pipeline activity. Delivery is best effort; a failed
	// publish never fails the operation that produced the event.
	Emit(ctx context.Context, sessionID, eventType string, detail map[string]interface{})
}

type activityService struct {
	publisher IPublisherService
	natsPub   *pktNats.Publisher
	logger    logger.ILogger
}

func NewActivityService(publisher IPublisherService, natsPub *pktNats.Publisher, log logger.ILogger) IActivityService {
	return &activityService{
		publisher: publisher,
		natsPub:   natsPub,
		logger:    log,
	}
}

func (c *activityService) Emit(ctx context.Context, sessionID, eventType string, detail map[string]interface{}) {
	event := ActivityEvent{
		SessionID: sessionID,
		Type:      eventType,
		Detail:    detail,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		c.logger.Warn("Activity", "Failed to marshal event", map[string]interface{}{"type": eventType, "error": err.Error()})
		return
	}

	if err := c.publisher.Publish(ctx, payload); err != nil {
		c.logger.Warn("Activity", "Failed to publish event", map[string]interface{}{"type": eventType, "error": err.Error()})
	}

	if c.natsPub != nil {
		data := map[string]interface{}{"session_id": sessionID, "timestamp": event.Timestamp}
		for k, v := range detail {
			data[k] = v
		}
		evt := events.BaseEvent{Type: eventType, Data: data, OccurredAt: event.Timestamp}
		if err := c.natsPub.Publish(ctx, evt); err != nil {
			c.logger.Warn("Activity", "Failed to mirror event to NATS", map[string]interface{}{"type": eventType, "error": err.Error()})
		}
	}
}
