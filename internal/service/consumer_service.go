package service

import (
	"context"
	"encoding/json"

	"ai-analytics-be/internal/pkg/logger"
	"ai-analytics-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the activity topic and fans events out to the
// websocket hub.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event ActivityEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Warn("Consumer", "Failed to unmarshal activity event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are never retriable
		return
	}

	cs.logger.Info("Consumer", "Activity event", map[string]interface{}{
		"session_id": event.SessionID,
		"type":       event.Type,
	})

	cs.hub.Send(event.SessionID, event)
	msg.Ack()
}
