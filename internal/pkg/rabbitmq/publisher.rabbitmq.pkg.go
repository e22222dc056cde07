package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	"topup-store/internal/pkg/logger"
)

type Publisher struct {
	channelManager *ChannelManager
	declared       map[string]bool
	mu             sync.Mutex
}

func NewPublisher(ctx context.Context, connManager *ConnectionManager) *Publisher {
	return &Publisher{
		channelManager: NewChannelManager(ctx, connManager),
		declared:       make(map[string]bool),
	}
}

// PublishEvent sends an Event envelope to a durable queue.
func (p *Publisher) PublishEvent(ctx context.Context, queueName, eventType string, data interface{}) error {
	msg, err := NewEventMessage(eventType, data)
	if err != nil {
		return err
	}
	return p.Publish(ctx, queueName, msg)
}

func (p *Publisher) Publish(ctx context.Context, queueName string, msg *Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelManager.GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}

	if !p.declared[queueName] {
		cfg := DefaultQueueConfig()
		if _, err := ch.QueueDeclare(queueName, cfg.Durable, cfg.AutoDelete, cfg.Exclusive, cfg.NoWait, cfg.Args); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
		}
		p.declared[queueName] = true
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, *msg.GeneratePayload()); err != nil {
		// the channel may have been replaced, declare again on the next publish
		delete(p.declared, queueName)
		return fmt.Errorf("failed to publish to %s: %w", queueName, err)
	}

	logger.Debug.Printf("Published message %s to %s", msg.ID, queueName)
	return nil
}

func (p *Publisher) Close() error {
	return p.channelManager.Close()
}
