package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrConnectionClosed = errors.New("rabbitmq connection is closed")

// ChannelManager hands out one channel and reopens it after the broker closes it.
type ChannelManager struct {
	connManager *ConnectionManager
	ch          *amqp.Channel
	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewChannelManager(ctx context.Context, connManager *ConnectionManager) *ChannelManager {
	ctx, cancel := context.WithCancel(ctx)
	return &ChannelManager{
		connManager: connManager,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (m *ChannelManager) GetChannel() (*amqp.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ctx.Err(); err != nil {
		return nil, fmt.Errorf("channel manager stopped: %w", err)
	}

	if m.ch != nil && !m.ch.IsClosed() {
		return m.ch, nil
	}

	conn := m.connManager.GetConnection()
	if conn == nil || conn.IsClosed() {
		return nil, ErrConnectionClosed
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	m.ch = ch
	return ch, nil
}

func (m *ChannelManager) Close() error {
	m.cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ch == nil || m.ch.IsClosed() {
		m.ch = nil
		return nil
	}

	err := m.ch.Close()
	m.ch = nil
	if err != nil {
		return fmt.Errorf("failed to close channel: %w", err)
	}
	return nil
}
