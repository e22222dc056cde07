package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"topup-store/internal/pkg/logger"

	"github.com/panjf2000/ants/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler processes one delivery. A returned error schedules a retry.
type MessageHandler func(ctx context.Context, msg *amqp.Delivery) error

type RetryStrategy string

const (
	FixedRetry       RetryStrategy = "fixed"
	ExponentialRetry RetryStrategy = "exponential"
	LinearRetry      RetryStrategy = "linear"
)

const retryCountHeader = "x-retry-count"

type SubscribeOptions struct {
	QueueOpts        *QueueConfig
	QueueName        string
	ConsumerName     string
	WorkerCount      int
	PrefetchCount    int
	HandlerTimeout   time.Duration
	MaxRetryAttempts int
	EnableDeadLetter bool
	DeadLetterName   string
	RetryStrategy    RetryStrategy
	BaseRetryDelay   time.Duration
	MaxRetryDelay    time.Duration
}

func DefaultSubscribeOptions(queueName string) *SubscribeOptions {
	return &SubscribeOptions{
		QueueName:        queueName,
		ConsumerName:     queueName,
		WorkerCount:      3,
		PrefetchCount:    10,
		HandlerTimeout:   2 * time.Minute,
		MaxRetryAttempts: 5,
		EnableDeadLetter: true,
		DeadLetterName:   "fail:" + queueName,
		RetryStrategy:    ExponentialRetry,
		BaseRetryDelay:   time.Second * 5,
		MaxRetryDelay:    time.Minute * 10,
	}
}

type Subscriber struct {
	channelManagers []*ChannelManager
	handler         MessageHandler
	opts            *SubscribeOptions
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	isRunning       atomic.Bool
	pool            *ants.Pool
	mu              sync.Mutex
}

func NewSubscriber(ctx context.Context, connManager *ConnectionManager, handler MessageHandler, opts *SubscribeOptions) (*Subscriber, error) {
	ctx, cancel := context.WithCancel(ctx)

	pool, err := ants.NewPool(opts.WorkerCount*opts.PrefetchCount, ants.WithOptions(ants.Options{
		ExpiryDuration: time.Hour,
		Nonblocking:    false,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Message handler panic on %s: %v", opts.QueueName, i)
		},
	}))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create %s handler pool: %w", opts.QueueName, err)
	}

	sub := &Subscriber{
		handler:         handler,
		opts:            opts,
		ctx:             ctx,
		cancel:          cancel,
		channelManagers: make([]*ChannelManager, opts.WorkerCount),
		pool:            pool,
	}
	for i := range sub.channelManagers {
		sub.channelManagers[i] = NewChannelManager(ctx, connManager)
	}

	return sub, nil
}

func (s *Subscriber) Start() error {
	if s.isRunning.Swap(true) {
		return fmt.Errorf("subscriber for %s is already running", s.opts.QueueName)
	}

	for i := 0; i < s.opts.WorkerCount; i++ {
		s.wg.Add(1)
		go s.runWorker(i)
	}

	logger.Info.Printf("Subscribed to %s with %d workers", s.opts.QueueName, s.opts.WorkerCount)
	return nil
}

func (s *Subscriber) runWorker(workerID int) {
	defer s.wg.Done()

	backoff := &exponentialBackoff{min: time.Second, max: 30 * time.Second, factor: 2}

	for s.isRunning.Load() && s.ctx.Err() == nil {
		if err := s.consume(workerID); err != nil {
			logger.Warning.Printf("Worker %d on %s consume error: %v", workerID, s.opts.QueueName, err)
			backoff.sleep(s.ctx)
			continue
		}
		backoff.reset()
	}
}

type exponentialBackoff struct {
	min    time.Duration
	max    time.Duration
	factor float64
	curr   time.Duration
}

func (b *exponentialBackoff) next() time.Duration {
	if b.curr == 0 {
		b.curr = b.min
	} else {
		b.curr = time.Duration(float64(b.curr) * b.factor)
		if b.curr > b.max {
			b.curr = b.max
		}
	}
	return b.curr
}

func (b *exponentialBackoff) sleep(ctx context.Context) {
	timer := time.NewTimer(b.next())
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (b *exponentialBackoff) reset() {
	b.curr = 0
}

func (s *Subscriber) declareQueue(ch *amqp.Channel) (*amqp.Queue, error) {
	if err := ch.Qos(s.opts.PrefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	cfg := s.opts.QueueOpts
	if cfg == nil {
		cfg = DefaultQueueConfig()
	}

	q, err := ch.QueueDeclare(s.opts.QueueName, cfg.Durable, cfg.AutoDelete, cfg.Exclusive, cfg.NoWait, cfg.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	return &q, nil
}

func (s *Subscriber) consume(workerID int) error {
	ch, err := s.channelManagers[workerID].GetChannel()
	if err != nil {
		return err
	}

	q, err := s.declareQueue(ch)
	if err != nil {
		return err
	}

	consumerName := fmt.Sprintf("%s-%d-%d", s.opts.ConsumerName, workerID, time.Now().Unix())
	msgs, err := ch.ConsumeWithContext(s.ctx, q.Name, consumerName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for msg := range msgs {
		delivery := msg
		if err := s.pool.Submit(func() {
			s.processMessage(workerID, &delivery)
		}); err != nil {
			logger.Error.Printf("Worker %d failed to submit message %s: %v", workerID, delivery.MessageId, err)
			_ = delivery.Nack(false, true)
		}
	}

	return nil
}

func (s *Subscriber) processMessage(workerID int, msg *amqp.Delivery) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.HandlerTimeout)
	defer cancel()

	err := s.handler(ctx, msg)
	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			logger.Error.Printf("Failed to ack message %s: %v", msg.MessageId, ackErr)
		}
		return
	}

	attempt := getRetryCount(msg) + 1
	logger.Warning.Printf("Handler failed for message %s on attempt %d: %v", msg.MessageId, attempt, err)

	if attempt > s.opts.MaxRetryAttempts {
		s.giveUp(workerID, msg, err)
		return
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		logger.Error.Printf("Failed to ack message %s before retry: %v", msg.MessageId, ackErr)
		return
	}
	s.republishWithDelay(workerID, msg, attempt)
}

func getRetryCount(msg *amqp.Delivery) int {
	if msg.Headers == nil {
		return 0
	}
	switch v := msg.Headers[retryCountHeader].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	}
	return 0
}

func copyPublishing(msg *amqp.Delivery) amqp.Publishing {
	headers := amqp.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}
	return amqp.Publishing{
		Headers:       headers,
		ContentType:   msg.ContentType,
		DeliveryMode:  amqp.Persistent,
		CorrelationId: msg.CorrelationId,
		MessageId:     msg.MessageId,
		Timestamp:     msg.Timestamp,
		Type:          msg.Type,
		Body:          msg.Body,
	}
}

func (s *Subscriber) republishWithDelay(workerID int, msg *amqp.Delivery, retryCount int) {
	publishing := copyPublishing(msg)
	publishing.Headers[retryCountHeader] = int32(retryCount)
	delay := s.calculateRetryDelay(retryCount)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-s.ctx.Done():
			return
		}

		ch, err := s.channelManagers[workerID].GetChannel()
		if err != nil {
			logger.Error.Printf("Failed to get channel for retry of %s: %v", publishing.MessageId, err)
			return
		}
		if err := ch.PublishWithContext(s.ctx, "", s.opts.QueueName, false, false, publishing); err != nil {
			logger.Error.Printf("Failed to republish %s: %v", publishing.MessageId, err)
		}
	}()
}

func (s *Subscriber) giveUp(workerID int, msg *amqp.Delivery, cause error) {
	if !s.opts.EnableDeadLetter {
		if err := msg.Reject(false); err != nil {
			logger.Error.Printf("Failed to reject message %s: %v", msg.MessageId, err)
		}
		return
	}

	if err := s.publishToDeadLetter(workerID, msg, cause); err != nil {
		logger.Error.Printf("Failed to dead-letter message %s: %v", msg.MessageId, err)
		_ = msg.Nack(false, true)
		return
	}
	if err := msg.Ack(false); err != nil {
		logger.Error.Printf("Failed to ack dead-lettered message %s: %v", msg.MessageId, err)
	}
}

func (s *Subscriber) publishToDeadLetter(workerID int, msg *amqp.Delivery, cause error) error {
	ch, err := s.channelManagers[workerID].GetChannel()
	if err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(s.opts.DeadLetterName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare dead letter queue: %w", err)
	}

	publishing := copyPublishing(msg)
	publishing.Headers["x-death-reason"] = cause.Error()
	publishing.Headers["x-death-time"] = time.Now().Format(time.RFC3339)
	publishing.Headers["x-death-queue"] = s.opts.QueueName

	if err := ch.PublishWithContext(s.ctx, "", s.opts.DeadLetterName, false, false, publishing); err != nil {
		return fmt.Errorf("failed to publish to dead letter queue: %w", err)
	}

	logger.Warning.Printf("Moved message %s to %s after %d attempts", msg.MessageId, s.opts.DeadLetterName, s.opts.MaxRetryAttempts)
	return nil
}

func (s *Subscriber) calculateRetryDelay(retryCount int) time.Duration {
	var delay time.Duration

	switch s.opts.RetryStrategy {
	case FixedRetry:
		delay = s.opts.BaseRetryDelay
	case LinearRetry:
		delay = s.opts.BaseRetryDelay * time.Duration(retryCount)
	default:
		delay = s.opts.BaseRetryDelay * time.Duration(1<<uint(retryCount-1))
	}

	if delay > s.opts.MaxRetryDelay {
		delay = s.opts.MaxRetryDelay
	}
	return delay
}

func (s *Subscriber) Stop() error {
	if !s.isRunning.Swap(false) {
		return nil
	}

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Minute):
		return fmt.Errorf("timeout waiting for %s workers to stop", s.opts.QueueName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cm := range s.channelManagers {
		if cm == nil {
			continue
		}
		if err := cm.Close(); err != nil {
			logger.Error.Printf("Error closing channel for worker %d: %v", i, err)
		}
		s.channelManagers[i] = nil
	}

	s.pool.Release()
	return nil
}

func (s *Subscriber) IsHealthy() bool {
	return s.isRunning.Load() && s.ctx.Err() == nil
}
