package serverApp

import (
	"fmt"
	"time"

	config "topup-store/configs"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/rabbitmq"
	"topup-store/internal/repository"
	orderService "topup-store/internal/service/order"

	"github.com/panjf2000/ants"
)

// InitWorker starts the background consumers. It returns once every
// subscriber has been submitted; the subscribers stop with payload.Ctx.
func InitWorker(payload *config.SetupServerDto) error {
	ctx := *payload.Ctx

	poolOpts := ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    true,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Worker panic: %v\n", i)
		},
	}

	pool, err := ants.NewPool(10, ants.WithOptions(poolOpts))
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}

	rp := repository.NewRepository(payload.Db)
	OrderService := newOrderService(payload, rp)

	opts := rabbitmq.DefaultSubscribeOptions(orderService.QueueOrderCreated)
	opts.WorkerCount = 2
	subscriber, err := rabbitmq.NewSubscriber(ctx, payload.Rb, OrderService.HandleOrderCreated, opts)
	if err != nil {
		pool.Release()
		return fmt.Errorf("failed to create %s subscriber: %w", orderService.QueueOrderCreated, err)
	}

	payload.Wg.Add(1)
	err = pool.Submit(func() {
		defer payload.Wg.Done()
		if err := subscriber.Start(); err != nil {
			logger.Error.Printf("Failed to start %s worker: %v\n", orderService.QueueOrderCreated, err)
			return
		}
		logger.Info.Printf("Worker %s started", orderService.QueueOrderCreated)

		<-ctx.Done()
		if err := subscriber.Stop(); err != nil {
			logger.Warning.Printf("Failed to stop %s worker: %v", orderService.QueueOrderCreated, err)
		}
		pool.Release()
	})
	if err != nil {
		payload.Wg.Done()
		pool.Release()
		return fmt.Errorf("failed to submit task to pool: %w", err)
	}

	return nil
}
