package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultProcessingInterval is the pause between drain cycles when no
// interval is configured.
const DefaultProcessingInterval = 2 * time.Second

// Handler processes one dequeued stock update.
type Handler interface {
	Handle(productID, quantity int) (bool, error)
}

// Processor is the background worker that drains the stock update queue once
// per interval. One failed item never stops the rest of the cycle, and a
// failed cycle never stops the worker; failed items are dropped, not retried.
type Processor struct {
	queue    *StockUpdateQueue
	handler  Handler
	interval time.Duration
	log      *zap.Logger
}

func NewProcessor(q *StockUpdateQueue, h Handler, interval time.Duration, log *zap.Logger) *Processor {
	if interval <= 0 {
		interval = DefaultProcessingInterval
	}
	return &Processor{queue: q, handler: h, interval: interval, log: log}
}

// Start launches the polling loop in the background. The loop exits when ctx
// is cancelled; an item already handed to the handler finishes first, and
// anything still queued is dropped.
func (p *Processor) Start(ctx context.Context) {
	go p.run(ctx)
}

func (p *Processor) run(ctx context.Context) {
	p.log.Info("stock update processor started", zap.Duration("interval", p.interval))
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.log.Info("stock update processor stopped", zap.Int("pending", p.queue.Size()))
			return
		case <-ticker.C:
			if err := p.DrainOnce(ctx); err != nil {
				p.log.Error("drain cycle failed", zap.Error(err))
			}
		}
	}
}

// DrainOnce runs a single drain cycle: it dequeues and handles items until
// the queue is empty or ctx is cancelled.
func (p *Processor) DrainOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("drain cycle panicked: %v", r)
		}
	}()

	for p.queue.Size() > 0 {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		item, ok := p.queue.Dequeue()
		if !ok {
			return nil
		}
		p.process(item.ProductID, item.Quantity, item.RequestedAt)
	}
	return nil
}

// process applies one item and logs the outcome. Handler errors are reported
// and the item is discarded so the remaining batch keeps flowing.
func (p *Processor) process(productID, quantity int, requestedAt time.Time) {
	applied, err := p.handler.Handle(productID, quantity)
	switch {
	case err != nil:
		p.log.Error("stock update failed",
			zap.Int("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err))
	case !applied:
		p.log.Warn("stock update skipped",
			zap.Int("product_id", productID),
			zap.Int("quantity", quantity))
	default:
		p.log.Info("stock updated",
			zap.Int("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Duration("queued_for", time.Since(requestedAt)))
	}
}
