// Package queue implements the in-memory stock update pipeline: a FIFO queue
// fed by the HTTP layer and a background processor that applies the updates.
package queue

import (
	"errors"
	"sync"

	models "github.com/rogerio-castellano/product-catalog/internal/models"
)

// ErrNilRequest is returned when Enqueue is called without a request.
var ErrNilRequest = errors.New("stock update request is required")

// StockUpdateQueue holds pending stock updates in strict FIFO order. It is
// safe for concurrent producers and consumers; neither side ever blocks.
// Capacity is unbounded.
type StockUpdateQueue struct {
	mu    sync.Mutex
	items []models.StockUpdateRequest
}

// NewStockUpdateQueue creates an empty queue.
func NewStockUpdateQueue() *StockUpdateQueue {
	return &StockUpdateQueue{}
}

// Enqueue appends a request to the tail of the queue.
func (q *StockUpdateQueue) Enqueue(req *models.StockUpdateRequest) error {
	if req == nil {
		return ErrNilRequest
	}
	q.mu.Lock()
	q.items = append(q.items, *req)
	q.mu.Unlock()
	return nil
}

// Dequeue removes and returns the head of the queue. The second return value
// is false when the queue is empty.
func (q *StockUpdateQueue) Dequeue() (models.StockUpdateRequest, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return models.StockUpdateRequest{}, false
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, true
}

// Size returns the current number of pending requests. The value is advisory:
// concurrent enqueues and dequeues may change it before the caller acts on it.
func (q *StockUpdateQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
