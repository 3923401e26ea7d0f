package queue

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	models "github.com/rogerio-castellano/product-catalog/internal/models"
	repo "github.com/rogerio-castellano/product-catalog/internal/repo"
	"github.com/rogerio-castellano/product-catalog/internal/service"
)

type recordingHandler struct {
	handled []int
	failOn  int
	panicOn int
}

func (h *recordingHandler) Handle(productID, quantity int) (bool, error) {
	if productID == h.panicOn && h.panicOn != 0 {
		panic("handler blew up")
	}
	h.handled = append(h.handled, productID)
	if productID == h.failOn && h.failOn != 0 {
		return false, errors.New("persistence down")
	}
	return true, nil
}

func enqueueIDs(t *testing.T, q *StockUpdateQueue, ids ...int) {
	t.Helper()
	for _, id := range ids {
		err := q.Enqueue(&models.StockUpdateRequest{ProductID: id, Quantity: 1, RequestedAt: time.Now().UTC()})
		if err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}
}

func TestDrainProcessesItemsInEnqueueOrder(t *testing.T) {
	q := NewStockUpdateQueue()
	h := &recordingHandler{}
	p := NewProcessor(q, h, time.Second, zap.NewNop())
	enqueueIDs(t, q, 1, 2, 3)

	if err := p.DrainOnce(context.Background()); err != nil {
		t.Fatalf("drain failed: %v", err)
	}

	want := []int{1, 2, 3}
	if len(h.handled) != len(want) {
		t.Fatalf("expected %d handled items, got %d", len(want), len(h.handled))
	}
	for i, id := range want {
		if h.handled[i] != id {
			t.Errorf("position %d: expected product %d, got %d", i, id, h.handled[i])
		}
	}
	if q.Size() != 0 {
		t.Errorf("expected empty queue after drain, size is %d", q.Size())
	}
}

func TestDrainIsolatesItemFailures(t *testing.T) {
	q := NewStockUpdateQueue()
	h := &recordingHandler{failOn: 2}
	p := NewProcessor(q, h, time.Second, zap.NewNop())
	enqueueIDs(t, q, 1, 2, 3)

	if err := p.DrainOnce(context.Background()); err != nil {
		t.Fatalf("a per-item failure must not fail the cycle: %v", err)
	}
	if len(h.handled) != 3 {
		t.Errorf("expected all 3 items handled despite the failure, got %d", len(h.handled))
	}
}

func TestDrainContainsPanicsAndResumesNextCycle(t *testing.T) {
	q := NewStockUpdateQueue()
	h := &recordingHandler{panicOn: 2}
	p := NewProcessor(q, h, time.Second, zap.NewNop())
	enqueueIDs(t, q, 1, 2, 3)

	err := p.DrainOnce(context.Background())
	if err == nil || !strings.Contains(err.Error(), "panicked") {
		t.Fatalf("expected a contained panic error, got %v", err)
	}
	// The panicking item is dropped; the rest of the batch waits for the
	// next cycle.
	if q.Size() != 1 {
		t.Fatalf("expected 1 item left for the next cycle, got %d", q.Size())
	}

	h.panicOn = 0
	if err := p.DrainOnce(context.Background()); err != nil {
		t.Fatalf("second cycle failed: %v", err)
	}
	if q.Size() != 0 {
		t.Errorf("expected queue drained on the second cycle, size is %d", q.Size())
	}
}

func TestDrainStopsOnCancelledContext(t *testing.T) {
	q := NewStockUpdateQueue()
	h := &recordingHandler{}
	p := NewProcessor(q, h, time.Second, zap.NewNop())
	enqueueIDs(t, q, 1, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.DrainOnce(ctx); err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if len(h.handled) != 0 {
		t.Errorf("expected no items handled after cancellation, got %d", len(h.handled))
	}
	if q.Size() != 2 {
		t.Errorf("expected queued items untouched, size is %d", q.Size())
	}
}

// End-to-end through the real service: the processor applies a queued update
// to the store and skips an unknown product without disturbing the others.
func TestProcessorAppliesQueuedUpdatesToStore(t *testing.T) {
	memRepo := repo.NewInMemoryProductRepository()
	svc := service.NewProductService(memRepo, 10, 100)
	q := NewStockUpdateQueue()
	h := NewStockUpdateHandler(svc, zap.NewNop())
	p := NewProcessor(q, h, 10*time.Millisecond, zap.NewNop())

	created, err := svc.Create(service.CreateProductInput{Name: "Monitor", ImageURL: "https://example.com/monitor.png"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	enqueue := func(id, quantity int) {
		t.Helper()
		err := q.Enqueue(&models.StockUpdateRequest{ProductID: id, Quantity: quantity, RequestedAt: time.Now().UTC()})
		if err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}
	enqueue(999, 10) // unknown product, must not block the next item
	enqueue(created.ID, 50)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for {
		product, err := svc.GetByID(created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if product.Quantity == 50 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected quantity 50 after drain, got %d", product.Quantity)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if q.Size() != 0 {
		t.Errorf("expected empty queue, size is %d", q.Size())
	}
}
