package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	api "github.com/rogerio-castellano/product-catalog/internal/http"
	"github.com/rogerio-castellano/product-catalog/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-catalog/internal/queue"
	repo "github.com/rogerio-castellano/product-catalog/internal/repo"
	"github.com/rogerio-castellano/product-catalog/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

func newTestRouter(t *testing.T) (http.Handler, *service.ProductService, *queue.StockUpdateQueue) {
	t.Helper()
	rl.Configure(10000, 10000)
	rl.CleanupAllVisitors()

	svc := service.NewProductService(repo.NewInMemoryProductRepository(), 10, 100)
	q := queue.NewStockUpdateQueue()
	handlers.SetProductService(svc)
	handlers.SetStockQueue(q)
	handlers.SetProductCache(nil)
	handlers.SetLogger(zap.NewNop())
	return api.NewRouter(), svc, q
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func createProduct(t *testing.T, r http.Handler, name string) handlers.ProductResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/products", handlers.ProductRequest{
		Name:     name,
		ImageURL: "https://example.com/" + strings.ToLower(name) + ".png",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	var resp handlers.ProductResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	return resp
}

func TestCreateProductHandler(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/products", handlers.ProductRequest{
		Name:     "Laptop",
		ImageURL: "https://example.com/laptop.png",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Error("expected success envelope")
	}
	var resp handlers.ProductResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if resp.Name != "Laptop" || resp.Quantity != 0 || resp.ID == 0 {
		t.Errorf("unexpected product: %+v", resp)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	r, _, _ := newTestRouter(t)

	tests := []struct {
		name      string
		payload   handlers.ProductRequest
		wantField string
	}{
		{"missing name", handlers.ProductRequest{Name: "", ImageURL: "https://example.com/x.png"}, "name"},
		{"missing image URL", handlers.ProductRequest{Name: "Name", ImageURL: ""}, "imageUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/products", tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			env := decodeEnvelope(t, w)
			if env.Success {
				t.Error("expected failure envelope")
			}
			found := false
			for _, msg := range env.Errors {
				if strings.HasPrefix(msg, tt.wantField+":") {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error about %q, got %v", tt.wantField, env.Errors)
			}
		})
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	r, _, _ := newTestRouter(t)
	created := createProduct(t, r, "Mouse")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/products/999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/v1/products/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed ID, got %d", w.Code)
	}
}

func TestGetProductsHandler(t *testing.T) {
	r, _, _ := newTestRouter(t)
	createProduct(t, r, "First")
	createProduct(t, r, "Second")

	w := doJSON(t, r, http.MethodGet, "/api/v1/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	var products []handlers.ProductResponse
	if err := json.Unmarshal(env.Data, &products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products))
	}
}

func TestUpdateStockHandler(t *testing.T) {
	r, _, _ := newTestRouter(t)
	created := createProduct(t, r, "Keyboard")
	quantity := 25

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/products/%d/stock", created.ID),
		handlers.StockUpdateRequest{Quantity: &quantity})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	var resp handlers.ProductResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if resp.Quantity != 25 {
		t.Errorf("expected quantity 25, got %d", resp.Quantity)
	}

	negative := -5
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/products/%d/stock", created.ID),
		handlers.StockUpdateRequest{Quantity: &negative})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative quantity, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/v1/products/999/stock",
		handlers.StockUpdateRequest{Quantity: &quantity})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", w.Code)
	}
}

func TestGetPagedProductsHandler(t *testing.T) {
	r, _, _ := newTestRouter(t)
	for i := 0; i < 5; i++ {
		createProduct(t, r, fmt.Sprintf("Product%d", i))
	}

	w := doJSON(t, r, http.MethodGet, "/api/v2/products?pageNumber=1&pageSize=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	var page handlers.PagedProductsResponse
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Items) != 2 || page.TotalCount != 5 || page.TotalPages != 3 {
		t.Errorf("unexpected page: %+v", page)
	}
	if page.HasPreviousPage || !page.HasNextPage {
		t.Error("expected first page with a next page")
	}

	w = doJSON(t, r, http.MethodGet, "/api/v2/products", nil)
	env = decodeEnvelope(t, w)
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.PageNumber != 1 || page.PageSize != 10 {
		t.Errorf("expected defaults 1/10, got %d/%d", page.PageNumber, page.PageSize)
	}
}

func TestEnqueueStockUpdateHandler(t *testing.T) {
	r, svc, q := newTestRouter(t)
	created := createProduct(t, r, "Monitor")
	quantity := 50

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v2/products/%d/stock", created.ID),
		handlers.StockUpdateRequest{Quantity: &quantity})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 Accepted, got %d: %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	var ack handlers.StockUpdateAccepted
	if err := json.Unmarshal(env.Data, &ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if ack.Status != "queued" || ack.ProductID != created.ID || ack.Quantity != 50 {
		t.Errorf("unexpected ack: %+v", ack)
	}
	if ack.QueuePosition != 1 {
		t.Errorf("expected queue position 1, got %d", ack.QueuePosition)
	}
	if q.Size() != 1 {
		t.Fatalf("expected 1 queued update, got %d", q.Size())
	}

	// The accepted update is applied once the processor drains the queue.
	p := queue.NewProcessor(q, queue.NewStockUpdateHandler(svc, zap.NewNop()), time.Second, zap.NewNop())
	if err := p.DrainOnce(context.Background()); err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	product, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.Quantity != 50 {
		t.Errorf("expected quantity 50 after drain, got %d", product.Quantity)
	}
}

func TestEnqueueStockUpdateHandler_Invalid(t *testing.T) {
	r, _, q := newTestRouter(t)
	created := createProduct(t, r, "Webcam")

	negative := -1
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v2/products/%d/stock", created.ID),
		handlers.StockUpdateRequest{Quantity: &negative})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative quantity, got %d", w.Code)
	}

	quantity := 5
	w = doJSON(t, r, http.MethodPatch, "/api/v2/products/0/stock",
		handlers.StockUpdateRequest{Quantity: &quantity})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a non-positive ID, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v2/products/%d/stock", created.ID), map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a missing quantity, got %d", w.Code)
	}

	if q.Size() != 0 {
		t.Errorf("rejected requests must not be queued, size is %d", q.Size())
	}
}

func TestHealthHandler(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
