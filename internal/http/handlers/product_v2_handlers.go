package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	models "github.com/rogerio-castellano/product-catalog/internal/models"
)

// GetPagedProductsHandler godoc
// @Summary List products page by page
// @Description Returns one page ordered newest first. Page numbers below 1 become 1; page sizes are clamped to [1, 100] with a default of 10.
// @Tags products
// @Produce json
// @Param pageNumber query int false "1-based page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} Envelope{data=PagedProductsResponse}
// @Failure 500 {object} Envelope
// @Router /api/v2/products [get]
func GetPagedProductsHandler(w http.ResponseWriter, r *http.Request) {
	pageNumber, _ := strconv.Atoi(r.URL.Query().Get("pageNumber"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	page, err := productService.GetPaged(pageNumber, pageSize)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not fetch products")
		return
	}
	respondSuccess(w, http.StatusOK, toPagedResponse(page), "")
}

// EnqueueStockUpdateHandler godoc
// @Summary Queue a stock update
// @Description Accepts the update and returns immediately; the background processor applies it on its next cycle.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param stock body StockUpdateRequest true "Target quantity"
// @Success 202 {object} Envelope{data=StockUpdateAccepted}
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/v2/products/{id}/stock [patch]
func EnqueueStockUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req StockUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "validation failed", "quantity: quantity is required")
		return
	}
	if *req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "validation failed", "quantity: quantity cannot be negative")
		return
	}

	update := models.StockUpdateRequest{
		ProductID:   id,
		Quantity:    *req.Quantity,
		RequestedAt: time.Now().UTC(),
	}
	if err := stockQueue.Enqueue(&update); err != nil {
		respondError(w, http.StatusInternalServerError, "could not queue stock update")
		return
	}

	// Size is read after the enqueue, so the position is a best-effort
	// estimate under concurrent producers.
	position := stockQueue.Size()
	logger.Info("stock update queued",
		zap.Int("product_id", id),
		zap.Int("quantity", *req.Quantity),
		zap.Int("queue_position", position))

	respondSuccess(w, http.StatusAccepted, StockUpdateAccepted{
		ProductID:     id,
		Quantity:      *req.Quantity,
		Status:        "queued",
		QueuePosition: position,
		Message:       "stock update queued for processing",
	}, "")
}
