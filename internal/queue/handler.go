package queue

import (
	"errors"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/product-catalog/internal/service"
)

// StockUpdater applies a validated absolute stock quantity to a product.
type StockUpdater interface {
	UpdateStock(id, quantity int) (bool, error)
}

// StockUpdateHandler bridges dequeued requests to the business layer. A
// missing product or a validation failure is a normal non-applied outcome;
// only unexpected errors propagate to the processor.
type StockUpdateHandler struct {
	updater StockUpdater
	log     *zap.Logger
}

func NewStockUpdateHandler(updater StockUpdater, log *zap.Logger) *StockUpdateHandler {
	return &StockUpdateHandler{updater: updater, log: log}
}

// Handle applies one stock update. It reports true when the product was
// updated and false when the product does not exist or the input was invalid.
func (h *StockUpdateHandler) Handle(productID, quantity int) (bool, error) {
	applied, err := h.updater.UpdateStock(productID, quantity)
	if err != nil {
		var verr service.ValidationError
		if errors.As(err, &verr) {
			h.log.Warn("stock update rejected",
				zap.Int("product_id", productID),
				zap.Int("quantity", quantity),
				zap.String("reason", verr.Error()))
			return false, nil
		}
		return false, err
	}
	return applied, nil
}
