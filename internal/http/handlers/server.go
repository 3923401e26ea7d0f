package handlers

import (
	"go.uber.org/zap"

	"github.com/rogerio-castellano/product-catalog/internal/queue"
	"github.com/rogerio-castellano/product-catalog/internal/redissvc"
	"github.com/rogerio-castellano/product-catalog/internal/service"
)

var (
	productService *service.ProductService
	stockQueue     *queue.StockUpdateQueue
	productCache   *redissvc.ProductCache
	logger         = zap.NewNop()
)

func SetProductService(s *service.ProductService) {
	productService = s
}

func SetStockQueue(q *queue.StockUpdateQueue) {
	stockQueue = q
}

// SetProductCache installs the read-through cache. Passing nil disables caching.
func SetProductCache(c *redissvc.ProductCache) {
	productCache = c
}

func SetLogger(l *zap.Logger) {
	logger = l
}
