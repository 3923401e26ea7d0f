package handlers

import (
	"time"

	models "github.com/rogerio-castellano/product-catalog/internal/models"
)

// Envelope is the uniform response wrapper for every endpoint.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type ProductRequest struct {
	Name        string   `json:"name"`
	ImageURL    string   `json:"imageUrl"`
	Price       *float64 `json:"price,omitempty"`
	Description string   `json:"description,omitempty"`
	Quantity    int      `json:"quantity"`
}

type ProductResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	Price       *float64  `json:"price,omitempty"`
	Description string    `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type StockUpdateRequest struct {
	Quantity *int `json:"quantity"`
}

// StockUpdateAccepted is the v2 acknowledgement for a queued stock update.
// QueuePosition is the queue size observed right after enqueueing, an
// estimate only under concurrent producers.
type StockUpdateAccepted struct {
	ProductID     int    `json:"productId"`
	Quantity      int    `json:"quantity"`
	Status        string `json:"status"`
	QueuePosition int    `json:"queuePosition"`
	Message       string `json:"message"`
}

type PagedProductsResponse struct {
	Items           []ProductResponse `json:"items"`
	PageNumber      int               `json:"pageNumber"`
	PageSize        int               `json:"pageSize"`
	TotalCount      int               `json:"totalCount"`
	TotalPages      int               `json:"totalPages"`
	HasPreviousPage bool              `json:"hasPreviousPage"`
	HasNextPage     bool              `json:"hasNextPage"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		Description: p.Description,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPagedResponse(page models.PagedProducts) PagedProductsResponse {
	items := make([]ProductResponse, len(page.Items))
	for i, p := range page.Items {
		items[i] = toProductResponse(p)
	}
	return PagedProductsResponse{
		Items:           items,
		PageNumber:      page.PageNumber,
		PageSize:        page.PageSize,
		TotalCount:      page.TotalCount,
		TotalPages:      page.TotalPages,
		HasPreviousPage: page.HasPreviousPage(),
		HasNextPage:     page.HasNextPage(),
	}
}
