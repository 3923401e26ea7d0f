package models

import "time"

// Product represents a product entity in the catalog.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	Price       *float64  `json:"price,omitempty"`
	Description string    `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StockUpdateRequest is a pending asynchronous stock update. The queue owns it
// from enqueue until the handler consumes it; no retry state is kept after that.
type StockUpdateRequest struct {
	ProductID   int       `json:"productId"`
	Quantity    int       `json:"quantity"`
	RequestedAt time.Time `json:"requestedAt"`
}

// PagedProducts is one page of products plus metadata about the whole set.
type PagedProducts struct {
	Items      []Product `json:"items"`
	PageNumber int       `json:"pageNumber"`
	PageSize   int       `json:"pageSize"`
	TotalCount int       `json:"totalCount"`
	TotalPages int       `json:"totalPages"`
}

// HasPreviousPage reports whether a page precedes this one.
func (p PagedProducts) HasPreviousPage() bool { return p.PageNumber > 1 }

// HasNextPage reports whether a page follows this one.
func (p PagedProducts) HasNextPage() bool { return p.PageNumber < p.TotalPages }
