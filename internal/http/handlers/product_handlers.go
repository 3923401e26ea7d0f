package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	repo "github.com/rogerio-castellano/product-catalog/internal/repo"
	"github.com/rogerio-castellano/product-catalog/internal/service"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} Envelope{data=ProductResponse}
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/v1/products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	created, err := productService.Create(service.CreateProductInput{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		if msgs, ok := validationMessages(err); ok {
			respondError(w, http.StatusBadRequest, "validation failed", msgs...)
			return
		}
		respondError(w, http.StatusInternalServerError, "could not create product")
		return
	}

	respondSuccess(w, http.StatusCreated, toProductResponse(created), "product created")
}

// GetProductsHandler godoc
// @Summary List all products
// @Description Returns every product, newest first
// @Tags products
// @Produce json
// @Success 200 {object} Envelope{data=[]ProductResponse}
// @Failure 500 {object} Envelope
// @Router /api/v1/products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productService.GetAll()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not fetch products")
		return
	}
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	respondSuccess(w, http.StatusOK, response, "")
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} Envelope{data=ProductResponse}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/v1/products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if productCache != nil {
		if p, ok := productCache.Get(r.Context(), id); ok {
			respondSuccess(w, http.StatusOK, toProductResponse(p), "")
			return
		}
	}

	product, err := productService.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}

	if productCache != nil {
		productCache.Set(r.Context(), product)
	}
	respondSuccess(w, http.StatusOK, toProductResponse(product), "")
}

// UpdateStockHandler godoc
// @Summary Set the stock quantity of a product
// @Description Synchronously sets the absolute quantity
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param stock body StockUpdateRequest true "New quantity"
// @Success 200 {object} Envelope{data=ProductResponse}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/v1/products/{id}/stock [patch]
func UpdateStockHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
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

	updated, err := productService.UpdateStock(id, *req.Quantity)
	if err != nil {
		if msgs, ok := validationMessages(err); ok {
			respondError(w, http.StatusBadRequest, "validation failed", msgs...)
			return
		}
		respondError(w, http.StatusInternalServerError, "could not update stock")
		return
	}
	if !updated {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	if productCache != nil {
		productCache.Invalidate(r.Context(), id)
	}

	product, err := productService.GetByID(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	respondSuccess(w, http.StatusOK, toProductResponse(product), "stock updated")
}

// HealthHandler godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} Envelope
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, nil, "ok")
}
