package service

import (
	"net/url"
	"strings"
	"time"

	models "github.com/rogerio-castellano/product-catalog/internal/models"
	repo "github.com/rogerio-castellano/product-catalog/internal/repo"
)

const (
	maxNameLength        = 200
	maxImageURLLength    = 500
	maxDescriptionLength = 2000

	defaultPageSize = 10
	maxPageSize     = 100
)

// CreateProductInput carries the caller-supplied fields for a new product.
type CreateProductInput struct {
	Name        string
	ImageURL    string
	Price       *float64
	Description string
	Quantity    int
}

// ProductService implements the synchronous catalog business logic. The queue
// processor reuses its UpdateStock operation for the asynchronous path.
type ProductService struct {
	repo            repo.ProductRepository
	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
}

// NewProductService creates a ProductService backed by the given repository.
// Non-positive page limits fall back to the built-in defaults (10, capped at 100).
func NewProductService(r repo.ProductRepository, defaultSize, maxSize int) *ProductService {
	if defaultSize < 1 {
		defaultSize = defaultPageSize
	}
	if maxSize < 1 {
		maxSize = maxPageSize
	}
	return &ProductService{
		repo:            r,
		defaultPageSize: defaultSize,
		maxPageSize:     maxSize,
		now:             time.Now,
	}
}

// GetAll returns every product, newest-created first.
func (s *ProductService) GetAll() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetByID returns the product or repo.ErrProductNotFound. Non-positive IDs are
// treated the same as unknown ones.
func (s *ProductService) GetByID(id int) (models.Product, error) {
	if id <= 0 {
		return models.Product{}, repo.ErrProductNotFound
	}
	return s.repo.GetByID(id)
}

// Create validates and stores a new product. Name and image URL are trimmed
// before validation and storage; quantity defaults to zero.
func (s *ProductService) Create(input CreateProductInput) (models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.ImageURL = strings.TrimSpace(input.ImageURL)

	if errs := validateCreate(input); len(errs) > 0 {
		return models.Product{}, errs
	}

	now := s.now().UTC()
	product := models.Product{
		Name:        input.Name,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		Description: input.Description,
		Quantity:    input.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.repo.Create(product)
}

// UpdateStock sets the absolute quantity of a product. It reports false when
// the product does not exist (including non-positive IDs) and returns a
// ValidationError for negative quantities without touching the store.
func (s *ProductService) UpdateStock(id, quantity int) (bool, error) {
	if quantity < 0 {
		return false, ValidationError{Field: "quantity", Message: "quantity cannot be negative"}
	}
	if id <= 0 {
		return false, nil
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		if err == repo.ErrProductNotFound {
			return false, nil
		}
		return false, err
	}

	product.Quantity = quantity
	product.UpdatedAt = s.now().UTC()
	if _, err := s.repo.Update(product); err != nil {
		if err == repo.ErrProductNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetPaged returns one page of products, newest-created first. Page numbers
// below 1 become 1; page sizes below 1 take the default and oversized ones are
// capped. A page past the end yields no items but keeps the real total.
func (s *ProductService) GetPaged(pageNumber, pageSize int) (models.PagedProducts, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	items, totalCount, err := s.repo.GetPage((pageNumber-1)*pageSize, pageSize)
	if err != nil {
		return models.PagedProducts{}, err
	}
	if items == nil {
		items = []models.Product{}
	}

	return models.PagedProducts{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: (totalCount + pageSize - 1) / pageSize,
	}, nil
}

func validateCreate(input CreateProductInput) ValidationErrors {
	var errs ValidationErrors
	switch {
	case input.Name == "":
		errs = append(errs, ValidationError{Field: "name", Message: "name is required"})
	case len(input.Name) > maxNameLength:
		errs = append(errs, ValidationError{Field: "name", Message: "name must be at most 200 characters"})
	}
	switch {
	case input.ImageURL == "":
		errs = append(errs, ValidationError{Field: "imageUrl", Message: "imageUrl is required"})
	case len(input.ImageURL) > maxImageURLLength:
		errs = append(errs, ValidationError{Field: "imageUrl", Message: "imageUrl must be at most 500 characters"})
	default:
		if u, err := url.ParseRequestURI(input.ImageURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{Field: "imageUrl", Message: "imageUrl must be a valid URL"})
		}
	}
	if input.Price != nil && *input.Price < 0 {
		errs = append(errs, ValidationError{Field: "price", Message: "price cannot be negative"})
	}
	if len(input.Description) > maxDescriptionLength {
		errs = append(errs, ValidationError{Field: "description", Message: "description must be at most 2000 characters"})
	}
	if input.Quantity < 0 {
		errs = append(errs, ValidationError{Field: "quantity", Message: "quantity cannot be negative"})
	}
	return errs
}
