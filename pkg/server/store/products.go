package store

import (
	"errors"

	"github.com/dealhub/dealhub/pkg/model"
)

// ErrProductNotFound is returned when a product does not exist
var ErrProductNotFound = errors.New("product not found")

// Sort orders accepted by ListProducts
const (
	SortNewest    = "newest"
	SortTrending  = "trending"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// ProductQuery narrows a product listing
type ProductQuery struct {
	Search   string
	Category string
	Sort     string
	Limit    int
	Offset   int
}

// ProductsStore abstracts product storage operations
type ProductsStore interface {
	// ListProducts returns non-archived products matching the query
	ListProducts(q ProductQuery) ([]model.Product, error)

	// CountProducts counts non-archived products matching the query
	CountProducts(q ProductQuery) (int64, error)

	// FetchProduct retrieves a single product by ID
	FetchProduct(id string) (*model.Product, error)

	// FetchProductsByIDs retrieves products for the given IDs,
	// skipping IDs that no longer exist
	FetchProductsByIDs(ids []string) ([]model.Product, error)

	// CreateProduct persists a new product
	CreateProduct(product *model.Product) error

	// UpdateProduct saves changes to an existing product
	UpdateProduct(product *model.Product) error

	// DeleteProduct removes a product
	DeleteProduct(id string) error

	// IncrementViews bumps a product's view counter by one
	IncrementViews(id string) error
}
