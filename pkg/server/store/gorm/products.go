package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// Ensure ProductsStore implements store.ProductsStore
var _ store.ProductsStore = (*ProductsStore)(nil)

// ProductsStore implements store.ProductsStore using GORM
type ProductsStore struct {
	db *gorm.DB
}

// NewProductsStore creates a new ProductsStore
func NewProductsStore(db *gorm.DB) *ProductsStore {
	return &ProductsStore{db: db}
}

func (s *ProductsStore) listQuery(q store.ProductQuery) *gorm.DB {
	query := s.db.Model(&model.Product{}).Where("is_archived = ?", false)

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("title ILIKE ? OR business ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern)
	}
	return query
}

// ListProducts returns non-archived products matching the query
func (s *ProductsStore) ListProducts(q store.ProductQuery) ([]model.Product, error) {
	query := s.listQuery(q)

	switch q.Sort {
	case store.SortTrending:
		query = query.Order("views DESC")
	case store.SortPriceAsc:
		query = query.Order("discounted_price ASC")
	case store.SortPriceDesc:
		query = query.Order("discounted_price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CountProducts counts non-archived products matching the query
func (s *ProductsStore) CountProducts(q store.ProductQuery) (int64, error) {
	var count int64
	if err := s.listQuery(q).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FetchProduct retrieves a single product by ID
func (s *ProductsStore) FetchProduct(id string) (*model.Product, error) {
	var product model.Product
	result := s.db.First(&product, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrProductNotFound
		}
		return nil, result.Error
	}
	return &product, nil
}

// FetchProductsByIDs retrieves products for the given IDs, skipping IDs
// that no longer exist
func (s *ProductsStore) FetchProductsByIDs(ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	var products []model.Product
	if err := s.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct persists a new product
func (s *ProductsStore) CreateProduct(product *model.Product) error {
	return s.db.Create(product).Error
}

// UpdateProduct saves changes to an existing product
func (s *ProductsStore) UpdateProduct(product *model.Product) error {
	result := s.db.Model(product).Select("*").Omit("id", "created_at").Updates(product)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a product
func (s *ProductsStore) DeleteProduct(id string) error {
	result := s.db.Delete(&model.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrProductNotFound
	}
	return nil
}

// IncrementViews bumps a product's view counter by one
func (s *ProductsStore) IncrementViews(id string) error {
	result := s.db.Model(&model.Product{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrProductNotFound
	}
	return nil
}
