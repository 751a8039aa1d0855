package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/event"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
)

// ProductService manages the catalog.
type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, oid)
}

// Create stores a new product. When the caller does not set the availability
// flag explicitly it is derived from the stock count. A taken product code
// surfaces as repositories.ErrDuplicateKey.
func (s *ProductService) Create(ctx context.Context, product *models.Product, inStock *bool) (*models.Product, error) {
	if inStock != nil {
		product.InStock = *inStock
	} else {
		product.InStock = product.Stock > 0
	}

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("product created", "product_id", product.ID.Hex(), "code", product.ProductCode)
	event.Fire(event.ProductChanged, product)
	return product, nil
}

// Update applies a partial field set and returns the updated product. When
// the stock count changes and the caller did not set the availability flag
// explicitly, the flag is re-derived.
func (s *ProductService) Update(ctx context.Context, id string, set bson.M) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, ErrNoFields
	}

	if stock, ok := set["stock"].(int); ok {
		if _, explicit := set["inStock"]; !explicit {
			set["inStock"] = stock > 0
		}
	}

	product, err := s.products.Update(ctx, oid, set)
	if err != nil {
		return nil, err
	}

	event.Fire(event.ProductChanged, product)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, oid); err != nil {
		return err
	}

	logger.WithCtx(ctx).Info("product deleted", "product_id", id)
	event.Fire(event.ProductChanged, nil)
	return nil
}
