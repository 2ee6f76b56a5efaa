package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/pagination"
)

// Reader is the read-only catalog surface used by cart and checkout.
type Reader interface {
	GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]models.Product, error)
}

// Service owns catalog reads plus the vendor-side product lifecycle.
type Service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &Service{repo: repo}, nil
}

// GetProduct returns the product regardless of status; callers decide what a
// non-active status means for them.
func (s *Service) GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, storeID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

// GetProductsByIDs returns the products that exist; missing IDs are omitted.
func (s *Service) GetProductsByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]models.Product, error) {
	products, err := s.repo.FindByIDs(ctx, storeID, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading products")
	}
	return products, nil
}

// StorefrontProduct returns the product only when it is visible to shoppers.
func (s *Service) StorefrontProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.GetProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != enums.ProductStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

// ListStorefront returns one page of active products, newest first.
func (s *Service) ListStorefront(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*ProductList, error) {
	rows, err := s.repo.ListActive(ctx, storeID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	page := pagination.TrimPage(rows, params.Limit, func(p models.Product) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	})
	return &ProductList{Products: page.Items, NextCursor: page.NextCursor}, nil
}

// ListVendor returns every product in the vendor's store.
func (s *Service) ListVendor(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	products, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return products, nil
}

// CreateProduct inserts a vendor product with optional variants.
func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	status := input.Status
	if status == "" {
		status = enums.ProductStatusDraft
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}

	product := &models.Product{
		StoreID:           input.StoreID,
		Name:              input.Name,
		Description:       input.Description,
		Status:            status,
		Price:             input.Price.Round(2),
		TrackInventory:    input.TrackInventory,
		InventoryQuantity: input.InventoryQuantity,
		ImageURL:          input.ImageURL,
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	} else {
		product.LowStockThreshold = 5
	}
	for _, v := range input.Variants {
		variant := models.ProductVariant{Name: v.Name}
		if v.Price != nil {
			rounded := v.Price.Round(2)
			variant.Price = &rounded
		}
		product.Variants = append(product.Variants, variant)
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return created, nil
}

// UpdateProduct applies a partial vendor update.
func (s *Service) UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
		}
		product.Status = *input.Status
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = input.Price.Round(2)
	}
	if input.TrackInventory != nil {
		product.TrackInventory = *input.TrackInventory
	}
	if input.InventoryQuantity != nil {
		if *input.InventoryQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory cannot be negative")
		}
		product.InventoryQuantity = *input.InventoryQuantity
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	return updated, nil
}

// DeleteProduct removes the product, or archives it when historical order
// items still reference it.
func (s *Service) DeleteProduct(ctx context.Context, storeID, productID uuid.UUID) (DeleteOutcome, error) {
	if _, err := s.GetProduct(ctx, storeID, productID); err != nil {
		return "", err
	}

	refs, err := s.repo.CountOrderReferences(ctx, productID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking order references")
	}
	if refs > 0 {
		if err := s.repo.Archive(ctx, storeID, productID); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "archiving product")
		}
		return DeleteOutcomeArchived, nil
	}

	if err := s.repo.Delete(ctx, storeID, productID); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	return DeleteOutcomeDeleted, nil
}

// DecrementInventory applies the guarded stock decrement for a checkout line.
func (s *Service) DecrementInventory(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	return s.repo.DecrementInventory(ctx, productID, qty)
}
