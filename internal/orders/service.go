package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/pagination"
)

// Service exposes the post-checkout order read surface.
type Service struct {
	repo *Repository
}

// NewService builds the orders read service.
func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &Service{repo: repo}, nil
}

// GetOrder returns one order with items, restricted to the given store.
func (s *Service) GetOrder(ctx context.Context, storeID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if order.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// ListOrders returns one page of the store's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*List, error) {
	rows, err := s.repo.ListByStore(ctx, storeID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	page := pagination.TrimPage(rows, params.Limit, func(o models.Order) pagination.Cursor {
		return pagination.Cursor{CreatedAt: o.CreatedAt, ID: o.ID}
	})
	return &List{Orders: page.Items, NextCursor: page.NextCursor}, nil
}
