package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
)

// CatalogReader is the product read surface the cart consults at write time.
type CatalogReader interface {
	GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error)
}

// Service owns cart reads and mutations for one identity within one store.
type Service struct {
	repo    *Repository
	catalog CatalogReader
}

// NewService builds the cart service.
func NewService(repo *Repository, catalog CatalogReader) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &Service{repo: repo, catalog: catalog}, nil
}

// GetOrCreateCart returns the single open cart for (store, identity),
// creating it on first use. A concurrent create losing to the partial unique
// index is retried as a lookup.
func (s *Service) GetOrCreateCart(ctx context.Context, storeID uuid.UUID, identity Identity) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidIdentity, "exactly one of user or session identity is required")
	}

	cart, err := s.repo.FindByIdentity(ctx, storeID, identity)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	fresh := &models.Cart{
		StoreID:   storeID,
		UserID:    identity.UserID,
		SessionID: identity.SessionID,
	}
	created, err := s.repo.Create(ctx, fresh)
	if err == nil {
		return created, nil
	}
	if db.IsUniqueViolation(err, "") {
		// lost the creation race; the winner's cart is ours
		existing, findErr := s.repo.FindByIdentity(ctx, storeID, identity)
		if findErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "loading cart after create conflict")
		}
		return existing, nil
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
}

// FindCart returns the open cart for (store, identity) or CartNotFound.
func (s *Service) FindCart(ctx context.Context, storeID uuid.UUID, identity Identity) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidIdentity, "exactly one of user or session identity is required")
	}
	cart, err := s.repo.FindByIdentity(ctx, storeID, identity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeCartNotFound, "cart not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return cart, nil
}

// GetView returns the cart with its joined items, creating the cart if absent.
func (s *Service) GetView(ctx context.Context, storeID uuid.UUID, identity Identity) (*View, error) {
	cart, err := s.GetOrCreateCart(ctx, storeID, identity)
	if err != nil {
		return nil, err
	}
	return s.viewOf(ctx, cart)
}

// ListItems returns the joined line items for a cart.
func (s *Service) ListItems(ctx context.Context, cartID uuid.UUID) ([]ItemView, error) {
	items, err := s.repo.ListItems(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing cart items")
	}
	return items, nil
}

// UpsertItem adds deltaQuantity of (product, variant) to the identity's cart.
// An existing line merges quantities; a new line pins the product's current
// price. Stock availability is rechecked against the resulting quantity.
func (s *Service) UpsertItem(ctx context.Context, storeID uuid.UUID, identity Identity, input UpsertItemInput) (*View, error) {
	if input.DeltaQuantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1")
	}

	cart, err := s.GetOrCreateCart(ctx, storeID, identity)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.GetProduct(ctx, storeID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Status != enums.ProductStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeProductUnavailable, fmt.Sprintf("product %q is not available", product.Name))
	}

	var variant *models.ProductVariant
	if input.VariantID != nil {
		for i := range product.Variants {
			if product.Variants[i].ID == *input.VariantID {
				variant = &product.Variants[i]
				break
			}
		}
		if variant == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found")
		}
	}

	existing, err := s.repo.FindLine(ctx, cart.ID, input.ProductID, input.VariantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
	}

	target := input.DeltaQuantity
	if existing != nil {
		target = existing.Quantity + input.DeltaQuantity
	}
	if err := checkStock(product, target); err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.repo.UpdateItemQuantity(ctx, existing.ID, target); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart line")
		}
	} else {
		price := product.Price
		if variant != nil && variant.Price != nil {
			price = *variant.Price
		}
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			VariantID: input.VariantID,
			Quantity:  target,
			UnitPrice: price.Round(2),
		}
		if _, err := s.repo.CreateItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding cart line")
		}
	}

	if err := s.repo.TouchCart(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "touching cart")
	}
	return s.viewOf(ctx, cart)
}

// SetItemQuantity sets the line's quantity. Quantities below 1 are rejected;
// callers remove the line instead.
func (s *Service) SetItemQuantity(ctx context.Context, identity Identity, itemID uuid.UUID, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1")
	}

	cart, _, err := s.ownedItem(ctx, identity, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart line")
	}
	if err := s.repo.TouchCart(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "touching cart")
	}
	return s.viewOf(ctx, cart)
}

// RemoveItem deletes one line from the identity's cart.
func (s *Service) RemoveItem(ctx context.Context, identity Identity, itemID uuid.UUID) (*View, error) {
	cart, _, err := s.ownedItem(ctx, identity, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart line")
	}
	return s.viewOf(ctx, cart)
}

// Clear removes every line from the identity's cart. Clearing a cart that
// was never created is a no-op.
func (s *Service) Clear(ctx context.Context, storeID uuid.UUID, identity Identity) error {
	if !identity.Valid() {
		return pkgerrors.New(pkgerrors.CodeInvalidIdentity, "exactly one of user or session identity is required")
	}
	cart, err := s.repo.FindByIdentity(ctx, storeID, identity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}

// ClearItems removes every line of the given cart. Used by checkout after
// the order is persisted.
func (s *Service) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return s.repo.ClearItems(ctx, cartID)
}

func (s *Service) ownedItem(ctx context.Context, identity Identity, itemID uuid.UUID) (*models.Cart, *models.CartItem, error) {
	if !identity.Valid() {
		return nil, nil, pkgerrors.New(pkgerrors.CodeInvalidIdentity, "exactly one of user or session identity is required")
	}

	item, err := s.repo.FindItem(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart item")
	}

	cart, err := s.repo.FindByID(ctx, item.CartID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if !identity.Owns(cart) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeAccessDenied, "cart belongs to a different identity")
	}
	return cart, item, nil
}

func (s *Service) viewOf(ctx context.Context, cart *models.Cart) (*View, error) {
	items, err := s.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return &View{
		ID:        cart.ID,
		StoreID:   cart.StoreID,
		Items:     items,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}

func checkStock(product *models.Product, requested int) error {
	if !product.TrackInventory {
		return nil
	}
	if product.InventoryQuantity < requested {
		return pkgerrors.New(
			pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("only %d of %q available", product.InventoryQuantity, product.Name),
		).WithDetails(map[string]any{
			"product_id": product.ID,
			"available":  product.InventoryQuantity,
			"requested":  requested,
		})
	}
	return nil
}

// PinnedLineTotal computes quantity x pinned unit price rounded to cents.
func PinnedLineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
