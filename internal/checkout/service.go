package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/internal/cart"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/orders"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/metrics"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/types"
)

const defaultMaxOrderAttempts = 3

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CartStore is the cart surface the orchestrator consumes.
type CartStore interface {
	FindCart(ctx context.Context, storeID uuid.UUID, identity cart.Identity) (*models.Cart, error)
	ListItems(ctx context.Context, cartID uuid.UUID) ([]cart.ItemView, error)
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}

// InventoryDecrementer applies the guarded post-order stock subtraction.
type InventoryDecrementer interface {
	DecrementInventory(ctx context.Context, productID uuid.UUID, qty int) (bool, error)
}

// Input is one checkout request.
type Input struct {
	StoreID         uuid.UUID
	Identity        cart.Identity
	ShippingAddress types.Address
	BillingAddress  types.Address
	PaymentMethod   *enums.PaymentMethod
	Notes           string
	Tax             decimal.Decimal
	ShippingCost    decimal.Decimal
	Discount        decimal.Decimal
	Currency        enums.Currency
}

// Service is the checkout orchestrator. The hard steps (validate, build,
// persist) run before anything is mutated or inside one transaction; the soft
// steps (inventory decrement, cart clear) are logged on failure but never
// fail a checkout whose order already exists.
type Service struct {
	tx          txRunner
	carts       CartStore
	builder     *Builder
	ordersRepo  *orders.Repository
	numbers     *orders.NumberGenerator
	inventory   InventoryDecrementer
	logg        *logger.Logger
	metrics     *metrics.CheckoutMetrics
	maxAttempts int
}

// NewService wires the orchestrator. metrics may be nil (recorded as no-ops).
func NewService(
	tx txRunner,
	carts CartStore,
	builder *Builder,
	ordersRepo *orders.Repository,
	inventory InventoryDecrementer,
	logg *logger.Logger,
	checkoutMetrics *metrics.CheckoutMetrics,
	maxAttempts int,
) (*Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if builder == nil {
		return nil, fmt.Errorf("order builder required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory decrementer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxOrderAttempts
	}
	return &Service{
		tx:          tx,
		carts:       carts,
		builder:     builder,
		ordersRepo:  ordersRepo,
		numbers:     orders.NewNumberGenerator(ordersRepo.NumberExists),
		inventory:   inventory,
		logg:        logg,
		metrics:     checkoutMetrics,
		maxAttempts: maxAttempts,
	}, nil
}

// Execute runs one checkout to completion:
// ValidatingCart -> BuildingOrder -> PersistingOrder -> DecrementingInventory
// -> ClearingCart -> Done.
func (s *Service) Execute(ctx context.Context, input Input) (*models.Order, error) {
	order, err := s.execute(ctx, input)
	if err != nil {
		s.metrics.IncFailure(string(pkgerrors.CodeOf(err)))
		return nil, err
	}
	method := "unspecified"
	if order.PaymentMethod != nil {
		method = order.PaymentMethod.String()
	}
	s.metrics.IncOrderCreated(method)
	return order, nil
}

func (s *Service) execute(ctx context.Context, input Input) (*models.Order, error) {
	// ValidatingCart
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if input.ShippingAddress.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeMissingShippingAddress, "shipping address is required")
	}

	cartRecord, err := s.carts.FindCart(ctx, input.StoreID, input.Identity)
	if err != nil {
		return nil, err
	}
	items, err := s.carts.ListItems(ctx, cartRecord.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	// BuildingOrder: nothing has been written yet, so builder failures abort
	// the checkout with no side effects.
	result, err := s.builder.Build(ctx, BuildInput{
		StoreID:         input.StoreID,
		UserID:          input.Identity.UserID,
		Items:           cartLines(cartRecord.ID, items),
		Tax:             input.Tax,
		ShippingCost:    input.ShippingCost,
		Discount:        input.Discount,
		Currency:        input.Currency,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, err
	}

	// PersistingOrder
	order, err := s.persistOrder(ctx, result.Order)
	if err != nil {
		return nil, err
	}

	// DecrementingInventory + ClearingCart are soft: the order is the source
	// of truth, failures here are logged and reconciled out of band.
	if softErr := s.finishSoftSteps(ctx, cartRecord.ID, result.Decrements); softErr != nil {
		fields := map[string]any{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"cart_id":      cartRecord.ID,
		}
		s.logg.Error(s.logg.WithFields(ctx, fields), "checkout post-persist steps failed", softErr)
	}
	return order, nil
}

// persistOrder creates the order header and all its items inside one
// transaction. An order-number unique violation is treated as a collision
// and the whole step is retried with a fresh number.
func (s *Service) persistOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	items := order.Items
	order.Items = nil

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		number, err := s.numbers.Next(ctx)
		if err != nil {
			return nil, err
		}
		order.OrderNumber = number

		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.ordersRepo.WithTx(tx)
			if _, err := repo.Create(ctx, order); err != nil {
				return err
			}
			for i := range items {
				items[i].OrderID = order.ID
			}
			return repo.CreateItems(ctx, items)
		})
		if err == nil {
			order.Items = items
			return order, nil
		}
		if db.IsUniqueViolation(err, "") {
			s.metrics.IncOrderNumberRetry()
			s.logg.Warn(s.logg.WithField(ctx, "order_number", number), "order number collided, retrying")
			continue
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeOrderCreationFailed, err, "persisting order")
	}
	return nil, pkgerrors.New(pkgerrors.CodeOrderCreationFailed, "exhausted order creation attempts")
}

func (s *Service) finishSoftSteps(ctx context.Context, cartID uuid.UUID, decrements []InventoryDecrement) error {
	var softErr error
	for _, dec := range decrements {
		ok, err := s.inventory.DecrementInventory(ctx, dec.ProductID, dec.Quantity)
		if err != nil {
			softErr = multierr.Append(softErr, pkgerrors.Wrap(
				pkgerrors.CodeInventoryUpdateFailed, err,
				fmt.Sprintf("decrementing product %s", dec.ProductID),
			))
			continue
		}
		if !ok {
			// a concurrent checkout drained the stock between validation and
			// decrement; the guarded update refused to go negative
			s.metrics.IncInventoryMiss()
			softErr = multierr.Append(softErr, pkgerrors.New(
				pkgerrors.CodeInventoryUpdateFailed,
				fmt.Sprintf("insufficient stock to decrement product %s by %d", dec.ProductID, dec.Quantity),
			))
		}
	}

	if err := s.carts.ClearItems(ctx, cartID); err != nil {
		softErr = multierr.Append(softErr, fmt.Errorf("clearing cart: %w", err))
	}
	return softErr
}

func cartLines(cartID uuid.UUID, views []cart.ItemView) []models.CartItem {
	lines := make([]models.CartItem, 0, len(views))
	for _, v := range views {
		lines = append(lines, models.CartItem{
			ID:        v.ID,
			CartID:    cartID,
			ProductID: v.ProductID,
			VariantID: v.VariantID,
			Quantity:  v.Quantity,
			UnitPrice: v.UnitPrice,
		})
	}
	return lines
}
