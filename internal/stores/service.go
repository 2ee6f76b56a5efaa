package stores

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
)

const maxSlugAttempts = 3

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Service owns tenant lifecycle: creation at registration time, lookup by
// slug for the storefront and by id for vendor surfaces.
type Service struct {
	repo *Repository
}

// NewService wires the store service.
func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &Service{repo: repo}, nil
}

// WithTx rebinds the service onto an open transaction.
func (s *Service) WithTx(tx *gorm.DB) *Service {
	return &Service{repo: s.repo.WithTx(tx)}
}

// CreateStore provisions a tenant. When the requested slug (or the one
// derived from the name) is taken, a short random suffix is appended and the
// insert retried.
func (s *Service) CreateStore(ctx context.Context, input CreateStoreInput) (*models.Store, error) {
	if input.OwnerUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	currency := input.Currency
	if currency == "" {
		currency = enums.CurrencyINR
	}
	if !currency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown currency %q", currency))
	}

	base := Slugify(input.Slug)
	if base == "" {
		base = Slugify(name)
	}
	if base == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store slug is required")
	}

	slug := base
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		store := &models.Store{
			OwnerUserID: input.OwnerUserID,
			Name:        name,
			Slug:        slug,
			Description: strings.TrimSpace(input.Description),
			Currency:    currency,
		}
		created, err := s.repo.Create(ctx, store)
		if err == nil {
			return created, nil
		}
		if !db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating store")
		}
		slug = fmt.Sprintf("%s-%s", base, uuid.NewString()[:6])
	}
	return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("slug %q is taken", base))
}

// GetByID loads a store or returns NOT_FOUND.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading store")
	}
	return store, nil
}

// GetBySlug resolves the public storefront handle.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Store, error) {
	store, err := s.repo.FindBySlug(ctx, Slugify(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading store")
	}
	return store, nil
}

// ListByOwner returns the caller's stores, oldest first.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	out, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing stores")
	}
	return out, nil
}

// UpdateStore applies a partial update after verifying ownership.
func (s *Service) UpdateStore(ctx context.Context, ownerID, storeID uuid.UUID, input UpdateStoreInput) (*models.Store, error) {
	store, err := s.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.OwnerUserID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store belongs to another owner")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
		}
		store.Name = name
	}
	if input.Description != nil {
		store.Description = strings.TrimSpace(*input.Description)
	}
	if input.Currency != nil {
		if !input.Currency.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown currency %q", *input.Currency))
		}
		store.Currency = *input.Currency
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating store")
	}
	return store, nil
}

// RequireOwnership loads the store and confirms the caller owns it.
func (s *Service) RequireOwnership(ctx context.Context, ownerID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.OwnerUserID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store belongs to another owner")
	}
	return store, nil
}

// Slugify normalizes a handle: lowercase, alphanumerics separated by single
// dashes, no leading or trailing dash.
func Slugify(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	return strings.Trim(slugStrip.ReplaceAllString(lowered, "-"), "-")
}
