package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/internal/stores"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/users"
	pkgauth "github.com/Amey8050/Dukaan-clone-sub000/pkg/auth"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/config"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service handles merchant onboarding and login.
type Service struct {
	tx          txRunner
	users       *users.Repository
	stores      *stores.Service
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Tx             txRunner
	UserRepo       *users.Repository
	StoreService   *stores.Service
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (*Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.StoreService == nil {
		return nil, fmt.Errorf("store service is required")
	}
	return &Service{
		tx:          params.Tx,
		users:       params.UserRepo,
		stores:      params.StoreService,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Register creates the account and its first store in one transaction and
// returns a logged-in session.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(req.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	var user *models.User
	var store *models.Store
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.users.WithTx(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking email")
		}

		created, err := userRepo.Create(ctx, &models.User{
			Email:        email,
			PasswordHash: passwordHash,
			Name:         name,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
		}
		user = created

		store, err = s.stores.WithTx(tx).CreateStore(ctx, stores.CreateStoreInput{
			OwnerUserID: user.ID,
			Name:        req.StoreName,
			Slug:        req.StoreSlug,
			Currency:    req.StoreCurrency,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.session(user, []models.Store{*store})
}

// Login verifies credentials and returns a session scoped to the caller's
// first store.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	owned, err := s.stores.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.session(user, owned)
}

func (s *Service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.ToLower(strings.TrimSpace(email))
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *Service) session(user *models.User, owned []models.Store) (*Session, error) {
	var activeStoreID *uuid.UUID
	if len(owned) > 0 {
		id := owned[0].ID
		activeStoreID = &id
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), user.ID, activeStoreID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting jwt")
	}

	storeDTOs := make([]stores.StoreDTO, 0, len(owned))
	for i := range owned {
		storeDTOs = append(storeDTOs, *stores.FromModel(&owned[i]))
	}
	return &Session{
		AccessToken: token,
		User:        users.FromModel(user),
		Stores:      storeDTOs,
	}, nil
}
