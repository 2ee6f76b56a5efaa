package auth

import (
	"github.com/Amey8050/Dukaan-clone-sub000/internal/stores"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/users"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
)

// RegisterRequest onboards a merchant: one account plus their first store.
type RegisterRequest struct {
	Name          string         `json:"name" validate:"required"`
	Email         string         `json:"email" validate:"required,email"`
	Password      string         `json:"password" validate:"required,min=8"`
	StoreName     string         `json:"store_name" validate:"required"`
	StoreSlug     string         `json:"store_slug,omitempty"`
	StoreCurrency enums.Currency `json:"store_currency,omitempty"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the token plus account state returned by register and login.
type Session struct {
	AccessToken string            `json:"access_token"`
	User        *users.UserDTO    `json:"user"`
	Stores      []stores.StoreDTO `json:"stores"`
}
