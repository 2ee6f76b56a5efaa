package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/Amey8050/Dukaan-clone-sub000/internal/cart"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxStoreID   contextKey = "store_id"
	ctxSessionID contextKey = "session_id"
)

// UserIDFromContext returns the authenticated user's id, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	if v, ok := ctx.Value(ctxUserID).(uuid.UUID); ok && v != uuid.Nil {
		return v, true
	}
	return uuid.Nil, false
}

// StoreIDFromContext returns the active store carried by the access token.
func StoreIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	if v, ok := ctx.Value(ctxStoreID).(uuid.UUID); ok && v != uuid.Nil {
		return v, true
	}
	return uuid.Nil, false
}

// SessionIDFromContext returns the guest session token, if any.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// IdentityFromContext builds the cart identity for the caller: the user id
// when authenticated, otherwise the guest session token.
func IdentityFromContext(ctx context.Context) cart.Identity {
	if userID, ok := UserIDFromContext(ctx); ok {
		return cart.Identity{UserID: &userID}
	}
	if sessionID, ok := SessionIDFromContext(ctx); ok {
		return cart.Identity{SessionID: &sessionID}
	}
	return cart.Identity{}
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithStoreID injects the active store identifier into the context.
func WithStoreID(ctx context.Context, storeID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxStoreID, storeID)
}

// WithSessionID injects the guest session token into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}
