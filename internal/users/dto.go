package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
)

// UserDTO is the account shape returned by auth endpoints. The password hash
// never leaves the persistence layer.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModel maps the persisted user into a DTO.
func FromModel(m *models.User) *UserDTO {
	if m == nil {
		return nil
	}
	return &UserDTO{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}
