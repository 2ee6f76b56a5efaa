package orders

import "github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"

// List wraps one page of orders plus the next page cursor.
type List struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
