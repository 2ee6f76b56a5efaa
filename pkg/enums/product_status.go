package enums

import "fmt"

// ProductStatus tracks listing visibility. Only active products can be
// purchased.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

var validProductStatuses = []ProductStatus{
	ProductStatusActive,
	ProductStatusDraft,
	ProductStatusArchived,
}

// String implements fmt.Stringer.
func (p ProductStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductStatus.
func (p ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}
