package types

import "strings"

// Address is stored on orders as a JSON snapshot of where to ship or bill.
type Address struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// IsZero reports whether no meaningful field is set.
func (a Address) IsZero() bool {
	return strings.TrimSpace(a.Line1) == "" &&
		strings.TrimSpace(a.City) == "" &&
		strings.TrimSpace(a.PostalCode) == ""
}
