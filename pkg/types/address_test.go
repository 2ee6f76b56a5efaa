package types

import "testing"

func TestAddressIsZero(t *testing.T) {
	if !(Address{}).IsZero() {
		t.Fatal("empty address should be zero")
	}
	if (Address{Line1: "12 MG Road", City: "Bengaluru", PostalCode: "560001"}).IsZero() {
		t.Fatal("populated address should not be zero")
	}
	if !(Address{Name: "A", Country: "IN"}).IsZero() {
		t.Fatal("name and country alone do not make an address")
	}
}
