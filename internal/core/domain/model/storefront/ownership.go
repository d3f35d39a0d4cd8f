package storefront

import (
	"strconv"
	"strings"
)

// ProductOwner describes who sells a product: an explicit _vendor_id meta value
// and the product post author.
type ProductOwner struct {
	ProductID  int64
	VendorMeta string
	AuthorID   int64
}

// VendorID prefers the meta value and falls back to the author.
// It reports false when neither is set.
func (p ProductOwner) VendorID() (string, bool) {
	if v := strings.TrimSpace(p.VendorMeta); v != "" && v != "0" {
		return v, true
	}
	if p.AuthorID > 0 {
		return strconv.FormatInt(p.AuthorID, 10), true
	}
	return "", false
}

// StoreAddress is a marketplace vendor's structured store address.
type StoreAddress struct {
	Street1 string
	City    string
	State   string
	Zip     string
}

// IsZero reports whether no part of the address is set.
func (s StoreAddress) IsZero() bool {
	return strings.TrimSpace(s.Street1+s.City+s.State+s.Zip) == ""
}

// Formatted renders "street_1, city, state zip".
func (s StoreAddress) Formatted() string {
	return strings.TrimSpace(s.Street1 + ", " + s.City + ", " + s.State + " " + s.Zip)
}
