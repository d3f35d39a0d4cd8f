package storefront

import (
	"strconv"
	"strings"
)

// DefaultVendorID is used when neither any line item nor the customer yields a vendor.
const DefaultVendorID = "1"

// Address is a WooCommerce billing or shipping address.
type Address struct {
	FirstName string
	LastName  string
	Company   string
	Address1  string
	Address2  string
	City      string
	State     string
	Postcode  string
	Country   string
	Phone     string
}

// Formatted joins the non-empty parts the way WooCommerce prints a shipping
// address on a single line. It is empty when the address has no parts.
func (a Address) Formatted() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	region := strings.TrimSpace(a.State + " " + a.Postcode)

	parts := make([]string, 0, 7)
	for _, p := range []string{name, a.Company, a.Address1, a.Address2, a.City, region, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Short is "address_1, city", used when nothing better is available.
func (a Address) Short() string {
	return a.Address1 + ", " + a.City
}

// LineItem is one product line of a storefront order.
type LineItem struct {
	ID        int64
	ProductID int64
	SKU       string
	Name      string
	Quantity  int
	// Total is the line total after discounts, not the unit price.
	Total float64
}

// Order is a WooCommerce order as read from a webhook body or the REST API.
type Order struct {
	ID           int64
	Status       string
	CustomerID   int64
	Billing      Address
	Shipping     Address
	CustomerNote string
	LineItems    []LineItem
}

// CustomerName is the trimmed billing name, or "Customer" when blank.
func (o Order) CustomerName() string {
	name := strings.TrimSpace(o.Billing.FirstName + " " + o.Billing.LastName)
	if name == "" {
		return "Customer"
	}
	return name
}

// DeliveryAddress is the formatted shipping address, falling back to Short.
func (o Order) DeliveryAddress() string {
	if f := o.Shipping.Formatted(); f != "" {
		return f
	}
	return o.Shipping.Short()
}

// FallbackVendorID is the customer id when set, else DefaultVendorID.
func (o Order) FallbackVendorID() string {
	if o.CustomerID > 0 {
		return strconv.FormatInt(o.CustomerID, 10)
	}
	return DefaultVendorID
}

// ProductIDs lists the distinct product ids referenced by line items.
func (o Order) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(o.LineItems))
	ids := make([]int64, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		if item.ProductID <= 0 {
			continue
		}
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
