package woocommerce

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"medex/internal/core/domain/model/storefront"
	"medex/internal/pkg/errs"
)

// VendorMetaKey is the product meta key marketplace plugins use for the seller id.
const VendorMetaKey = "_vendor_id"

// money accepts WooCommerce amounts, which the REST API writes as strings.
type money float64

func (m *money) UnmarshalJSON(b []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(b), `"`))
	if raw == "" || raw == "null" {
		*m = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("amount %s: %w", b, err)
	}
	*m = money(v)
	return nil
}

type addressDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

func (a addressDTO) toDomain() storefront.Address {
	return storefront.Address{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.State,
		Postcode:  a.Postcode,
		Country:   a.Country,
		Phone:     a.Phone,
	}
}

type lineItemDTO struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Total     money  `json:"total"`
}

type orderDTO struct {
	ID           int64         `json:"id"`
	Status       string        `json:"status"`
	CustomerID   int64         `json:"customer_id"`
	Billing      addressDTO    `json:"billing"`
	Shipping     addressDTO    `json:"shipping"`
	CustomerNote string        `json:"customer_note"`
	LineItems    []lineItemDTO `json:"line_items"`
}

func (d orderDTO) toDomain() storefront.Order {
	items := make([]storefront.LineItem, 0, len(d.LineItems))
	for _, li := range d.LineItems {
		items = append(items, storefront.LineItem{
			ID:        li.ID,
			ProductID: li.ProductID,
			SKU:       li.SKU,
			Name:      li.Name,
			Quantity:  li.Quantity,
			Total:     float64(li.Total),
		})
	}
	return storefront.Order{
		ID:           d.ID,
		Status:       d.Status,
		CustomerID:   d.CustomerID,
		Billing:      d.Billing.toDomain(),
		Shipping:     d.Shipping.toDomain(),
		CustomerNote: d.CustomerNote,
		LineItems:    items,
	}
}

// DecodeOrder reads a WooCommerce order JSON document, as sent in webhook bodies.
func DecodeOrder(body []byte) (storefront.Order, error) {
	var dto orderDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return storefront.Order{}, errs.NewValueIsInvalidErrorWithCause("order body", err)
	}
	if dto.ID <= 0 {
		return storefront.Order{}, errs.NewValueIsRequiredError("order id")
	}
	return dto.toDomain(), nil
}

type metaDTO struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type productDTO struct {
	ID       int64     `json:"id"`
	MetaData []metaDTO `json:"meta_data"`
}

// vendorMeta returns the _vendor_id value as a string, whether stored as text or number.
func (p productDTO) vendorMeta() string {
	for _, m := range p.MetaData {
		if m.Key != VendorMetaKey {
			continue
		}
		var s string
		if err := json.Unmarshal(m.Value, &s); err == nil {
			return strings.TrimSpace(s)
		}
		var n json.Number
		if err := json.Unmarshal(m.Value, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

type postDTO struct {
	Author int64 `json:"author"`
}

type storeDTO struct {
	ID      int64 `json:"id"`
	Address struct {
		Street1 string `json:"street_1"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zip     string `json:"zip"`
	} `json:"address"`
}
