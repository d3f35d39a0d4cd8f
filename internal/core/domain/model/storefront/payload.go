package storefront

// SyncItem is one line of a vendor-scoped sync payload. Price carries the line total.
type SyncItem struct {
	SKU      string
	Name     string
	Quantity int
	Price    float64
}

// SyncPayload is the vendor-scoped view of a storefront order sent to the MedEx
// backend. It is built fresh for every call and never stored.
type SyncPayload struct {
	WooOrderID      string
	WooVendorID     string
	Status          string
	Total           float64
	CustomerName    string
	CustomerPhone   string
	PickupAddress   string
	DeliveryAddress string
	Items           []SyncItem
	Notes           string
}
