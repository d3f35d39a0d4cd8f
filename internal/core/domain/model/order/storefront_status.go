package order

import "strings"

// FromStorefrontStatus maps a WooCommerce order status onto the MedEx lifecycle.
// Unknown values fall back to Pending.
func FromStorefrontStatus(wooStatus string) Status {
	switch strings.ToLower(strings.TrimSpace(wooStatus)) {
	case "processing", "accepted":
		return Accepted
	case "driver-assigned", "driver_assigned":
		return DriverAssigned
	case "picked-up", "picked_up":
		return PickedUp
	case "out-for-delivery", "out_for_delivery":
		return OutForDelivery
	case "completed", "delivered":
		return Delivered
	case "cancelled", "failed":
		return Cancelled
	default:
		return Pending
	}
}
