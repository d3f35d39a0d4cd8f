// Package storefront models the WooCommerce side of the relay: storefront orders,
// their line items, product ownership, vendor store addresses, and the per-vendor
// sync payload handed to the MedEx backend.
//
// Vendor ids are kept as strings because WooCommerce reports them in several
// shapes (post author ids, meta values, customer ids) and the backend accepts
// them as strings.
package storefront
