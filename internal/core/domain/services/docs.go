// Package services holds domain logic that spans more than one model.
//
// The package includes:
//   - VendorPartitioner: splits a storefront order into per-vendor sync payloads
//   - DriverDispatcher: suggests the nearest available driver for an order
package services
