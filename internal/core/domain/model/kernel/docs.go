// Package kernel holds value objects shared by every MedEx domain package.
//
// The package includes:
//   - UUID: identifiers for relay-owned records
//   - GeoPoint: a validated latitude/longitude pair with haversine distance
//
// Both are immutable and safe for concurrent use.
package kernel
