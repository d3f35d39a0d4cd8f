// Package order models MedEx orders on the client side.
//
// The package includes:
//   - Status: the seven lifecycle states and the one transition table every
//     check consults
//   - Action: the labelled driver and vendor steps that request a transition
//   - Order: a read model restored from backend snapshots; it never changes
//     status locally
//   - Progress: the six-step indicator shown by the public tracking view
//
// Key rules:
//   - transitions are monotonic along pending -> ... -> delivered
//   - cancelled is reachable from any non-terminal state
//   - a driver has exactly one action in driver_assigned, picked_up and
//     out_for_delivery, and none otherwise
package order
