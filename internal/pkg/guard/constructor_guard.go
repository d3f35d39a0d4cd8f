// Package guard detects zero-value construction of commands, queries and value objects.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created through their
// constructor. The zero value fails Validate.
//
// Example:
//
//	type SyncStorefrontOrderCommand struct {
//	    wooOrderID int64
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c SyncStorefrontOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrSyncStorefrontOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the owner was not built by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
