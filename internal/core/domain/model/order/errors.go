package order

import "errors"

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder")
	ErrTransitionNotAllowed  = errors.New("status transition is not allowed")
	ErrNoDriverAction        = errors.New("no driver action is available for this status")
)
