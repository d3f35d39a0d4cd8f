// Package errs provides the typed errors shared by the MedEx relay and consoles.
//
// Every error type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound) with a struct
// carrying the offending parameter. Constructors come in two flavours, with and
// without a cause, and Unwrap always yields the sentinel so callers can branch
// with errors.Is:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return ctx.JSON(http.StatusNotFound, ...)
//	}
package errs
