package queries

import (
	"context"
	"errors"
	"fmt"

	"medex/internal/core/domain/model/vendor"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrGetVendorQueryIsNotConstructed = errors.New(
	"GetVendorQuery must be created via NewGetVendorQuery constructor",
)

// GetVendorQuery loads one vendor by id, e.g. the one a driver works for.
type GetVendorQuery struct {
	vendorID int64

	guard guard.ConstructorGuard
}

func NewGetVendorQuery(vendorID int64) (GetVendorQuery, error) {
	if vendorID <= 0 {
		return GetVendorQuery{}, errs.NewValueIsRequiredError("vendor id")
	}
	return GetVendorQuery{vendorID: vendorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetVendorQuery) Validate() error {
	return q.guard.Validate(ErrGetVendorQueryIsNotConstructed)
}

func (q GetVendorQuery) VendorID() int64 {
	return q.vendorID
}

type GetVendorQueryHandler struct {
	vendors ports.VendorAPI
}

func NewGetVendorQueryHandler(vendors ports.VendorAPI) GetVendorQueryHandler {
	return GetVendorQueryHandler{vendors: vendors}
}

func (h GetVendorQueryHandler) Handle(ctx context.Context, query GetVendorQuery) (vendor.Vendor, error) {
	if err := query.Validate(); err != nil {
		return vendor.Vendor{}, err
	}

	v, err := h.vendors.GetVendor(ctx, query.VendorID())
	if err != nil {
		return vendor.Vendor{}, fmt.Errorf("get vendor %d: %w", query.VendorID(), err)
	}
	return v, nil
}
