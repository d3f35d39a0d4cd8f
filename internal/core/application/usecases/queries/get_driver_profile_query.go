package queries

import (
	"context"
	"errors"
	"fmt"

	"medex/internal/core/domain/model/driver"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrGetDriverProfileQueryIsNotConstructed = errors.New(
	"GetDriverProfileQuery must be created via NewGetDriverProfileQuery constructor",
)

// GetDriverProfileQuery finds the driver record of the signed-in user.
type GetDriverProfileQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewGetDriverProfileQuery(userID int64) (GetDriverProfileQuery, error) {
	if userID <= 0 {
		return GetDriverProfileQuery{}, errs.NewValueIsRequiredError("user id")
	}
	return GetDriverProfileQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverProfileQueryIsNotConstructed)
}

func (q GetDriverProfileQuery) UserID() int64 {
	return q.userID
}

// GetDriverProfileQueryHandler lists drivers and picks the one whose user_id matches.
type GetDriverProfileQueryHandler struct {
	drivers ports.DriverAPI
}

func NewGetDriverProfileQueryHandler(drivers ports.DriverAPI) GetDriverProfileQueryHandler {
	return GetDriverProfileQueryHandler{drivers: drivers}
}

// Handle returns errs.ErrObjectNotFound when the user has no driver record.
func (h GetDriverProfileQueryHandler) Handle(ctx context.Context, query GetDriverProfileQuery) (*driver.Driver, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers, err := h.drivers.ListDrivers(ctx, ports.DriverFilter{})
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}

	profile := driver.FindByUser(drivers, query.UserID())
	if profile == nil {
		return nil, errs.NewObjectNotFoundError("driver for user", query.UserID())
	}
	return profile, nil
}
