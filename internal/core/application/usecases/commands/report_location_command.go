package commands

import (
	"context"
	"errors"
	"fmt"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand sends one position for a driver.
type ReportLocationCommand struct {
	driverID int64
	point    kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewReportLocationCommand(driverID int64, point kernel.GeoPoint) (ReportLocationCommand, error) {
	var idErr error
	if driverID <= 0 {
		idErr = errs.NewValueIsRequiredError("driver id")
	}
	if err := errors.Join(idErr, point.Validate()); err != nil {
		return ReportLocationCommand{}, err
	}
	return ReportLocationCommand{driverID: driverID, point: point, guard: guard.NewConstructorGuard()}, nil
}

func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

func (c ReportLocationCommand) DriverID() int64 {
	return c.driverID
}

func (c ReportLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

// ReportLocationCommandHandler calls POST /drivers/{id}/location once per command.
type ReportLocationCommandHandler struct {
	drivers ports.DriverAPI
}

func NewReportLocationCommandHandler(drivers ports.DriverAPI) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{drivers: drivers}
}

func (h ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.drivers.ReportLocation(ctx, cmd.DriverID(), cmd.Point()); err != nil {
		return fmt.Errorf("report location of driver %d: %w", cmd.DriverID(), err)
	}
	return nil
}
