package commands

import (
	"context"
	"fmt"

	"medex/internal/core/domain/model/driver"
	"medex/internal/core/ports"
)

// ToggleDriverPresenceCommandHandler implements the online toggle:
//   - going online requests available and, only once that succeeds, starts
//     location reporting (which sends the current position first)
//   - going offline stops location reporting and then requests offline
//
// The profile's status is updated only after the backend accepted the change.
type ToggleDriverPresenceCommandHandler struct {
	drivers   ports.DriverAPI
	reporting LocationReporting
}

func NewToggleDriverPresenceCommandHandler(
	drivers ports.DriverAPI,
	reporting LocationReporting,
) ToggleDriverPresenceCommandHandler {
	return ToggleDriverPresenceCommandHandler{drivers: drivers, reporting: reporting}
}

// Handle returns the driver's status after the toggle. Without a profile it
// returns an empty status and does nothing.
func (h ToggleDriverPresenceCommandHandler) Handle(
	ctx context.Context,
	cmd ToggleDriverPresenceCommand,
) (driver.Status, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	profile := cmd.Profile()
	if profile == nil {
		return "", nil
	}

	if profile.IsOnline() {
		return h.goOffline(ctx, profile)
	}
	return h.goOnline(ctx, profile)
}

func (h ToggleDriverPresenceCommandHandler) goOnline(ctx context.Context, profile *driver.Driver) (driver.Status, error) {
	if err := h.drivers.UpdateDriverStatus(ctx, profile.ID(), driver.Available); err != nil {
		return profile.Status(), fmt.Errorf("go online: %w", err)
	}
	if err := profile.ApplyStatus(driver.Available); err != nil {
		return profile.Status(), err
	}

	if err := h.reporting.Start(ctx, profile.ID()); err != nil {
		return profile.Status(), fmt.Errorf("start location reporting: %w", err)
	}
	return profile.Status(), nil
}

func (h ToggleDriverPresenceCommandHandler) goOffline(ctx context.Context, profile *driver.Driver) (driver.Status, error) {
	h.reporting.Stop()

	if err := h.drivers.UpdateDriverStatus(ctx, profile.ID(), driver.Offline); err != nil {
		return profile.Status(), fmt.Errorf("go offline: %w", err)
	}
	if err := profile.ApplyStatus(driver.Offline); err != nil {
		return profile.Status(), err
	}
	return profile.Status(), nil
}
