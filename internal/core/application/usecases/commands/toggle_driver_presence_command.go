package commands

import (
	"errors"

	"medex/internal/core/domain/model/driver"
	"medex/internal/pkg/guard"
)

var ErrToggleDriverPresenceCommandIsNotConstructed = errors.New(
	"ToggleDriverPresenceCommand must be created via NewToggleDriverPresenceCommand constructor",
)

// ToggleDriverPresenceCommand flips a driver between online and offline.
// A nil profile is accepted and makes the command a no-op.
type ToggleDriverPresenceCommand struct {
	profile *driver.Driver

	guard guard.ConstructorGuard
}

func NewToggleDriverPresenceCommand(profile *driver.Driver) ToggleDriverPresenceCommand {
	return ToggleDriverPresenceCommand{profile: profile, guard: guard.NewConstructorGuard()}
}

func (c ToggleDriverPresenceCommand) Validate() error {
	return c.guard.Validate(ErrToggleDriverPresenceCommandIsNotConstructed)
}

// Profile returns the loaded driver, or nil.
func (c ToggleDriverPresenceCommand) Profile() *driver.Driver {
	return c.profile
}
