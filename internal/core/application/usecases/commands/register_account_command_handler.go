package commands

import (
	"context"
	"fmt"

	"medex/internal/core/ports"
)

// RegisterAccountCommandHandler sends the command to the registration endpoint
// for its kind. No session is needed and none is started.
type RegisterAccountCommandHandler struct {
	accounts ports.RegistrationAPI
}

func NewRegisterAccountCommandHandler(accounts ports.RegistrationAPI) RegisterAccountCommandHandler {
	return RegisterAccountCommandHandler{accounts: accounts}
}

func (h RegisterAccountCommandHandler) Handle(ctx context.Context, cmd RegisterAccountCommand) (ports.Enrollment, error) {
	if err := cmd.Validate(); err != nil {
		return ports.Enrollment{}, err
	}

	var (
		enrolled ports.Enrollment
		err      error
	)
	switch cmd.Kind() {
	case AccountVendor:
		enrolled, err = h.accounts.RegisterVendor(ctx, cmd.Vendor())
	case AccountDriver:
		enrolled, err = h.accounts.RegisterDriver(ctx, cmd.Driver())
	default:
		enrolled, err = h.accounts.RegisterUser(ctx, cmd.User())
	}
	if err != nil {
		return ports.Enrollment{}, fmt.Errorf("register %s %s: %w", cmd.Kind(), cmd.Email(), err)
	}
	return enrolled, nil
}
