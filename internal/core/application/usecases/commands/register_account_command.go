package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var (
	ErrRegisterAccountCommandIsNotConstructed = errors.New(
		"RegisterAccountCommand must be created via NewRegisterUserCommand, NewRegisterVendorCommand or NewRegisterDriverCommand",
	)
	ErrEmailIsInvalid       = errors.New("email is invalid")
	ErrVehicleTypeIsInvalid = errors.New("vehicle type must be bike, scooter, car or van")
	ErrRoleIsInvalid        = errors.New("role must be user, vendor, driver or admin")
)

// AccountKind says which registration endpoint a RegisterAccountCommand goes to.
type AccountKind string

const (
	AccountUser   AccountKind = "user"
	AccountVendor AccountKind = "vendor"
	AccountDriver AccountKind = "driver"
)

var (
	vehicleTypes = []string{"bike", "scooter", "car", "van"}
	accountRoles = []string{"user", "vendor", "driver", "admin"}
)

// RegisterAccountCommand creates a MedEx account. Vendor and driver
// registrations also create the vendor or driver behind the account.
type RegisterAccountCommand struct { //nolint:recvcheck //using for validation
	kind   AccountKind
	user   ports.NewUser
	vendor ports.NewVendor
	driver ports.NewDriver

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand defaults an empty role to "user".
func NewRegisterUserCommand(in ports.NewUser) (RegisterAccountCommand, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = "user"
	}

	var roleErr error
	if !slices.Contains(accountRoles, role) {
		roleErr = fmt.Errorf("%w: %q", ErrRoleIsInvalid, in.Role)
	}

	creds, credsErr := credentials(in.Credentials)
	fullName, nameErr := required("full name", in.FullName)
	phone, phoneErr := required("phone", in.Phone)
	if err := errors.Join(credsErr, nameErr, phoneErr, roleErr); err != nil {
		return RegisterAccountCommand{}, err
	}

	return RegisterAccountCommand{
		kind: AccountUser,
		user: ports.NewUser{
			Credentials: creds,
			FullName:    fullName,
			Phone:       phone,
			Role:        role,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func NewRegisterVendorCommand(in ports.NewVendor) (RegisterAccountCommand, error) {
	creds, credsErr := credentials(in.Credentials)
	business, businessErr := required("business name", in.BusinessName)
	phone, phoneErr := required("phone", in.Phone)
	address, addressErr := required("address", in.Address)
	if err := errors.Join(credsErr, businessErr, phoneErr, addressErr); err != nil {
		return RegisterAccountCommand{}, err
	}

	return RegisterAccountCommand{
		kind: AccountVendor,
		vendor: ports.NewVendor{
			Credentials:  creds,
			BusinessName: business,
			Phone:        phone,
			Address:      address,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func NewRegisterDriverCommand(in ports.NewDriver) (RegisterAccountCommand, error) {
	var vendorErr error
	if in.VendorID <= 0 {
		vendorErr = ErrVendorIsRequired
	}

	vehicle := strings.ToLower(strings.TrimSpace(in.VehicleType))
	var vehicleErr error
	if !slices.Contains(vehicleTypes, vehicle) {
		vehicleErr = fmt.Errorf("%w: %q", ErrVehicleTypeIsInvalid, in.VehicleType)
	}

	creds, credsErr := credentials(in.Credentials)
	fullName, nameErr := required("full name", in.FullName)
	phone, phoneErr := required("phone", in.Phone)
	plate, plateErr := required("vehicle number", in.VehicleNumber)
	license, licenseErr := required("license number", in.LicenseNumber)
	if err := errors.Join(vendorErr, credsErr, nameErr, phoneErr, vehicleErr, plateErr, licenseErr); err != nil {
		return RegisterAccountCommand{}, err
	}

	return RegisterAccountCommand{
		kind: AccountDriver,
		driver: ports.NewDriver{
			Credentials:   creds,
			VendorID:      in.VendorID,
			FullName:      fullName,
			Phone:         phone,
			VehicleType:   vehicle,
			VehicleNumber: plate,
			LicenseNumber: license,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterAccountCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAccountCommandIsNotConstructed)
}

func (c RegisterAccountCommand) Kind() AccountKind {
	return c.kind
}

// Email is the sign-in address of the new account.
func (c RegisterAccountCommand) Email() string {
	switch c.kind {
	case AccountVendor:
		return c.vendor.Email
	case AccountDriver:
		return c.driver.Email
	default:
		return c.user.Email
	}
}

func (c RegisterAccountCommand) User() ports.NewUser {
	return c.user
}

func (c RegisterAccountCommand) Vendor() ports.NewVendor {
	return c.vendor
}

func (c RegisterAccountCommand) Driver() ports.NewDriver {
	return c.driver
}

func credentials(in ports.Credentials) (ports.Credentials, error) {
	email := strings.TrimSpace(in.Email)
	var emailErr error
	switch {
	case email == "":
		emailErr = errs.NewValueIsRequiredError("email")
	case !strings.Contains(email, "@"):
		emailErr = fmt.Errorf("%w: %q", ErrEmailIsInvalid, email)
	}

	var passwordErr error
	if in.Password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}

	return ports.Credentials{Email: email, Password: in.Password}, errors.Join(emailErr, passwordErr)
}

func required(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.NewValueIsRequiredError(name)
	}
	return value, nil
}
