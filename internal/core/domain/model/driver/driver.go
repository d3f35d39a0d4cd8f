// Package driver models the delivery driver profile the driver console works with.
package driver

import (
	"errors"
	"strings"
	"time"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrDriverIsNotConstructed = errors.New("Driver must be created via RestoreDriver")

// Snapshot carries the backend representation of a driver into RestoreDriver.
type Snapshot struct {
	ID             int64
	UserID         int64
	VendorID       int64
	FullName       string
	Phone          string
	Status         string
	LastLocation   *kernel.GeoPoint
	LastLocationAt *time.Time
}

// Driver is the driver profile loaded for the signed-in user. Its status only
// changes after the backend has accepted the change.
type Driver struct {
	id             int64
	userID         int64
	vendorID       int64
	fullName       string
	phone          string
	status         Status
	lastLocation   *kernel.GeoPoint
	lastLocationAt *time.Time

	guard guard.ConstructorGuard
}

func RestoreDriver(s Snapshot) (*Driver, error) {
	status, statusErr := ParseStatus(s.Status)

	var idErr error
	if s.ID <= 0 {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if err := errors.Join(idErr, statusErr); err != nil {
		return nil, err
	}

	return &Driver{
		id:             s.ID,
		userID:         s.UserID,
		vendorID:       s.VendorID,
		fullName:       strings.TrimSpace(s.FullName),
		phone:          s.Phone,
		status:         status,
		lastLocation:   s.LastLocation,
		lastLocationAt: s.LastLocationAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (d *Driver) Validate() error {
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() int64        { return d.id }
func (d *Driver) UserID() int64    { return d.userID }
func (d *Driver) VendorID() int64  { return d.vendorID }
func (d *Driver) FullName() string { return d.fullName }
func (d *Driver) Phone() string    { return d.phone }
func (d *Driver) Status() Status   { return d.status }

// IsOnline reports whether the driver is anything but offline.
func (d *Driver) IsOnline() bool {
	return d.status.IsOnline()
}

// LastLocation returns the last position the backend knows, or nil.
func (d *Driver) LastLocation() (*kernel.GeoPoint, *time.Time) {
	return d.lastLocation, d.lastLocationAt
}

// ApplyStatus records a status the backend has confirmed.
func (d *Driver) ApplyStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d.status = s
	return nil
}

// ApplyLocation records a position the backend has accepted.
func (d *Driver) ApplyLocation(p kernel.GeoPoint, at time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.lastLocation = &p
	d.lastLocationAt = &at
	return nil
}

// FindByUser returns the driver whose user id matches, or nil.
func FindByUser(drivers []*Driver, userID int64) *Driver {
	for _, d := range drivers {
		if d.userID == userID {
			return d
		}
	}
	return nil
}

// CountOnline counts drivers that are not offline.
func CountOnline(drivers []*Driver) int {
	n := 0
	for _, d := range drivers {
		if d.IsOnline() {
			n++
		}
	}
	return n
}
