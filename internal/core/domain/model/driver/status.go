package driver

import (
	"fmt"

	"medex/internal/pkg/errs"
)

// Status is a driver's availability as the backend records it.
type Status string

const (
	Offline   Status = "offline"
	Available Status = "available"
	Busy      Status = "busy"
	OnBreak   Status = "on_break"
)

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

func (s Status) Validate() error {
	switch s {
	case Offline, Available, Busy, OnBreak:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsOnline is true for every status except offline.
func (s Status) IsOnline() bool {
	return s != Offline
}
