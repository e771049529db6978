package hue

import (
	"errors"
	"fmt"
)

// ErrVendorUnavailable is returned for any failed call to the vendor cloud, be it a
// network error, a non 2xx response or a body that could not be decoded.
var ErrVendorUnavailable = errors.New("vendor unavailable")

type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrVendorUnavailable
}

func unavailable(endpoint string, err error) error {
	return fmt.Errorf("%w: %s: %s", ErrVendorUnavailable, endpoint, err.Error())
}
