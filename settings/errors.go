package settings

import "errors"

var (
	// ErrNilLoader indicates LoadSettings was called without a loader.
	ErrNilLoader = errors.New("settings: loader must not be nil")
)
