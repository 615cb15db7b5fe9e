package dialer

import "errors"

// Error definitions for the dialer package.
var (
	ErrDriverNotFound    = errors.New("dialer not found in registry")
	ErrAlreadyRegistered = errors.New("dialer is already registered in the registry")
	ErrInvalidTemplate   = errors.New("AT command template must contain exactly one %s verb")
	ErrUnknownDriver     = errors.New("unknown dialer driver")
	ErrDialFailed        = errors.New("dial failed")
)
