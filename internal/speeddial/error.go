package speeddial

import "errors"

// Error definitions for the speeddial package.
var (
	ErrNotInitialized    = errors.New("registry is not initialized")
	ErrDirectoryNotFound = errors.New("directory not found in registry")
	ErrDirectoryFull     = errors.New("directory is full")
	ErrDuplicateCode     = errors.New("speed dial code already exists in directory")
	ErrCodeNotFound      = errors.New("speed dial code not found in directory")
	ErrInvalidCode       = errors.New("invalid speed dial code")
	ErrInvalidNumber     = errors.New("invalid phone number")
	ErrInvalidName       = errors.New("invalid contact name")
	ErrInvalidConfig     = errors.New("invalid registry configuration")
)
