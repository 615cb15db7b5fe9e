package dialer

import (
	"context"
)

// Driver is a string identifier for a dialing driver.
type Driver string

const (
	DriverLog  Driver = "log"
	DriverAT   Driver = "at"
	DriverExec Driver = "exec"
)

// Dialer acts on a phone number looked up from the registry. The registry
// never dials itself.
type Dialer interface {
	// Driver returns the dialer identifier.
	Driver() Driver

	// Dial places a call to number.
	Dial(ctx context.Context, number string) error

	// Close cleans up resources.
	Close() error
}
