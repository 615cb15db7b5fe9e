package speeddial

import "fmt"

const (
	// DefaultMaxDirectories is the number of directories created when none is configured.
	DefaultMaxDirectories = 5

	// DefaultTotalCapacity is the number of entries shared by all directories.
	DefaultTotalCapacity = 1000

	// DirectoryNameFormat names the generated directories ("Directory 1".."Directory N").
	DirectoryNameFormat = "Directory %d"
)

// RemainderPolicy decides what happens to the capacity left over when the
// total capacity does not divide evenly between directories.
type RemainderPolicy string

const (
	// RemainderDiscard leaves the remainder unreachable.
	RemainderDiscard RemainderPolicy = "discard"

	// RemainderSpread hands the remainder out one slot at a time to the first directories.
	RemainderSpread RemainderPolicy = "spread"
)

// NumberPolicy bounds the length of stored phone numbers.
// A zero MaxLength means numbers are unbounded.
type NumberPolicy struct {
	MaxLength int
	Truncate  bool
}

type options struct {
	names          []string
	remainder      RemainderPolicy
	number         NumberPolicy
	maxDirectories int
	totalCapacity  int
	maxCodeLength  int
}

// Option configures a Registry.
type Option func(*options)

// WithMaxDirectories sets how many directories Initialize creates.
func WithMaxDirectories(n int) Option {
	return func(o *options) {
		o.maxDirectories = n
	}
}

// WithTotalCapacity sets the capacity shared between all directories.
func WithTotalCapacity(n int) Option {
	return func(o *options) {
		o.totalCapacity = n
	}
}

// WithDirectoryNames replaces the generated directory names. The number of
// names becomes the directory count.
func WithDirectoryNames(names ...string) Option {
	return func(o *options) {
		o.names = append([]string(nil), names...)
	}
}

// WithRemainderPolicy sets the remainder policy.
func WithRemainderPolicy(p RemainderPolicy) Option {
	return func(o *options) {
		o.remainder = p
	}
}

// WithNumberPolicy sets the phone number length policy.
func WithNumberPolicy(p NumberPolicy) Option {
	return func(o *options) {
		o.number = p
	}
}

// WithMaxCodeLength rejects codes longer than n bytes. Zero disables the check.
func WithMaxCodeLength(n int) Option {
	return func(o *options) {
		o.maxCodeLength = n
	}
}

func defaultOptions() options {
	return options{
		maxDirectories: DefaultMaxDirectories,
		totalCapacity:  DefaultTotalCapacity,
		remainder:      RemainderDiscard,
	}
}

// validate normalizes the options and resolves the directory names.
func (o *options) validate() error {
	if len(o.names) > 0 {
		o.maxDirectories = len(o.names)
	}

	if o.maxDirectories <= 0 {
		return fmt.Errorf("%w: max directories must be positive, got %d", ErrInvalidConfig, o.maxDirectories)
	}
	if o.totalCapacity < 0 {
		return fmt.Errorf("%w: total capacity must not be negative, got %d", ErrInvalidConfig, o.totalCapacity)
	}
	if o.maxCodeLength < 0 || o.number.MaxLength < 0 {
		return fmt.Errorf("%w: length limits must not be negative", ErrInvalidConfig)
	}

	switch o.remainder {
	case "":
		o.remainder = RemainderDiscard
	case RemainderDiscard, RemainderSpread:
	default:
		return fmt.Errorf("%w: unknown remainder policy %q", ErrInvalidConfig, o.remainder)
	}

	if len(o.names) == 0 {
		o.names = make([]string, o.maxDirectories)
		for i := range o.names {
			o.names[i] = fmt.Sprintf(DirectoryNameFormat, i+1)
		}
		return nil
	}

	seen := make(map[string]bool, len(o.names))
	for _, name := range o.names {
		if name == "" {
			return fmt.Errorf("%w: empty directory name", ErrInvalidConfig)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate directory name %q", ErrInvalidConfig, name)
		}
		seen[name] = true
	}

	return nil
}

// capacities returns the capacity of each directory in creation order.
func (o *options) capacities() []int {
	n := o.maxDirectories
	base := o.totalCapacity / n
	remainder := o.totalCapacity % n

	caps := make([]int, n)
	for i := range caps {
		caps[i] = base
		if o.remainder == RemainderSpread && i < remainder {
			caps[i]++
		}
	}

	return caps
}
