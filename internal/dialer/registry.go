package dialer

import (
	"errors"
	"sync"
)

// Registry manages dialer instances.
type Registry struct {
	dialers map[Driver]Dialer
	mu      sync.RWMutex
}

// NewRegistry creates a new dialer registry.
func NewRegistry() *Registry {
	return &Registry{
		dialers: make(map[Driver]Dialer),
	}
}

// Register adds a dialer to the registry.
func (r *Registry) Register(d Dialer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.dialers[d.Driver()]; ok {
		return ErrAlreadyRegistered
	}

	r.dialers[d.Driver()] = d

	return nil
}

// Replace registers d, closing the dialer it replaces, if any.
func (r *Registry) Replace(d Dialer) error {
	r.mu.Lock()
	old, ok := r.dialers[d.Driver()]
	r.dialers[d.Driver()] = d
	r.mu.Unlock()

	if ok && old != d {
		return old.Close()
	}

	return nil
}

// Get retrieves a dialer by driver.
func (r *Registry) Get(driver Driver) (Dialer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.dialers[driver]
	return d, ok
}

// Close closes all registered dialers.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for driver, d := range r.dialers {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(r.dialers, driver)
	}

	return errors.Join(errs...)
}
