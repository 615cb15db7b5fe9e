package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ekisa-team/speeddial/internal/config"
	"github.com/ekisa-team/speeddial/internal/dialer"
	"github.com/ekisa-team/speeddial/internal/speeddial"
)

// SpeedDial is the front-end service over the registry. It owns the
// user-facing logging the registry itself never does, and hands looked-up
// numbers to the active dialer.
type SpeedDial struct {
	registry *speeddial.Registry
	dialers  *dialer.Registry
	logger   *slog.Logger
	driver   dialer.Driver
	mu       sync.RWMutex
}

// New creates a SpeedDial service. A nil logger uses slog.Default.
func New(registry *speeddial.Registry, dialers *dialer.Registry, driver dialer.Driver, logger *slog.Logger) *SpeedDial {
	if logger == nil {
		logger = slog.Default()
	}

	return &SpeedDial{
		registry: registry,
		dialers:  dialers,
		logger:   logger,
		driver:   driver,
	}
}

// Registry returns the underlying registry.
func (s *SpeedDial) Registry() *speeddial.Registry {
	return s.registry
}

// Initialize initializes the registry, logging when it already was.
func (s *SpeedDial) Initialize() bool {
	if !s.registry.Initialize() {
		s.logger.Info("Registry already initialized")
		return false
	}

	stats := s.registry.Stats()
	s.logger.Info("Registry initialized", "directories", stats.Directories, "capacity", stats.Capacity)
	return true
}

// AddNumber adds an entry without a contact name.
func (s *SpeedDial) AddNumber(directory, code, number string) error {
	_, err := s.AddEntry(directory, speeddial.Entry{Code: code, Number: number})
	return err
}

// AddEntry adds an entry and returns it as stored.
func (s *SpeedDial) AddEntry(directory string, entry speeddial.Entry) (speeddial.Entry, error) {
	stored, err := s.registry.AddEntry(directory, entry)
	if err != nil {
		s.logFailure("Failed to add number", err, "directory", directory, "code", entry.Code)
		return speeddial.Entry{}, err
	}

	s.logger.Info("Number added", "directory", directory, "code", stored.Code, "name", stored.Name)
	return stored, nil
}

// PhoneNumber looks up the number of an entry.
func (s *SpeedDial) PhoneNumber(directory, code string) (string, error) {
	entry, err := s.Entry(directory, code)
	if err != nil {
		return "", err
	}

	return entry.Number, nil
}

// Entry looks up an entry.
func (s *SpeedDial) Entry(directory, code string) (speeddial.Entry, error) {
	entry, err := s.registry.Entry(directory, code)
	if err != nil {
		s.logFailure("Failed to get number", err, "directory", directory, "code", code)
		return speeddial.Entry{}, err
	}

	s.logger.Debug("Number retrieved", "directory", directory, "code", code)
	return entry, nil
}

// RemoveNumber removes an entry.
func (s *SpeedDial) RemoveNumber(directory, code string) error {
	if err := s.registry.RemoveNumber(directory, code); err != nil {
		s.logFailure("Failed to remove number", err, "directory", directory, "code", code)
		return err
	}

	s.logger.Info("Number removed", "directory", directory, "code", code)
	return nil
}

// Entries lists a directory sorted by code.
func (s *SpeedDial) Entries(directory string) ([]speeddial.Entry, error) {
	entries, err := s.registry.Entries(directory)
	if err != nil {
		s.logFailure("Failed to list entries", err, "directory", directory)
		return nil, err
	}

	return entries, nil
}

// DirectoryNames lists the sorted directory names.
func (s *SpeedDial) DirectoryNames() ([]string, error) {
	return s.registry.DirectoryNames()
}

// Directories describes every directory.
func (s *SpeedDial) Directories() ([]speeddial.DirectoryInfo, error) {
	return s.registry.Directories()
}

// Directory describes one directory.
func (s *SpeedDial) Directory(name string) (speeddial.DirectoryInfo, error) {
	return s.registry.Directory(name)
}

// Stats summarizes the registry.
func (s *SpeedDial) Stats() speeddial.Stats {
	return s.registry.Stats()
}

// Subscribe registers a registry observer.
func (s *SpeedDial) Subscribe(observer speeddial.Observer) func() {
	return s.registry.Subscribe(observer)
}

// Dial looks up an entry and hands its number to the active dialer. It
// returns the dialed entry. Dialer errors are wrapped with
// dialer.ErrDialFailed.
func (s *SpeedDial) Dial(ctx context.Context, directory, code string) (speeddial.Entry, error) {
	entry, err := s.Entry(directory, code)
	if err != nil {
		return speeddial.Entry{}, err
	}

	driver := s.Driver()
	d, ok := s.dialers.Get(driver)
	if !ok {
		s.logger.Error("Dialer not registered", "driver", driver)
		return speeddial.Entry{}, fmt.Errorf("%w: %s", dialer.ErrDriverNotFound, driver)
	}

	if err := d.Dial(ctx, entry.Number); err != nil {
		s.logger.Error("Dial failed", "directory", directory, "code", code, "name", entry.Name, "driver", driver, "error", err)
		return speeddial.Entry{}, fmt.Errorf("%w: %s/%s: %w", dialer.ErrDialFailed, directory, code, err)
	}

	s.logger.Info("Dialed", "directory", directory, "code", code, "name", entry.Name, "driver", driver)
	return entry, nil
}

// Driver returns the active dialer driver.
func (s *SpeedDial) Driver() dialer.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.driver
}

// SetDriver switches the active dialer. The driver must be registered.
func (s *SpeedDial) SetDriver(driver dialer.Driver) error {
	if _, ok := s.dialers.Get(driver); !ok {
		return fmt.Errorf("%w: %s", dialer.ErrDriverNotFound, driver)
	}

	s.mu.Lock()
	s.driver = driver
	s.mu.Unlock()

	s.logger.Info("Dialer driver changed", "driver", driver)
	return nil
}

// ApplyDialerConfig builds the configured dialer, registers it in place of
// any previous one of the same driver and makes it active.
func (s *SpeedDial) ApplyDialerConfig(cfg config.DialerConfig) error {
	d, err := dialer.FromConfig(cfg, s.logger)
	if err != nil {
		return fmt.Errorf("failed to build dialer: %w", err)
	}

	if err := s.dialers.Replace(d); err != nil {
		s.logger.Warn("Failed to close replaced dialer", "driver", d.Driver(), "error", err)
	}

	return s.SetDriver(d.Driver())
}

// Close releases the dialers and tears down the registry.
func (s *SpeedDial) Close() error {
	s.registry.Close()
	return s.dialers.Close()
}

// logFailure logs expected registry failures at warn level and anything
// else at error level.
func (s *SpeedDial) logFailure(msg string, err error, args ...any) {
	args = append(args, "error", err)
	if isExpected(err) {
		s.logger.Warn(msg, args...)
		return
	}

	s.logger.Error(msg, args...)
}

func isExpected(err error) bool {
	for _, target := range []error{
		speeddial.ErrNotInitialized,
		speeddial.ErrDirectoryNotFound,
		speeddial.ErrDirectoryFull,
		speeddial.ErrDuplicateCode,
		speeddial.ErrCodeNotFound,
		speeddial.ErrInvalidCode,
		speeddial.ErrInvalidNumber,
		speeddial.ErrInvalidName,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
