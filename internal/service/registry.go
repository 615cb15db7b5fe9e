package service

import (
	"cmp"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/ekisa-team/speeddial/internal/config"
	"github.com/ekisa-team/speeddial/internal/dialer"
	"github.com/ekisa-team/speeddial/internal/speeddial"
)

// RegistryOptions translates the registry section of the config.
func RegistryOptions(cfg config.RegistryConfig) []speeddial.Option {
	opts := []speeddial.Option{
		speeddial.WithMaxDirectories(cfg.MaxDirectories),
		speeddial.WithTotalCapacity(cfg.TotalCapacity),
		speeddial.WithRemainderPolicy(speeddial.RemainderPolicy(cmp.Or(cfg.RemainderPolicy, string(speeddial.RemainderDiscard)))),
		speeddial.WithMaxCodeLength(cfg.MaxCodeLength),
		speeddial.WithNumberPolicy(speeddial.NumberPolicy{
			MaxLength: cfg.Number.MaxLength,
			Truncate:  cfg.Number.Truncate,
		}),
	}

	if len(cfg.DirectoryNames) > 0 {
		opts = append(opts, speeddial.WithDirectoryNames(cfg.DirectoryNames...))
	}

	return opts
}

// NewRegistryFromConfig builds and initializes a registry.
func NewRegistryFromConfig(cfg *config.Config) (*speeddial.Registry, error) {
	registry, err := speeddial.New(RegistryOptions(cfg.Registry)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	registry.Initialize()

	return registry, nil
}

// NewFromConfig builds the registry, registers the log dialer plus the
// configured one, and loads the seed entries.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*SpeedDial, error) {
	registry, err := NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	dialers := dialer.NewRegistry()
	if err := dialers.Register(dialer.NewLogDialer(logger)); err != nil {
		return nil, err
	}

	svc := New(registry, dialers, dialer.DriverLog, logger)
	if err := svc.ApplyDialerConfig(cfg.Dialer); err != nil {
		return nil, err
	}

	stats := registry.Stats()
	svc.logger.Info("Registry initialized", "directories", stats.Directories, "capacity", stats.Capacity)

	svc.Seed(cfg.Seed)

	return svc, nil
}

// Seed adds the configured entries, in directory then code order. Entries
// that cannot be added are logged and skipped. It returns how many were added.
func (s *SpeedDial) Seed(seed map[string]map[string]string) int {
	added := 0
	for _, dir := range slices.Sorted(maps.Keys(seed)) {
		entries := seed[dir]
		for _, code := range slices.Sorted(maps.Keys(entries)) {
			if err := s.registry.AddNumber(dir, code, entries[code]); err != nil {
				s.logger.Warn("Skipping seed entry", "directory", dir, "code", code, "error", err)
				continue
			}
			added++
		}
	}

	s.logger.Info("Seed entries loaded", "added", added)
	return added
}
