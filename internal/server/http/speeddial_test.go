package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/speeddial/internal/config"
	"github.com/ekisa-team/speeddial/internal/dialer"
	"github.com/ekisa-team/speeddial/internal/service"
	"github.com/ekisa-team/speeddial/internal/speeddial"
)

func newTestAPI(t *testing.T, mutate func(*config.Config)) humatest.TestAPI {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	svc, err := service.NewFromConfig(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	return humatest.Wrap(t, NewAPI(http.NewServeMux(), svc))
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestSpeedDialHandler_Scenario(t *testing.T) {
	api := newTestAPI(t, nil)

	resp := api.Put("/directories/Directory%201/entries/home", map[string]any{"number": "123-456-7890"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = api.Get("/directories/Directory%201/entries/home")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, EntryDTO{Code: "home", Number: "123-456-7890"}, decode[EntryDTO](t, resp.Body.Bytes()))

	resp = api.Put("/directories/Directory%201/entries/home", map[string]any{"number": "000"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = api.Delete("/directories/Directory%201/entries/home")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = api.Get("/directories/Directory%201/entries/home")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Delete("/directories/Directory%201/entries/home")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSpeedDialHandler_ListDirectories(t *testing.T) {
	api := newTestAPI(t, nil)

	resp := api.Get("/directories")
	require.Equal(t, http.StatusOK, resp.Code)

	dirs := decode[[]DirectoryDTO](t, resp.Body.Bytes())
	require.Len(t, dirs, 5)
	assert.Equal(t, DirectoryDTO{Name: "Directory 1", Capacity: 200, Size: 0}, dirs[0])

	resp = api.Get("/directories/Directory%209")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSpeedDialHandler_ListEntries(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) {
		cfg.Seed = map[string]map[string]string{
			"Directory 2": {"friend2": "444-555-6666", "friend1": "111-222-3333"},
		}
	})

	resp := api.Get("/directories/Directory%202/entries")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []EntryDTO{
		{Code: "friend1", Number: "111-222-3333"},
		{Code: "friend2", Number: "444-555-6666"},
	}, decode[[]EntryDTO](t, resp.Body.Bytes()))

	// Empty is an empty array, missing is a 404.
	resp = api.Get("/directories/Directory%204/entries")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, "[]", resp.Body.String())

	resp = api.Get("/directories/Directory%207/entries")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSpeedDialHandler_Full(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) {
		cfg.Registry.MaxDirectories = 1
		cfg.Registry.TotalCapacity = 1
	})

	resp := api.Put("/directories/Directory%201/entries/a", map[string]any{"number": "1"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = api.Put("/directories/Directory%201/entries/b", map[string]any{"number": "2"})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "directory is full")
}

func TestSpeedDialHandler_TruncatedNumber(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) {
		cfg.Registry.Number = config.NumberConfig{MaxLength: 3, Truncate: true}
	})

	resp := api.Put("/directories/Directory%201/entries/home", map[string]any{"number": "123-456"})
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "123", decode[EntryDTO](t, resp.Body.Bytes()).Number)
}

func TestSpeedDialHandler_RejectsEmptyNumber(t *testing.T) {
	api := newTestAPI(t, nil)

	resp := api.Put("/directories/Directory%201/entries/home", map[string]any{"number": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestSpeedDialHandler_Dial(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) {
		cfg.Seed = map[string]map[string]string{"Directory 5": {"emergency": "911"}}
	})

	resp := api.Post("/directories/Directory%205/entries/emergency/dial")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, DialResponseDTO{Number: "911", Driver: "log"}, decode[DialResponseDTO](t, resp.Body.Bytes()))

	resp = api.Post("/directories/Directory%205/entries/police/dial")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSpeedDialHandler_ContactName(t *testing.T) {
	api := newTestAPI(t, nil)

	resp := api.Put("/directories/Directory%201/entries/mom", map[string]any{"number": "555-111-2222", "name": "Mom"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, EntryDTO{Code: "mom", Number: "555-111-2222", Name: "Mom"}, decode[EntryDTO](t, resp.Body.Bytes()))

	resp = api.Get("/directories/Directory%201/entries/mom")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Mom", decode[EntryDTO](t, resp.Body.Bytes()).Name)

	resp = api.Post("/directories/Directory%201/entries/mom/dial")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, DialResponseDTO{Number: "555-111-2222", Name: "Mom", Driver: "log"}, decode[DialResponseDTO](t, resp.Body.Bytes()))
}

func TestSpeedDialHandler_Stats(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) {
		cfg.Seed = map[string]map[string]string{"Directory 1": {"home": "1"}}
	})

	resp := api.Get("/stats")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, speeddial.Stats{Directories: 5, Capacity: 1000, Entries: 1, Initialized: true},
		decode[speeddial.Stats](t, resp.Body.Bytes()))
}

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not initialized", err: speeddial.ErrNotInitialized, want: http.StatusServiceUnavailable},
		{name: "invalid name", err: speeddial.ErrInvalidName, want: http.StatusUnprocessableEntity},
		{name: "dial failed", err: fmt.Errorf("%w: no carrier", dialer.ErrDialFailed), want: http.StatusBadGateway},
		{name: "dial timeout", err: fmt.Errorf("%w: %w", dialer.ErrDialFailed, context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var se interface{ GetStatus() int }
			require.ErrorAs(t, toHTTPError(tt.err), &se)
			assert.Equal(t, tt.want, se.GetStatus())
		})
	}
}
