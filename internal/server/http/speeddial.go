package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/speeddial/internal/dialer"
	"github.com/ekisa-team/speeddial/internal/service"
	"github.com/ekisa-team/speeddial/internal/speeddial"
)

type (
	EntryDTO struct {
		Code   string `json:"code"`
		Number string `json:"number"`
		Name   string `json:"name,omitempty"`
	}

	DirectoryDTO struct {
		Name     string `json:"name"`
		Capacity int    `json:"capacity"`
		Size     int    `json:"size"`
	}

	AddEntryRequestDTO struct {
		Number string `json:"number" minLength:"1"`
		Name   string `json:"name,omitempty" doc:"Optional contact name"`
	}

	DialResponseDTO struct {
		Number string `json:"number"`
		Name   string `json:"name,omitempty"`
		Driver string `json:"driver"`
	}
)

type (
	DirectoryInput struct {
		Name string `path:"name"`
	}

	EntryInput struct {
		Name string `path:"name"`
		Code string `path:"code"`
	}

	AddEntryInput struct {
		Name string `path:"name"`
		Code string `path:"code"`
		Body AddEntryRequestDTO
	}

	ListDirectoriesOutput struct {
		Body []DirectoryDTO
	}

	DirectoryOutput struct {
		Body DirectoryDTO
	}

	ListEntriesOutput struct {
		Body []EntryDTO
	}

	EntryOutput struct {
		Body EntryDTO
	}

	DialOutput struct {
		Body DialResponseDTO
	}

	StatsOutput struct {
		Body speeddial.Stats
	}
)

// SpeedDialHandler handles HTTP requests for the speed dial registry.
type SpeedDialHandler struct {
	service *service.SpeedDial
}

// NewSpeedDialHandler registers the speed dial operations on api.
func NewSpeedDialHandler(api huma.API, service *service.SpeedDial) *SpeedDialHandler {
	h := &SpeedDialHandler{service: service}

	huma.Register(api, huma.Operation{
		OperationID: "list-directories",
		Method:      http.MethodGet,
		Path:        "/directories",
		Summary:     "List directories",
		Tags:        []string{"directories"},
	}, h.handleListDirectories)

	huma.Register(api, huma.Operation{
		OperationID: "get-directory",
		Method:      http.MethodGet,
		Path:        "/directories/{name}",
		Summary:     "Describe a directory",
		Tags:        []string{"directories"},
	}, h.handleGetDirectory)

	huma.Register(api, huma.Operation{
		OperationID: "list-entries",
		Method:      http.MethodGet,
		Path:        "/directories/{name}/entries",
		Summary:     "List the entries of a directory sorted by code",
		Tags:        []string{"entries"},
	}, h.handleListEntries)

	huma.Register(api, huma.Operation{
		OperationID: "get-entry",
		Method:      http.MethodGet,
		Path:        "/directories/{name}/entries/{code}",
		Summary:     "Get the phone number of a speed dial code",
		Tags:        []string{"entries"},
	}, h.handleGetEntry)

	huma.Register(api, huma.Operation{
		OperationID:   "add-entry",
		Method:        http.MethodPut,
		Path:          "/directories/{name}/entries/{code}",
		Summary:       "Add a speed dial entry",
		Tags:          []string{"entries"},
		DefaultStatus: http.StatusCreated,
	}, h.handleAddEntry)

	huma.Register(api, huma.Operation{
		OperationID:   "remove-entry",
		Method:        http.MethodDelete,
		Path:          "/directories/{name}/entries/{code}",
		Summary:       "Remove a speed dial entry",
		Tags:          []string{"entries"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleRemoveEntry)

	huma.Register(api, huma.Operation{
		OperationID: "dial-entry",
		Method:      http.MethodPost,
		Path:        "/directories/{name}/entries/{code}/dial",
		Summary:     "Dial the number of a speed dial code",
		Tags:        []string{"entries"},
	}, h.handleDial)

	huma.Register(api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/stats",
		Summary:     "Summarize the registry",
		Tags:        []string{"registry"},
	}, h.handleStats)

	return h
}

// handleListDirectories handles the list-directories operation.
func (h *SpeedDialHandler) handleListDirectories(ctx context.Context, _ *struct{}) (*ListDirectoriesOutput, error) {
	infos, err := h.service.Directories()
	if err != nil {
		return nil, toHTTPError(err)
	}

	out := &ListDirectoriesOutput{Body: make([]DirectoryDTO, 0, len(infos))}
	for _, info := range infos {
		out.Body = append(out.Body, DirectoryDTO(info))
	}

	return out, nil
}

// handleGetDirectory handles the get-directory operation.
func (h *SpeedDialHandler) handleGetDirectory(ctx context.Context, input *DirectoryInput) (*DirectoryOutput, error) {
	info, err := h.service.Directory(input.Name)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &DirectoryOutput{Body: DirectoryDTO(info)}, nil
}

// handleListEntries handles the list-entries operation.
func (h *SpeedDialHandler) handleListEntries(ctx context.Context, input *DirectoryInput) (*ListEntriesOutput, error) {
	entries, err := h.service.Entries(input.Name)
	if err != nil {
		return nil, toHTTPError(err)
	}

	out := &ListEntriesOutput{Body: make([]EntryDTO, 0, len(entries))}
	for _, e := range entries {
		out.Body = append(out.Body, EntryDTO(e))
	}

	return out, nil
}

// handleGetEntry handles the get-entry operation.
func (h *SpeedDialHandler) handleGetEntry(ctx context.Context, input *EntryInput) (*EntryOutput, error) {
	entry, err := h.service.Entry(input.Name, input.Code)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &EntryOutput{Body: EntryDTO(entry)}, nil
}

// handleAddEntry handles the add-entry operation. The response carries the
// entry as stored, after the number policy has been applied.
func (h *SpeedDialHandler) handleAddEntry(ctx context.Context, input *AddEntryInput) (*EntryOutput, error) {
	stored, err := h.service.AddEntry(input.Name, speeddial.Entry{
		Code:   input.Code,
		Number: input.Body.Number,
		Name:   input.Body.Name,
	})
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &EntryOutput{Body: EntryDTO(stored)}, nil
}

// handleRemoveEntry handles the remove-entry operation.
func (h *SpeedDialHandler) handleRemoveEntry(ctx context.Context, input *EntryInput) (*struct{}, error) {
	if err := h.service.RemoveNumber(input.Name, input.Code); err != nil {
		return nil, toHTTPError(err)
	}

	return nil, nil
}

// handleDial handles the dial-entry operation.
func (h *SpeedDialHandler) handleDial(ctx context.Context, input *EntryInput) (*DialOutput, error) {
	entry, err := h.service.Dial(ctx, input.Name, input.Code)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &DialOutput{Body: DialResponseDTO{
		Number: entry.Number,
		Name:   entry.Name,
		Driver: string(h.service.Driver()),
	}}, nil
}

// handleStats handles the get-stats operation.
func (h *SpeedDialHandler) handleStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	return &StatsOutput{Body: h.service.Stats()}, nil
}

// toHTTPError maps registry errors to HTTP status errors.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout("dial timed out", err)
	case errors.Is(err, speeddial.ErrDirectoryNotFound):
		return huma.Error404NotFound("directory not found", err)
	case errors.Is(err, speeddial.ErrCodeNotFound):
		return huma.Error404NotFound("speed dial code not found", err)
	case errors.Is(err, speeddial.ErrDuplicateCode):
		return huma.Error409Conflict("speed dial code already exists", err)
	case errors.Is(err, speeddial.ErrDirectoryFull):
		return huma.Error409Conflict("directory is full", err)
	case errors.Is(err, speeddial.ErrInvalidCode), errors.Is(err, speeddial.ErrInvalidNumber), errors.Is(err, speeddial.ErrInvalidName):
		return huma.Error422UnprocessableEntity("invalid entry", err)
	case errors.Is(err, speeddial.ErrNotInitialized):
		return huma.Error503ServiceUnavailable("registry not initialized", err)
	case errors.Is(err, dialer.ErrDriverNotFound):
		return huma.Error503ServiceUnavailable("dialer unavailable", err)
	case errors.Is(err, dialer.ErrDialFailed):
		return huma.Error502BadGateway("dial failed", err)
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}
