package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ekisa-team/speeddial/internal/dialer"
	"github.com/ekisa-team/speeddial/internal/service"
	"github.com/ekisa-team/speeddial/internal/speeddial"
	"github.com/ekisa-team/speeddial/mapsafe"
)

// SpeedDialService implements SpeedDialServer on top of the service layer.
type SpeedDialService struct {
	service *service.SpeedDial
}

// NewSpeedDialService creates the gRPC service implementation.
func NewSpeedDialService(svc *service.SpeedDial) *SpeedDialService {
	return &SpeedDialService{service: svc}
}

// AddNumber adds an entry.
func (s *SpeedDialService) AddNumber(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	req := in.AsMap()
	directory := mapsafe.Get(req, "directory", "")
	entry := speeddial.Entry{
		Code:   mapsafe.Get(req, "code", ""),
		Number: mapsafe.Get(req, "number", ""),
		Name:   mapsafe.Get(req, "name", ""),
	}

	if _, err := s.service.AddEntry(directory, entry); err != nil {
		return nil, toStatus(err)
	}

	return &emptypb.Empty{}, nil
}

// GetPhoneNumber looks up an entry.
func (s *SpeedDialService) GetPhoneNumber(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	directory, code := entryFields(in)

	number, err := s.service.PhoneNumber(directory, code)
	if err != nil {
		return nil, toStatus(err)
	}

	return wrapperspb.String(number), nil
}

// RemoveNumber removes an entry.
func (s *SpeedDialService) RemoveNumber(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	directory, code := entryFields(in)

	if err := s.service.RemoveNumber(directory, code); err != nil {
		return nil, toStatus(err)
	}

	return &emptypb.Empty{}, nil
}

// ListEntries lists a directory sorted by code.
func (s *SpeedDialService) ListEntries(ctx context.Context, in *structpb.Struct) (*structpb.ListValue, error) {
	directory := mapsafe.Get(in.AsMap(), "directory", "")

	entries, err := s.service.Entries(directory)
	if err != nil {
		return nil, toStatus(err)
	}

	values := make([]any, 0, len(entries))
	for _, e := range entries {
		values = append(values, map[string]any{"code": e.Code, "number": e.Number, "name": e.Name})
	}

	return newList(values)
}

// ListDirectories describes every directory.
func (s *SpeedDialService) ListDirectories(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	infos, err := s.service.Directories()
	if err != nil {
		return nil, toStatus(err)
	}

	values := make([]any, 0, len(infos))
	for _, info := range infos {
		values = append(values, map[string]any{"name": info.Name, "capacity": info.Capacity, "size": info.Size})
	}

	return newList(values)
}

// Dial dials an entry.
func (s *SpeedDialService) Dial(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	directory, code := entryFields(in)

	entry, err := s.service.Dial(ctx, directory, code)
	if err != nil {
		return nil, toStatus(err)
	}

	return wrapperspb.String(entry.Number), nil
}

// Server serves the SpeedDial gRPC service and the standard health service.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	port   int
}

// NewServer creates a server for svc listening on port.
func NewServer(svc *service.SpeedDial, port int, opts ...grpc.ServerOption) *Server {
	s := grpc.NewServer(opts...)
	RegisterSpeedDialServer(s, NewSpeedDialService(svc))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{grpc: s, health: hs, port: port}
}

// ListenAndServe listens on the configured port and serves until Stop.
func (s *Server) ListenAndServe() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("grpc server: %w", err)
	}

	return s.Serve(lis)
}

// Serve serves on lis until Stop.
func (s *Server) Serve(lis net.Listener) error {
	slog.Info("gRPC server listening", "addr", lis.Addr().String())

	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc server: %w", err)
	}

	return nil
}

// Stop marks the service as not serving and stops gracefully.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

func entryFields(in *structpb.Struct) (directory, code string) {
	req := in.AsMap()
	return mapsafe.Get(req, "directory", ""), mapsafe.Get(req, "code", "")
}

func newList(values []any) (*structpb.ListValue, error) {
	list, err := structpb.NewList(values)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}

	return list, nil
}

// toStatus maps registry and dialer errors to gRPC status errors.
func toStatus(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return status.FromContextError(err).Err()
	}

	code := codes.Internal
	switch {
	case errors.Is(err, speeddial.ErrDirectoryNotFound), errors.Is(err, speeddial.ErrCodeNotFound):
		code = codes.NotFound
	case errors.Is(err, speeddial.ErrDuplicateCode):
		code = codes.AlreadyExists
	case errors.Is(err, speeddial.ErrDirectoryFull):
		code = codes.ResourceExhausted
	case errors.Is(err, speeddial.ErrNotInitialized):
		code = codes.FailedPrecondition
	case errors.Is(err, speeddial.ErrInvalidCode), errors.Is(err, speeddial.ErrInvalidNumber), errors.Is(err, speeddial.ErrInvalidName):
		code = codes.InvalidArgument
	case errors.Is(err, dialer.ErrDriverNotFound), errors.Is(err, dialer.ErrDialFailed):
		code = codes.Unavailable
	}

	return status.Error(code, err.Error())
}
