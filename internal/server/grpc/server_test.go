package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/ekisa-team/speeddial/internal/config"
	"github.com/ekisa-team/speeddial/internal/dialer"
	"github.com/ekisa-team/speeddial/internal/service"
	"github.com/ekisa-team/speeddial/internal/speeddial"
)

const bufSize = 1024 * 1024

func setupClient(t *testing.T, mutate func(*config.Config)) (*Client, *grpc.ClientConn) {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	svc, err := service.NewFromConfig(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	lis := bufconn.Listen(bufSize)
	srv := NewServer(svc, 0)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough://bufconn",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn), conn
}

func requireCode(t *testing.T, err error, want codes.Code) {
	t.Helper()

	require.Error(t, err)
	assert.Equal(t, want, status.Code(err), err.Error())
}

func TestServer_Scenario(t *testing.T) {
	client, _ := setupClient(t, nil)
	ctx := context.Background()

	require.NoError(t, client.AddNumber(ctx, "Directory 1", "home", "123-456-7890"))

	number, err := client.PhoneNumber(ctx, "Directory 1", "home")
	require.NoError(t, err)
	assert.Equal(t, "123-456-7890", number)

	requireCode(t, client.AddNumber(ctx, "Directory 1", "home", "000"), codes.AlreadyExists)

	require.NoError(t, client.RemoveNumber(ctx, "Directory 1", "home"))

	_, err = client.PhoneNumber(ctx, "Directory 1", "home")
	requireCode(t, err, codes.NotFound)
}

func TestServer_ListEntries(t *testing.T) {
	client, _ := setupClient(t, func(cfg *config.Config) {
		cfg.Seed = map[string]map[string]string{
			"Directory 1": {"work": "987-654-3210", "home": "123-456-7890"},
		}
	})
	ctx := context.Background()

	entries, err := client.Entries(ctx, "Directory 1")
	require.NoError(t, err)
	assert.Equal(t, []speeddial.Entry{
		{Code: "home", Number: "123-456-7890"},
		{Code: "work", Number: "987-654-3210"},
	}, entries)

	entries, err = client.Entries(ctx, "Directory 4")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = client.Entries(ctx, "Directory 8")
	requireCode(t, err, codes.NotFound)
}

func TestServer_ContactName(t *testing.T) {
	client, _ := setupClient(t, nil)
	ctx := context.Background()

	require.NoError(t, client.AddEntry(ctx, "Directory 1", speeddial.Entry{Code: "mom", Number: "555-111-2222", Name: "Mamá"}))
	require.NoError(t, client.AddNumber(ctx, "Directory 1", "dad", "1"))

	entries, err := client.Entries(ctx, "Directory 1")
	require.NoError(t, err)
	assert.Equal(t, []speeddial.Entry{
		{Code: "dad", Number: "1"},
		{Code: "mom", Number: "555-111-2222", Name: "Mamá"},
	}, entries)
}

func TestServer_TruncatedMultibyteNumber(t *testing.T) {
	client, _ := setupClient(t, func(cfg *config.Config) {
		cfg.Registry.Number = config.NumberConfig{MaxLength: 2, Truncate: true}
	})
	ctx := context.Background()

	require.NoError(t, client.AddNumber(ctx, "Directory 1", "home", "1２３"))

	number, err := client.PhoneNumber(ctx, "Directory 1", "home")
	require.NoError(t, err)
	assert.Equal(t, "1２", number)

	entries, err := client.Entries(ctx, "Directory 1")
	require.NoError(t, err)
	assert.Equal(t, []speeddial.Entry{{Code: "home", Number: "1２"}}, entries)
}

func TestServer_ListDirectories(t *testing.T) {
	client, _ := setupClient(t, nil)

	infos, err := client.Directories(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 5)
	assert.Equal(t, speeddial.DirectoryInfo{Name: "Directory 1", Capacity: 200}, infos[0])
}

func TestServer_DirectoryFull(t *testing.T) {
	client, _ := setupClient(t, func(cfg *config.Config) {
		cfg.Registry.MaxDirectories = 1
		cfg.Registry.TotalCapacity = 1
	})
	ctx := context.Background()

	require.NoError(t, client.AddNumber(ctx, "Directory 1", "a", "1"))
	requireCode(t, client.AddNumber(ctx, "Directory 1", "b", "2"), codes.ResourceExhausted)
	requireCode(t, client.AddNumber(ctx, "Directory 1", "", "2"), codes.InvalidArgument)
}

func TestServer_Dial(t *testing.T) {
	client, _ := setupClient(t, func(cfg *config.Config) {
		cfg.Seed = map[string]map[string]string{"Directory 5": {"emergency": "911"}}
	})

	number, err := client.Dial(context.Background(), "Directory 5", "emergency")
	require.NoError(t, err)
	assert.Equal(t, "911", number)
}

func TestServer_Health(t *testing.T) {
	_, conn := setupClient(t, nil)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestToStatus(t *testing.T) {
	tests := map[error]codes.Code{
		speeddial.ErrNotInitialized:    codes.FailedPrecondition,
		speeddial.ErrDirectoryNotFound: codes.NotFound,
		speeddial.ErrCodeNotFound:      codes.NotFound,
		speeddial.ErrDuplicateCode:     codes.AlreadyExists,
		speeddial.ErrDirectoryFull:     codes.ResourceExhausted,
		speeddial.ErrInvalidNumber:     codes.InvalidArgument,
		speeddial.ErrInvalidName:       codes.InvalidArgument,
		dialer.ErrDriverNotFound:       codes.Unavailable,
		context.DeadlineExceeded:       codes.DeadlineExceeded,
		context.Canceled:               codes.Canceled,

		fmt.Errorf("%w: no carrier", dialer.ErrDialFailed):                   codes.Unavailable,
		fmt.Errorf("%w: %w", dialer.ErrDialFailed, context.DeadlineExceeded): codes.DeadlineExceeded,
		errors.New("boom"): codes.Internal,
	}

	for err, want := range tests {
		assert.Equal(t, want, status.Code(toStatus(err)), err.Error())
	}
}
