package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vogiaan1904/ticketbottle-nftmarket/config"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository/memory"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
	pkgGrpc "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/grpc"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

func newTestClient(t *testing.T) pkgGrpc.TicketingServiceClient {
	t.Helper()

	l := logger.InitializeTestZapLogger()
	ctx := context.Background()

	evRepo := memory.NewEventRepository()
	require.NoError(t, evRepo.Seed(ctx, models.SeedEvents("STX")))

	sim := service.NewSimulator(l, service.SimulatorConfig{ReportInterval: time.Second, ShutdownTimeout: time.Second})
	require.NoError(t, sim.Start(ctx))
	t.Cleanup(func() { _ = sim.Stop() })

	mkt := service.NewMarketplaceService(
		evRepo,
		memory.NewTicketRepository(),
		service.NewSessionGuard(memory.NewSessionRepository()),
		sim,
		producer.NewNopProducer(),
		config.SimulationConfig{},
		l,
	)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	pkgGrpc.RegisterTicketingServiceServer(srv, NewGrpcService(mkt, sim, l))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return pkgGrpc.NewTicketingServiceClient(conn)
}

func TestListEvents(t *testing.T) {
	c := newTestClient(t)

	out, err := c.ListEvents(context.Background())
	require.NoError(t, err)

	evs := out.GetFields()["events"].GetListValue().GetValues()
	require.Len(t, evs, 3)

	first := evs[0].GetStructValue().GetFields()
	assert.Equal(t, "Neon Dreams Festival", first["title"].GetStringValue())
	assert.EqualValues(t, 120, first["available_tickets"].GetNumberValue())
	assert.Equal(t, "50", first["price"].GetStringValue())
}

func TestGetEvent(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	out, err := c.GetEvent(ctx, "2")
	require.NoError(t, err)
	assert.EqualValues(t, 0, out.GetFields()["available_tickets"].GetNumberValue())

	_, err = c.GetEvent(ctx, "404")
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.GetEvent(ctx, "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetSimulatorStatus(t *testing.T) {
	c := newTestClient(t)

	out, err := c.GetSimulatorStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, out.GetFields()["is_running"].GetBoolValue())
	assert.EqualValues(t, 0, out.GetFields()["pending_tasks"].GetNumberValue())
}
