package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
	pkgGrpc "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/grpc"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
	resp "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/response"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/util"
)

type grpcService struct {
	mktSvc service.MarketplaceService
	sim    service.Simulator
	l      logger.Logger
}

func NewGrpcService(mktSvc service.MarketplaceService, sim service.Simulator, l logger.Logger) pkgGrpc.TicketingServiceServer {
	return &grpcService{
		mktSvc: mktSvc,
		sim:    sim,
		l:      l,
	}
}

func (s *grpcService) ListEvents(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	evs, err := s.mktSvc.ListEvents(ctx)
	if err != nil {
		s.l.Errorf(ctx, "Failed to list events: %v", err)
		return nil, resp.ParseGRPCError(s.mapGRPCError(err))
	}

	out, err := toStruct(map[string]any{"events": evs})
	if err != nil {
		s.l.Errorf(ctx, "Failed to encode events: %v", err)
		return nil, resp.ParseGRPCError(err)
	}

	return out, nil
}

func (s *grpcService) GetEvent(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req.GetValue() == "" {
		return nil, resp.ParseGRPCError(errInvalidEvent)
	}

	ev, err := s.mktSvc.GetEvent(ctx, req.GetValue())
	if err != nil {
		s.l.Warnf(ctx, "Failed to get event: %v", err)
		return nil, resp.ParseGRPCError(s.mapGRPCError(err))
	}

	out, err := toStruct(ev)
	if err != nil {
		s.l.Errorf(ctx, "Failed to encode event: %v", err)
		return nil, resp.ParseGRPCError(err)
	}

	return out, nil
}

func (s *grpcService) GetSimulatorStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st := s.sim.GetStatus()

	return structpb.NewStruct(map[string]any{
		"is_running":      st.IsRunning,
		"started_at":      util.TimeToISO8601Str(st.StartedAt),
		"pending_tasks":   st.PendingTasks,
		"total_scheduled": st.TotalScheduled,
		"total_fired":     st.TotalFired,
		"total_cancelled": st.TotalCancelled,
	})
}

// toStruct goes through JSON so the wire shape matches the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal: %w", err)
	}

	return structpb.NewStruct(m)
}
