package grpc

import (
	"context"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type CleanupFunc func()

type TicketingServiceClient interface {
	ListEvents(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetEvent(ctx context.Context, eventID string, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetSimulatorStatus(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type ticketingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTicketingServiceClient(cc grpc.ClientConnInterface) TicketingServiceClient {
	return &ticketingServiceClient{cc: cc}
}

func NewTicketingClient(addr string) (TicketingServiceClient, CleanupFunc, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Println("gRpc Ticketing client connection failed.", err)
		return nil, nil, err
	}

	log.Println("gRpc Ticketing client connection established.")
	return NewTicketingServiceClient(conn), func() { conn.Close() }, nil
}

func (c *ticketingServiceClient) ListEvents(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ticketingListEventsMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketingServiceClient) GetEvent(ctx context.Context, eventID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ticketingGetEventMethod, wrapperspb.String(eventID), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ticketingServiceClient) GetSimulatorStatus(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ticketingGetSimulatorStatusMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
