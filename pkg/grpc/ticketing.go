package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The ticketing service is read-only and small enough to describe with
// well-known message types, so there is no generated code behind it.

const TicketingServiceName = "nftticket.v1.TicketingService"

const (
	ticketingListEventsMethod         = "/" + TicketingServiceName + "/ListEvents"
	ticketingGetEventMethod           = "/" + TicketingServiceName + "/GetEvent"
	ticketingGetSimulatorStatusMethod = "/" + TicketingServiceName + "/GetSimulatorStatus"
)

type TicketingServiceServer interface {
	ListEvents(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	GetEvent(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error)
	GetSimulatorStatus(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
}

func RegisterTicketingServiceServer(s grpc.ServiceRegistrar, srv TicketingServiceServer) {
	s.RegisterService(&TicketingServiceDesc, srv)
}

var TicketingServiceDesc = grpc.ServiceDesc{
	ServiceName: TicketingServiceName,
	HandlerType: (*TicketingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListEvents", Handler: listEventsHandler},
		{MethodName: "GetEvent", Handler: getEventHandler},
		{MethodName: "GetSimulatorStatus", Handler: getSimulatorStatusHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "nftticket/v1/ticketing.proto",
}

func listEventsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketingServiceServer).ListEvents(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ticketingListEventsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketingServiceServer).ListEvents(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getEventHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketingServiceServer).GetEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ticketingGetEventMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketingServiceServer).GetEvent(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getSimulatorStatusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TicketingServiceServer).GetSimulatorStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ticketingGetSimulatorStatusMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TicketingServiceServer).GetSimulatorStatus(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
