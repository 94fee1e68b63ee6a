package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
	pkgErrors "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/errors"
)

var (
	errEventNotFound = pkgErrors.NewGRPCError(codes.NotFound, "NFT001", "Event not found")
	errInvalidEvent  = pkgErrors.NewGRPCError(codes.InvalidArgument, "NFT002", "Event id is required")
)

func (s *grpcService) mapGRPCError(err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return errEventNotFound
	default:
		return err
	}
}
