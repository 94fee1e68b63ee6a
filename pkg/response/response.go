package response

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgErrors "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, data any) {
	WithStatus(w, http.StatusOK, data)
}

func WithStatus(w http.ResponseWriter, statusCode int, data any) {
	JSON(w, statusCode, Resp{
		Message: "Success",
		Data:    data,
	})
}

// Error writes err as an error body. Anything that is not an HTTPError is
// reported as an internal error without leaking its text.
func Error(w http.ResponseWriter, err error) {
	statusCode, resp := parseHttpError(err)
	JSON(w, statusCode, resp)
}

// ValidationError reports request validation failures with per-field details.
func ValidationError(w http.ResponseWriter, err *pkgErrors.HTTPError, details any) {
	JSON(w, err.Status(), Resp{
		ErrorCode: err.Code,
		Message:   err.Message,
		Errors:    details,
	})
}

func parseHttpError(err error) (int, Resp) {
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status(), Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		}
	}

	return http.StatusInternalServerError, Resp{
		ErrorCode: 500,
		Message:   "Internal server error",
	}
}

func ParseGRPCError(err error) error {
	var grpcErr *pkgErrors.GRPCError
	if errors.As(err, &grpcErr) {
		grpcCode := grpcErr.GrpcCode
		if grpcCode == 0 {
			grpcCode = codes.InvalidArgument
		}
		return status.Error(grpcCode, grpcErr.Error())
	}

	return status.Error(codes.Internal, "Internal server error")
}
