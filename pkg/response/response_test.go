package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pkgErrors "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/errors"
)

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody Resp
	}{
		{
			name:     "http error with status",
			err:      pkgErrors.NewHTTPError(10002, "Event not found").WithStatus(http.StatusNotFound),
			wantCode: http.StatusNotFound,
			wantBody: Resp{ErrorCode: 10002, Message: "Event not found"},
		},
		{
			name:     "http error defaults to bad request",
			err:      pkgErrors.NewHTTPError(10007, "Invalid request"),
			wantCode: http.StatusBadRequest,
			wantBody: Resp{ErrorCode: 10007, Message: "Invalid request"},
		},
		{
			name:     "unknown error is hidden",
			err:      errors.New("redis: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: Resp{ErrorCode: 500, Message: "Internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			var got Resp
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestParseGRPCError(t *testing.T) {
	err := ParseGRPCError(pkgErrors.NewGRPCError(codes.NotFound, "EVENT_NOT_FOUND", "event not found"))
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "EVENT_NOT_FOUND - event not found", status.Convert(err).Message())

	assert.Equal(t, codes.Internal, status.Code(ParseGRPCError(errors.New("boom"))))
}
