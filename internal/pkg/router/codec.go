package router

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/otpgate/internal/pkg/result"
)

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type successResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// StatusCode maps a Result to its HTTP status.
func StatusCode(r result.Result[result.None]) int {
	return result.Match(r, result.Cases[result.None, int]{
		Success: func(result.None) int {
			return http.StatusOK
		},
		ValidationFailed: func([]result.ValidationError) int {
			return http.StatusBadRequest
		},
		PreconditionFailed: func(reason result.PreconditionFailedReason, _ string) int {
			switch reason {
			case result.PreconditionNotFound:
				return http.StatusNotFound
			case result.PreconditionConflict:
				return http.StatusConflict
			default:
				return http.StatusPreconditionFailed
			}
		},
		DependencyFailed: func(reason result.DependencyFailedReason, _ string) int {
			if reason == result.DependencyUnavailable {
				return http.StatusBadGateway
			}
			return http.StatusGatewayTimeout
		},
		Unauthorized: func(string) int {
			return http.StatusUnauthorized
		},
	})
}

func encodeError(ctx context.Context, w http.ResponseWriter, err error) {
	var rerr *result.Error
	if !errors.As(err, &rerr) {
		slog.ErrorContext(ctx, "unhandled error from endpoint", "error", err)
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	res := rerr.Result()
	writeJSON(w, errorResponse{
		Message: res.Message(),
		Errors:  result.ErrorDictionary(res.Errors()),
	}, StatusCode(res))
}

func encodeSuccess(_ context.Context, w http.ResponseWriter, resp any) {
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	msg := "The operation was successful."
	if m, ok := resp.(interface{ Message() string }); ok {
		msg = m.Message()
	}

	writeJSON(w, successResponse{Message: msg, Data: resp}, http.StatusOK)
}
