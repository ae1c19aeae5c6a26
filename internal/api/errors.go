package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nerrad567/miele-bridge/internal/infrastructure/influxdb"
	"github.com/nerrad567/miele-bridge/internal/miele"
)

// errorResponse is the JSON envelope returned by every failing endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes an error envelope with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, message)
}

// classifyApplianceError maps an appliance client error to a response
// status, error envelope, and telemetry outcome tag.
//
// Appliance-side HTTP errors keep their original status, and the
// appliance's own body text (commonly a short reason for a 403) is
// carried inside the envelope so nothing the appliance reports is lost.
func classifyApplianceError(err error, host string) (int, errorResponse, string) {
	var statusErr *miele.StatusError

	switch {
	case errors.Is(err, miele.ErrInvalidHost):
		return http.StatusBadRequest,
			errorResponse{Error: fmt.Sprintf("Invalid host format provided: '%s'", host)},
			influxdb.OutcomeRejected

	case errors.Is(err, miele.ErrApplianceTimeout):
		return http.StatusGatewayTimeout,
			errorResponse{Error: "Appliance gateway is unavailable"},
			influxdb.OutcomeTimeout

	case errors.Is(err, miele.ErrApplianceUnavailable):
		return http.StatusServiceUnavailable,
			errorResponse{Error: "Appliance gateway is unavailable"},
			influxdb.OutcomeUnavailable

	case errors.As(err, &statusErr):
		message := strings.TrimSpace(statusErr.Body)
		if message == "" {
			message = fmt.Sprintf("appliance returned HTTP %d", statusErr.Code)
		}
		return statusErr.Code,
			errorResponse{Error: message},
			influxdb.OutcomeRejected

	case errors.Is(err, miele.ErrDecryptionFailed):
		return http.StatusInternalServerError,
			errorResponse{Error: "failed to decrypt appliance response"},
			influxdb.OutcomeDecrypt

	default:
		return http.StatusInternalServerError,
			errorResponse{Error: "internal server error"},
			influxdb.OutcomeUnavailable
	}
}
