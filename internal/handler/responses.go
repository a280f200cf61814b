package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/osse101/GiftMarket_Go/internal/economy"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/messages"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// OperationResponse is a localised outcome plus the operation's result
type OperationResponse struct {
	Message string `json:"message"`
	*economy.Result
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a plain JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and sends its localised message
func (h *Handlers) respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgOperationFailed, "operation", op, "error", err)
	} else {
		log.Warn(LogMsgOperationFailed, "operation", op, "error", err)
	}

	lang := h.lang(r)
	respondJSON(w, status, ErrorResponse{
		Error: h.messages.Error(lang, err),
		Code:  string(messages.KeyForError(err)),
	})
}

// respondResult sends a completed result with its success message, or a
// partially failed result as 207 Multi-Status
func (h *Handlers) respondResult(w http.ResponseWriter, r *http.Request, op string, res *economy.Result, key messages.Key, args ...interface{}) {
	lang := h.lang(r)
	if res.Partial() {
		logger.FromContext(r.Context()).Warn(LogMsgOperationPartial, "operation", op, "failed_steps", res.FailedSteps)
		respondJSON(w, http.StatusMultiStatus, OperationResponse{
			Message: h.messages.Text(lang, messages.KeyPartiallyFailed),
			Result:  res,
		})
		return
	}
	respondJSON(w, http.StatusOK, OperationResponse{
		Message: h.messages.Text(lang, key, args...),
		Result:  res,
	})
}
