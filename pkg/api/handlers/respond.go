package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cbodonnell/fishbowl/pkg/game"
	"github.com/cbodonnell/fishbowl/pkg/game/types"
	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/messages"
	"github.com/cbodonnell/fishbowl/pkg/queue"
	"github.com/cbodonnell/fishbowl/pkg/repositories"
)

// maxBodyBytes bounds every decoded request body
const maxBodyBytes = 1 << 20

// StatusForError maps an error to the HTTP status it is reported with.
func StatusForError(err error) int {
	switch {
	case repositories.IsNotFound(err), game.IsGameNotFound(err):
		return http.StatusNotFound
	case types.IsValidation(err):
		return http.StatusBadRequest
	case repositories.IsConfiguration(err), errors.Is(err, queue.ErrQueueFull):
		return http.StatusServiceUnavailable
	case repositories.IsBackend(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusForError(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed: %v", err)
	} else {
		log.Debug("Request rejected: %v", err)
	}
	writeJSON(w, status, &messages.ServerError{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response: %v", err)
	}
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched
// when allowEmpty is set.
func decodeJSON(r *http.Request, dst interface{}, allowEmpty bool) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return &types.ErrValidation{Field: "body", Reason: err.Error()}
	}
	return nil
}
