package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"admin-dashboard/internal/catalog"
	"admin-dashboard/internal/collection"
	"admin-dashboard/internal/gateway"
	"admin-dashboard/internal/upload"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fail maps the error taxonomy onto an HTTP status and writes the
// response. Backend failures pass their status through; local errors
// (busy, not confirmed, validation) never made it to the network.
func fail(w http.ResponseWriter, err error) {
	var httpErr *gateway.HTTPError
	var valErr *upload.ValidationError

	switch {
	case errors.Is(err, collection.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, collection.ErrNotConfirmed):
		writeError(w, http.StatusConflict, "confirmation required")
	case errors.Is(err, catalog.ErrUnsupported):
		writeError(w, http.StatusMethodNotAllowed, err.Error())
	case errors.As(err, &valErr):
		writeError(w, http.StatusBadRequest, valErr.Error())
	case errors.As(err, &httpErr):
		writeError(w, httpErr.StatusCode, httpErr.Message)
	default:
		// NetworkError, ParseError, anything else upstream.
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
