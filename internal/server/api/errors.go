package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/filesmanager/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status code and an {"error": ...} body.
// Unclassified errors are logged and reported as a generic 500.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.Message(err, "bad request")})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: common.Message(err, "not found")})
	case errors.Is(err, common.ErrorUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: common.ErrorInternal.Error()})
	}
}
