package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// flexID accepts ids sent either as JSON strings or numbers (clients send
// the root parent as 0).
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type createFileRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID flexID `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

type userRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *HTTPServer) postFile(w http.ResponseWriter, r *http.Request) {
	var req createFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	rec, err := s.files.CreateFile(r.Context(), userIDFrom(r.Context()), services.CreateFileInput{
		Name:     req.Name,
		Kind:     models.Kind(req.Type),
		ParentID: string(req.ParentID),
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		// An unknown parent is a bad request, not a missing resource.
		if errors.Is(err, common.ErrorNotFound) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.Message(err, "parent not found")})
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *HTTPServer) getFile(w http.ResponseWriter, r *http.Request) {
	rec, err := s.files.GetFile(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *HTTPServer) listFiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 0
	}

	recs, err := s.files.ListFiles(r.Context(), userIDFrom(r.Context()), q.Get("parentId"), page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*models.FileRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *HTTPServer) publish(w http.ResponseWriter, r *http.Request) {
	s.setPublic(w, r, true)
}

func (s *HTTPServer) unpublish(w http.ResponseWriter, r *http.Request) {
	s.setPublic(w, r, false)
}

func (s *HTTPServer) setPublic(w http.ResponseWriter, r *http.Request, value bool) {
	rec, err := s.files.SetPublic(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *HTTPServer) getFileData(w http.ResponseWriter, r *http.Request) {
	content, err := s.files.ResolveContent(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), r.URL.Query().Get("size"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", content.ContentType)
	http.ServeFile(w, r, content.Path)
}

func (s *HTTPServer) postUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) getConnect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	token, err := s.users.Connect(r.Context(), email, password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) getDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Disconnect(r.Context(), r.Header.Get(common.TokenHeaderName)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Me(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.status.Status(r.Context()))
}

func (s *HTTPServer) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.users.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
