package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/blueprintmrk/graphy/pkg/chartio"
	"github.com/blueprintmrk/graphy/pkg/errors"
	"github.com/blueprintmrk/graphy/pkg/pipeline"
)

// renderRequest is the body of POST /v1/render.
type renderRequest struct {
	Definition *chartio.Definition `json:"definition"`
	Options    pipeline.Options    `json:"options"`
}

// renderResponse is the body of a successful render.
type renderResponse struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
	Hash        string `json:"hash,omitempty"`
	CacheHit    bool   `json:"cache_hit"`
}

// errorResponse is the body of a failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, req *http.Request) {
	var body renderRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Definition == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "definition is required"))
		return
	}
	s.executeRender(w, req, body.Definition, body.Options)
}

func (s *Server) handleChartRender(w http.ResponseWriter, req *http.Request) {
	def, err := s.store.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var opts pipeline.Options
	if req.ContentLength > 0 {
		var body struct {
			Options pipeline.Options `json:"options"`
		}
		if err := decodeJSON(req, &body); err != nil {
			writeError(w, err)
			return
		}
		opts = body.Options
	}
	s.executeRender(w, req, def, opts)
}

func (s *Server) executeRender(w http.ResponseWriter, req *http.Request, def *chartio.Definition, opts pipeline.Options) {
	opts.Logger = s.logger
	result, err := s.runner.Execute(req.Context(), def, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderResponse{
		ContentType: result.Artifact.ContentType,
		Data:        result.Artifact.Data,
		Hash:        result.DefinitionHash,
		CacheHit:    result.CacheInfo.RenderHit,
	})
}

func (s *Server) handleChartCreate(w http.ResponseWriter, req *http.Request) {
	var def chartio.Definition
	if err := decodeJSON(req, &def); err != nil {
		writeError(w, err)
		return
	}
	created, err := s.store.Create(req.Context(), &def)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleChartList(w http.ResponseWriter, req *http.Request) {
	charts, err := s.store.List(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charts)
}

func (s *Server) handleChartGet(w http.ResponseWriter, req *http.Request) {
	def, err := s.store.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (s *Server) handleChartUpdate(w http.ResponseWriter, req *http.Request) {
	var def chartio.Definition
	if err := decodeJSON(req, &def); err != nil {
		writeError(w, err)
		return
	}
	def.ID = chi.URLParam(req, "id")
	updated, err := s.store.Update(req.Context(), &def)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleChartDelete(w http.ResponseWriter, req *http.Request) {
	if err := s.store.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// JSON helpers
// =============================================================================

func decodeJSON(req *http.Request, v any) error {
	dec := json.NewDecoder(req.Body)
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code errors.Code) int {
	switch {
	case code == "":
		return http.StatusInternalServerError
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound,
		code == errors.ErrCodeChartNotFound,
		code == errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case code == errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}
