package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/kryptos/pkg/buildinfo"
	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/manifest"
	"github.com/matzehuels/kryptos/pkg/scytale"
	"github.com/matzehuels/kryptos/pkg/seeds"
	"github.com/matzehuels/kryptos/pkg/workbench"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// =============================================================================
// Scytale
// =============================================================================

type scytaleResponse struct {
	Diameter  int           `json:"diameter"`
	Rows      int           `json:"rows"`
	Grid      *scytale.Grid `json:"grid"`
	ByRows    string        `json:"by_rows"`
	ByColumns string        `json:"by_columns"`
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, req workbench.Request) {
	res, err := s.runner.Run(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newScytaleResponse(res))
}

func newScytaleResponse(res *workbench.Result) scytaleResponse {
	return scytaleResponse{
		Diameter:  res.Stats.Diameter,
		Rows:      res.Stats.Rows,
		Grid:      res.Grid,
		ByRows:    res.Readout.ByRows,
		ByColumns: res.Readout.ByColumns,
	}
}

func (s *Server) handleScytaleQuery(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, workbench.FromQuery(r.URL.Query()))
}

func (s *Server) handleScytaleJSON(w http.ResponseWriter, r *http.Request) {
	var req workbench.Request
	if err := decodeJSON(w, r, s.opts.MaxBodyBytes, &req); err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, req)
}

type shareResponse struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}

func (s *Server) handleShareSave(w http.ResponseWriter, r *http.Request) {
	var req workbench.Request
	if err := decodeJSON(w, r, s.opts.MaxBodyBytes, &req); err != nil {
		writeError(w, err)
		return
	}
	key, err := s.runner.Save(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := shareResponse{Key: key}
	if s.opts.BaseURL != "" {
		if link, err := workbench.Link(s.opts.BaseURL, req); err == nil {
			resp.URL = link
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleShareRun(w http.ResponseWriter, r *http.Request) {
	req, err := s.runner.Load(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, req)
}

// =============================================================================
// Seeds
// =============================================================================

func (s *Server) handleSeeds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]seeds.Seed{"seeds": seeds.All()})
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	seed, ok := seeds.Lookup(key)
	if !ok {
		writeError(w, notFound("unknown seed %q", key))
		return
	}
	writeJSON(w, http.StatusOK, seed)
}

// =============================================================================
// Key-value documents
// =============================================================================

func (s *Server) handleKVGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := errors.ValidateKey(key); err != nil {
		writeError(w, err)
		return
	}
	data, ok, err := s.store.Get(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, notFound("Not found"))
		return
	}
	if !json.Valid(data) {
		s.logger.Error("stored value is not valid JSON", "key", key)
		writeError(w, errors.New(errors.ErrCodeInternal, "stored value is not valid JSON"))
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}

func (s *Server) handleKVPost(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r, s.opts.MaxBodyBytes)
	if err != nil {
		writeError(w, err)
		return
	}
	if !json.Valid(data) {
		writeError(w, errors.New(errors.ErrCodeInvalidJSON, "body must be a JSON document"))
		return
	}
	key := uuid.NewString()
	if err := s.store.Set(r.Context(), key, data, s.opts.KVTTL); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

// =============================================================================
// Images
// =============================================================================

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	if s.manifest == nil {
		writeError(w, errors.New(errors.ErrCodeInternal, "Failed to load image manifest"))
		return
	}

	path := chi.URLParam(r, "*")
	if err := errors.ValidatePath(path); err != nil {
		writeError(w, err)
		return
	}
	var segments []string
	if path != "" {
		segments = strings.Split(path, "/")
	}

	sub, err := s.manifest.Lookup(segments)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"images": sub})
	case stderrors.Is(err, manifest.ErrNotFound):
		writeError(w, notFound("No images found at path: %s", path))
	default:
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "Invalid or missing image manifest"))
	}
}
