package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alnah/go-brochure/content"
)

type fieldRequest struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

type valueRequest struct {
	Value string `json:"value"`
}

// fieldsResponse lists every path the edit routes accept.
type fieldsResponse struct {
	Fields          []string `json:"fields"`
	Lists           []string `json:"lists"`
	AmenityFields   []string `json:"amenityFields"`
	FloorPlanFields []string `json:"floorPlanFields"`
}

type itemResponse struct {
	ID       string           `json:"id"`
	Brochure content.Brochure `json:"brochure"`
}

func (s *Server) getBrochure(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) putBrochure(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := content.Unmarshal(raw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Replace(r.Context(), b))
}

func (s *Server) listFields(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, fieldsResponse{
		Fields:          content.Fields(),
		Lists:           content.ListFields(),
		AmenityFields:   content.AmenityFields(),
		FloorPlanFields: content.FloorPlanFields(),
	})
}

func (s *Server) resetBrochure(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Reset(r.Context()))
}

// populate validates a payload's structure without storing it.
func (s *Server) populate(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := content.Validate(raw); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (s *Server) setField(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.SetField(req.Path, req.Value)
	})
}

func (s *Server) setListItem(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req valueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	path := chi.URLParam(r, "path")
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.SetListItem(path, index, req.Value)
	})
}

func (s *Server) appendListItem(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	path := chi.URLParam(r, "path")
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.AppendListItem(path, req.Value)
	})
}

func (s *Server) removeListItem(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	path := chi.URLParam(r, "path")
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.RemoveListItem(path, index)
	})
}

// edit applies fn to the session and writes the resulting brochure.
func (s *Server) edit(w http.ResponseWriter, r *http.Request, fn func(content.Brochure) (content.Brochure, error)) {
	b, err := s.session.Update(r.Context(), fn)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func indexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q is not an integer", ErrBadRequest, raw)
	}
	return index, nil
}
