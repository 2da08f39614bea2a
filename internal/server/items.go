package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alnah/go-brochure/content"
)

type itemFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) addAmenity(w http.ResponseWriter, r *http.Request) {
	var id string
	b, err := s.session.Update(r.Context(), func(b content.Brochure) (content.Brochure, error) {
		var out content.Brochure
		out, id = b.AddAmenity()
		return out, nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, itemResponse{ID: id, Brochure: b})
}

func (s *Server) updateAmenity(w http.ResponseWriter, r *http.Request) {
	var req itemFieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.UpdateAmenity(id, req.Field, req.Value)
	})
}

func (s *Server) removeAmenity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.RemoveAmenity(id)
	})
}

func (s *Server) addFloorPlan(w http.ResponseWriter, r *http.Request) {
	var id string
	b, err := s.session.Update(r.Context(), func(b content.Brochure) (content.Brochure, error) {
		var out content.Brochure
		out, id = b.AddFloorPlan()
		return out, nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, itemResponse{ID: id, Brochure: b})
}

func (s *Server) updateFloorPlan(w http.ResponseWriter, r *http.Request) {
	var req itemFieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.UpdateFloorPlan(id, req.Field, req.Value)
	})
}

func (s *Server) removeFloorPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.RemoveFloorPlan(id)
	})
}

func (s *Server) setFeature(w http.ResponseWriter, r *http.Request) {
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
	id := chi.URLParam(r, "id")
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.SetFloorPlanFeature(id, index, req.Value)
	})
}

func (s *Server) appendFeature(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.AppendFloorPlanFeature(id, req.Value)
	})
}

func (s *Server) removeFeature(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	s.edit(w, r, func(b content.Brochure) (content.Brochure, error) {
		return b.RemoveFloorPlanFeature(id, index)
	})
}
