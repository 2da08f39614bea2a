package server

import (
	"net/http"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/suggest"
)

type suggestRawRequest struct {
	ImageDataURI string `json:"imageDataUri"`
}

type suggestRawResponse struct {
	SuggestedText string `json:"suggestedText"`
}

type suggestFieldRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type suggestFieldResponse struct {
	SuggestedText string           `json:"suggestedText"`
	Brochure      content.Brochure `json:"brochure"`
}

// suggestRaw returns a suggestion for an image without touching the session.
func (s *Server) suggestRaw(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		writeError(w, r, ErrSuggestionsOff)
		return
	}
	var req suggestRawRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	text, err := s.suggester.Suggest(r.Context(), req.ImageDataURI)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestRawResponse{SuggestedText: text})
}

// suggestField describes the image at source and writes the text to target.
func (s *Server) suggestField(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		writeError(w, r, ErrSuggestionsOff)
		return
	}
	var req suggestFieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	// The model runs on a snapshot; only the target field is written back.
	_, text, err := suggest.Apply(r.Context(), s.suggester, s.session.Snapshot(), req.Source, req.Target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := s.session.Update(r.Context(), func(b content.Brochure) (content.Brochure, error) {
		return b.SetField(req.Target, text)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestFieldResponse{SuggestedText: text, Brochure: b})
}
