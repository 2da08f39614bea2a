package server

import (
	"fmt"
	"net/http"
	"strconv"

	brochure "github.com/alnah/go-brochure"
)

type planResponse struct {
	PageCount int                       `json:"pageCount"`
	Pages     []brochure.PageDescriptor `json:"pages"`
}

type generatePDFRequest struct {
	HTMLContent string `json:"html_content"`
	Title       string `json:"title,omitempty"`
}

func (s *Server) plan(w http.ResponseWriter, _ *http.Request) {
	pages := s.engine.Plan(s.session.Snapshot())
	writeJSON(w, http.StatusOK, planResponse{PageCount: len(pages), Pages: pages})
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	mode, err := s.modeParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := s.engine.Preview(r.Context(), s.session.Snapshot(), mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// exportPDF renders the current brochure and prints it.
func (s *Server) exportPDF(w http.ResponseWriter, r *http.Request) {
	mode, err := s.modeParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.engine.Export(r.Context(), s.session.Snapshot(), brochure.ExportOptions{
		Title: r.URL.Query().Get("title"),
		Mode:  mode,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePDF(w, res)
}

// generatePDF prints caller-supplied markup. The markup is sanitized since
// it did not come from the renderer.
func (s *Server) generatePDF(w http.ResponseWriter, r *http.Request) {
	var req generatePDFRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.HTMLContent == "" {
		writeError(w, r, ErrMissingHTML)
		return
	}
	res, err := s.engine.ExportHTML(r.Context(), req.HTMLContent, brochure.ExportOptions{
		Title:    req.Title,
		Sanitize: true,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePDF(w, res)
}

func (s *Server) modeParam(r *http.Request) (brochure.ViewMode, error) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return s.previewMode, nil
	}
	mode, err := brochure.ParseViewMode(raw)
	if err != nil {
		return "", fmt.Errorf("%w: mode", err)
	}
	return mode, nil
}

func writePDF(w http.ResponseWriter, res *brochure.ExportResult) {
	filename := res.Filename
	if filename == "" {
		filename = brochure.DefaultFilename
	}
	w.Header().Set("Content-Type", brochure.ContentTypePDF)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PDF)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}
