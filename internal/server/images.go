package server

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/imageutil"
	"github.com/alnah/go-brochure/internal/logging"
)

// multipart overhead allowed on top of the image itself
const uploadSlack = 1 << 20

type uploadResponse struct {
	DataURI  string           `json:"dataUri"`
	Brochure content.Brochure `json:"brochure"`
}

// uploadImage optimizes the multipart "file" part and stores it as a data
// URI in the image field named by "path", or in the image of the item named
// by "amenityId" or "floorPlanId".
func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imageutil.MaxInputSize+uploadSlack)
	if err := r.ParseMultipartForm(imageutil.MaxInputSize); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	apply, err := uploadTarget(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: missing file part: %v", ErrBadRequest, err))
		return
	}
	defer func() { _ = file.Close() }()

	uri, err := imageutil.EncodeDataURI(file, s.images)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Debug("image optimized",
		zap.String("filename", header.Filename),
		zap.Int64("upload_bytes", header.Size),
		zap.Int("data_uri_bytes", len(uri)),
	)

	b, err := s.session.Update(r.Context(), func(b content.Brochure) (content.Brochure, error) {
		return apply(b, uri)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{DataURI: uri, Brochure: b})
}

type imageSetter func(b content.Brochure, uri string) (content.Brochure, error)

func uploadTarget(r *http.Request) (imageSetter, error) {
	path := strings.TrimSpace(r.FormValue("path"))
	amenityID := strings.TrimSpace(r.FormValue("amenityId"))
	floorPlanID := strings.TrimSpace(r.FormValue("floorPlanId"))

	set := 0
	for _, v := range []string{path, amenityID, floorPlanID} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: exactly one of path, amenityId or floorPlanId is required", ErrBadRequest)
	}

	switch {
	case path != "":
		if !content.IsImageField(path) {
			return nil, fmt.Errorf("%w: %q is not an image field", content.ErrUnknownField, path)
		}
		return func(b content.Brochure, uri string) (content.Brochure, error) {
			return b.SetField(path, uri)
		}, nil
	case amenityID != "":
		return func(b content.Brochure, uri string) (content.Brochure, error) {
			return b.UpdateAmenity(amenityID, content.AmenityImageURL, uri)
		}, nil
	default:
		return func(b content.Brochure, uri string) (content.Brochure, error) {
			return b.UpdateFloorPlan(floorPlanID, content.FloorPlanImage, uri)
		}, nil
	}
}
