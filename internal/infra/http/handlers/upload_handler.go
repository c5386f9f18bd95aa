package handlers

import (
	"io"
	"net/http"

	"github.com/udhay1409/vinushree-travels-api/internal/infra/integration/imagekit"
)

const maxUploadBytes = 10 << 20 // 10 MB

type MediaUploader interface {
	Upload(fileName string, file io.Reader) (*imagekit.UploadOutput, error)
}

type UploadHandler struct {
	uploader MediaUploader
}

func NewUploadHandler(uploader MediaUploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// Handle (POST /api/admin/upload) relays a multipart file to the media
// host and returns the hosted URL.
func (h *UploadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Message: "media host is not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid multipart upload"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "file is required"})
		return
	}
	defer file.Close()

	output, err := h.uploader.Upload(header.Filename, file)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: "upload to media host failed"})
		return
	}

	writeJSON(w, http.StatusCreated, output)
}
