package controllers

import (
	"net/http"

	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/pkg/response"
)

// UploadController receives product image uploads.
type UploadController struct {
	uploads *services.UploadService
}

func NewUploadController(uploads *services.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

// Store accepts a multipart upload under the "file" field and returns the
// stored file's public URL.
func (c *UploadController) Store(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	result, err := c.uploads.Store(file, header)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Created(w, result)
}
