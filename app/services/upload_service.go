package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/skbags/atelier/pkg/apperr"
	"github.com/skbags/atelier/pkg/metrics"
	"github.com/skbags/atelier/pkg/storage"
)

// maxUploadSize caps a single image upload at 8 MiB.
const maxUploadSize = 8 << 20

// allowedImageTypes maps accepted content types to the stored extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadResult describes a stored file.
type UploadResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	Disk     string `json:"disk"`
}

// UploadService stores product images on the uploads disk.
type UploadService struct{}

func NewUploadService() *UploadService {
	return &UploadService{}
}

// Store saves one uploaded image under a fresh random name and returns its
// public URL. Only image content types are accepted; the original filename
// is discarded apart from logging.
func (s *UploadService) Store(file multipart.File, header *multipart.FileHeader) (UploadResult, error) {
	if header.Size > maxUploadSize {
		return UploadResult{}, apperr.Validationf("File too large. Maximum size is %d MB", maxUploadSize>>20)
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		// Some clients omit the content type; fall back to the extension.
		ext = strings.ToLower(filepath.Ext(header.Filename))
		if !allowedExt(ext) {
			return UploadResult{}, apperr.Validationf("File must be an image (jpeg, png, gif, webp)")
		}
	}

	name := uuid.New().String() + ext
	path := "products/" + name

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return UploadResult{}, apperr.Wrap(err, "upload: read file")
	}
	if int64(len(content)) > maxUploadSize {
		return UploadResult{}, apperr.Validationf("File too large. Maximum size is %d MB", maxUploadSize>>20)
	}

	disk := storage.Uploads()
	if err := disk.Put(path, content); err != nil {
		// S3 outages should not block product management.
		if disk != storage.Local() {
			disk = storage.Local()
			if err := disk.Put(path, content); err != nil {
				return UploadResult{}, apperr.Wrap(err, "upload: store file")
			}
		} else {
			return UploadResult{}, apperr.Wrap(err, "upload: store file")
		}
	}

	diskName := "local"
	if disk != storage.Local() {
		diskName = "s3"
	}
	metrics.UploadsStored.WithLabelValues(diskName).Inc()

	return UploadResult{
		Filename: name,
		Path:     path,
		URL:      disk.URL(path),
		Size:     int64(len(content)),
		Disk:     diskName,
	}, nil
}

func allowedExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

// Delete removes a previously stored product image by filename.
func (s *UploadService) Delete(filename string) error {
	if filename == "" || strings.ContainsAny(filename, "/\\") {
		return apperr.Validationf("Invalid filename")
	}
	path := fmt.Sprintf("products/%s", filename)
	return storage.Uploads().Delete(path)
}
