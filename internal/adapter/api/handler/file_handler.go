package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"cidadealerta/internal/infrastructure/storage"
	"cidadealerta/pkg/errors"
	"cidadealerta/pkg/logger"
	"cidadealerta/pkg/response"
)

const maxPhotoSize = 5 * 1024 * 1024

type FileHandler struct {
	storageClient *storage.CloudStorageClient
}

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
	}
}

// UploadPhoto stores a report photo and returns its public URL, which the
// client passes back as the issue's image reference.
func (h *FileHandler) UploadPhoto(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > maxPhotoSize {
		return response.Error(c, errors.BadRequest(
			fmt.Sprintf("File size exceeds maximum allowed (%dMB)", maxPhotoSize/(1024*1024)), nil))
	}

	contentType := file.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
	default:
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	url, err := h.storageClient.UploadImage(c.Request().Context(), src, contentType)
	if err != nil {
		logger.Error("Photo upload failed: %v", err)
		return response.Error(c, errors.Internal("Failed to store photo", err))
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}
