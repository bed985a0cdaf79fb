package handlers

import (
	"fmt"

	"civicfix/internal/core/domain"
	"civicfix/internal/core/services"
	"civicfix/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
)

// maxUploadBytes caps a single uploaded file at 10 MB
const maxUploadBytes = 10 << 20

// uploadFormFiles streams multipart files from a form field to the media
// store and collects the upload results. Zero files is not an error. The
// whole batch is rejected before anything is stored when it exceeds
// maxFiles, when a file is over the size cap, or when a filename falls
// outside the allowed format set.
func uploadFormFiles(c *fiber.Ctx, store services.MediaStore, field, folder string, maxFiles int, allowed func(string) bool) ([]upload.Result, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart request: treat as no files
		return nil, nil
	}

	files := form.File[field]
	if len(files) > maxFiles {
		return nil, fmt.Errorf("%w: at most %d files per upload", domain.ErrValidation, maxFiles)
	}
	for _, fileHeader := range files {
		if fileHeader.Size > maxUploadBytes {
			return nil, fmt.Errorf("%w: %s exceeds the 10 MB limit", domain.ErrValidation, fileHeader.Filename)
		}
		if !allowed(fileHeader.Filename) {
			return nil, fmt.Errorf("%w: unsupported file format: %s", domain.ErrValidation, fileHeader.Filename)
		}
	}

	var results []upload.Result
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}

		result, err := store.Upload(c.Context(), file, fileHeader.Filename, folder)
		file.Close()
		if err != nil {
			return nil, err
		}

		result.MimeType = fileHeader.Header.Get("Content-Type")
		results = append(results, result)
	}

	return results, nil
}
