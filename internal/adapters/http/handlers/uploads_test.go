package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"civicfix/internal/core/services"
	"civicfix/internal/pkg/response"
	"civicfix/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMediaStore struct {
	uploads int
}

func (s *fakeMediaStore) Upload(_ context.Context, file io.Reader, filename, _ string) (upload.Result, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return upload.Result{}, err
	}
	s.uploads++
	return upload.Result{SecureURL: "https://cdn/" + filename, OriginalName: filename}, nil
}

func newUploadApp(store services.MediaStore, maxFiles int, allowed func(string) bool) *fiber.App {
	app := fiber.New(fiber.Config{BodyLimit: 64 << 20})
	app.Post("/upload", func(c *fiber.Ctx) error {
		results, err := uploadFormFiles(c, store, "media", services.FolderComplaints, maxFiles, allowed)
		if err != nil {
			return response.FromDomainError(c, err)
		}
		return response.Success(c, "", len(results))
	})
	return app
}

func multipartRequest(t *testing.T, files map[string][]byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("media", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadFormFiles(t *testing.T) {
	store := &fakeMediaStore{}
	app := newUploadApp(store, 10, upload.AllowedMedia)

	resp, err := app.Test(multipartRequest(t, map[string][]byte{
		"photo.jpg": []byte("x"),
		"clip.mp4":  []byte("y"),
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, store.uploads)
}

func TestUploadFormFilesEnforcesFileCap(t *testing.T) {
	store := &fakeMediaStore{}
	app := newUploadApp(store, 2, upload.AllowedImage)

	files := map[string][]byte{}
	for i := 0; i < 3; i++ {
		files[fmt.Sprintf("proof%d.jpg", i)] = []byte("x")
	}

	resp, err := app.Test(multipartRequest(t, files), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, store.uploads)
}

func TestUploadFormFilesRejectsOversized(t *testing.T) {
	store := &fakeMediaStore{}
	app := newUploadApp(store, 10, upload.AllowedMedia)

	resp, err := app.Test(multipartRequest(t, map[string][]byte{
		"big.jpg": make([]byte, maxUploadBytes+1),
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, store.uploads)
}

func TestUploadFormFilesRejectsDisallowedFormat(t *testing.T) {
	store := &fakeMediaStore{}
	// Evidence uploads accept images only.
	app := newUploadApp(store, 10, upload.AllowedImage)

	resp, err := app.Test(multipartRequest(t, map[string][]byte{
		"clip.mp4": []byte("x"),
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, store.uploads)
}

func TestUploadFormFilesNoMultipartBody(t *testing.T) {
	store := &fakeMediaStore{}
	app := newUploadApp(store, 10, upload.AllowedMedia)

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, store.uploads)
}
