// Package storage provides adapters for external stores: the Cloudinary
// media store and the Redis OTP store.
package storage

import (
	"context"
	"fmt"
	"io"

	"civicfix/internal/config"
	"civicfix/internal/core/domain"
	"civicfix/internal/core/services"
	"civicfix/internal/pkg/upload"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// folderFormats restricts what Cloudinary accepts per folder: resolution
// evidence is images only, complaint media also admits the video set.
var folderFormats = map[string]api.CldAPIArray{
	services.FolderComplaints: {"jpg", "jpeg", "png", "gif", "mp4", "mov", "avi"},
	services.FolderEvidence:   {"jpg", "jpeg", "png", "gif"},
}

// CloudinaryStore uploads media to Cloudinary and returns retrieval URIs
// with classification hints. Resource type detection is delegated to
// Cloudinary ("auto").
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStore creates a Cloudinary media store from configuration
func NewCloudinaryStore(cfg config.CloudinaryConfig) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryStore{client: client}, nil
}

// Upload streams a file to Cloudinary. Store failures surface as upstream
// errors and are not retried.
func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, filename, folder string) (upload.Result, error) {
	params := uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	}
	if formats, ok := folderFormats[folder]; ok {
		params.AllowedFormats = formats
	}

	resp, err := s.client.Upload.Upload(ctx, file, params)
	if err != nil {
		return upload.Result{}, fmt.Errorf("%w: cloudinary upload: %v", domain.ErrUpstream, err)
	}

	return upload.Result{
		URL:          resp.URL,
		SecureURL:    resp.SecureURL,
		ResourceType: resp.ResourceType,
		OriginalName: filename,
	}, nil
}
