package services

import (
	"context"
	"io"
	"time"

	"civicfix/internal/pkg/upload"
)

// Media store folders
const (
	FolderComplaints = "smartcity/complaints"
	FolderEvidence   = "smartcity/resolution-proof"
)

// MediaStore accepts a file stream and returns a stable retrieval URI plus
// classification hints. The core only consumes the returned result; storage
// mechanics belong to the adapter.
type MediaStore interface {
	Upload(ctx context.Context, file io.Reader, filename, folder string) (upload.Result, error)
}

// OTPEntry is a single pending OTP challenge.
type OTPEntry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

// OTPStore persists pending OTP challenges keyed by phone number.
// Get returns (nil, nil) when no challenge exists.
type OTPStore interface {
	Put(ctx context.Context, phone string, entry *OTPEntry) error
	Get(ctx context.Context, phone string) (*OTPEntry, error)
	Delete(ctx context.Context, phone string) error
}
