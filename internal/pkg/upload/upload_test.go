package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVideo(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{"resource type tag", Result{ResourceType: "video"}, true},
		{"resource type case insensitive", Result{ResourceType: "VIDEO"}, true},
		{"video mime type", Result{MimeType: "video/mp4"}, true},
		{"image mime type", Result{MimeType: "image/png"}, false},
		{"mp4 extension", Result{OriginalName: "clip.mp4"}, true},
		{"mov extension", Result{OriginalName: "clip.MOV"}, true},
		{"avi extension", Result{OriginalName: "clip.avi"}, true},
		{"jpg extension", Result{OriginalName: "photo.jpg"}, false},
		{"no hints", Result{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.IsVideo())
		})
	}
}

func TestResolvedURL(t *testing.T) {
	assert.Equal(t, "https://s", Result{URL: "http://u", SecureURL: "https://s", Path: "p"}.ResolvedURL())
	assert.Equal(t, "http://u", Result{URL: "http://u", Path: "p"}.ResolvedURL())
	assert.Equal(t, "p", Result{Path: "p"}.ResolvedURL())
	assert.Equal(t, "", Result{}.ResolvedURL())
}

func TestPartition(t *testing.T) {
	results := []Result{
		{SecureURL: "https://cdn/a", ResourceType: "video"},
		{SecureURL: "https://cdn/b", MimeType: "image/png"},
		{SecureURL: "https://cdn/c", OriginalName: "clip.mov"},
	}

	images, videos := Partition(results)
	assert.Equal(t, []string{"https://cdn/b"}, images)
	assert.Equal(t, []string{"https://cdn/a", "https://cdn/c"}, videos)
}

func TestPartitionDropsUnresolvable(t *testing.T) {
	results := []Result{
		{MimeType: "image/png"},
		{SecureURL: "https://cdn/a", MimeType: "image/jpeg"},
	}

	images, videos := Partition(results)
	assert.Equal(t, []string{"https://cdn/a"}, images)
	assert.Empty(t, videos)
}

func TestAllowedImage(t *testing.T) {
	for _, name := range []string{"proof.jpg", "proof.JPEG", "proof.png", "proof.gif"} {
		assert.True(t, AllowedImage(name), name)
	}
	for _, name := range []string{"clip.mp4", "clip.mov", "clip.avi", "doc.pdf", "binary.exe", "noext"} {
		assert.False(t, AllowedImage(name), name)
	}
}

func TestAllowedMedia(t *testing.T) {
	for _, name := range []string{"photo.jpg", "photo.png", "clip.mp4", "clip.MOV", "clip.avi"} {
		assert.True(t, AllowedMedia(name), name)
	}
	for _, name := range []string{"doc.pdf", "binary.exe", "archive.zip", "noext"} {
		assert.False(t, AllowedMedia(name), name)
	}
}

func TestURLs(t *testing.T) {
	results := []Result{
		{SecureURL: "https://cdn/a"},
		{},
		{URL: "http://cdn/b"},
	}

	assert.Equal(t, []string{"https://cdn/a", "http://cdn/b"}, URLs(results))
}
