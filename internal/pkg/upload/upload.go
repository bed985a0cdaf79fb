// Package upload classifies externally-produced upload results into image
// and video buckets. The media store does the actual storage; this package
// only consumes the URIs and hints it returns.
package upload

import (
	"path/filepath"
	"strings"
)

// Result is a single upload result returned by the media store.
type Result struct {
	URL          string
	SecureURL    string
	Path         string
	ResourceType string
	MimeType     string
	OriginalName string
}

// videoExtensions is the fixed extension set treated as video when no
// stronger hint is present.
var videoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".avi": true,
}

// imageExtensions is the fixed extension set accepted as image uploads.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// AllowedImage reports whether a filename carries an accepted image
// extension. Resolution evidence admits only these.
func AllowedImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// AllowedMedia reports whether a filename carries an accepted image or
// video extension. Complaint media admits both sets.
func AllowedMedia(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return imageExtensions[ext] || videoExtensions[ext]
}

// ResolvedURL returns the first usable retrieval URI, preferring the
// secure variant. Empty means the item is dropped.
func (r Result) ResolvedURL() string {
	if r.SecureURL != "" {
		return r.SecureURL
	}
	if r.URL != "" {
		return r.URL
	}
	return r.Path
}

// IsVideo reports whether a result should land in the video bucket:
// explicit resource-type tag, video/* content type, or a video extension.
func (r Result) IsVideo() bool {
	if strings.EqualFold(r.ResourceType, "video") {
		return true
	}
	if strings.HasPrefix(strings.ToLower(r.MimeType), "video/") {
		return true
	}
	return videoExtensions[strings.ToLower(filepath.Ext(r.OriginalName))]
}

// Partition splits upload results into image and video URI lists.
// Items with no resolvable URI are silently dropped; the enclosing
// operation succeeds with whatever classified.
func Partition(results []Result) (images, videos []string) {
	for _, r := range results {
		url := r.ResolvedURL()
		if url == "" {
			continue
		}
		if r.IsVideo() {
			videos = append(videos, url)
		} else {
			images = append(images, url)
		}
	}
	return images, videos
}

// URLs flattens upload results into a single URI list, dropping items
// with no resolvable URI. Used for resolution evidence, which the media
// store already restricts to images.
func URLs(results []Result) []string {
	var urls []string
	for _, r := range results {
		if url := r.ResolvedURL(); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
