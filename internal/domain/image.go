package domain

import "time"

type Image struct {
	ID               string      `json:"id"`
	OriginalFilename string      `json:"original_filename"`
	OriginalSize     int64       `json:"original_size"`
	MimeType         string      `json:"mime_type"`
	Format           string      `json:"format"`
	Width            int         `json:"width"`
	Height           int         `json:"height"`
	Status           ImageStatus `json:"status"`
	OriginalPath     string      `json:"original_path"`
	Bucket           string      `json:"bucket"`
	CreatedAt        time.Time   `json:"created_at"`
}

// Thumbnail is one rendered spec of an image as stored in the bucket.
type Thumbnail struct {
	Spec        string `json:"spec"`
	Path        string `json:"path"`
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int64  `json:"size"`
}

type ImageStatus string

const (
	StatusUploaded   ImageStatus = "uploaded"
	StatusProcessing ImageStatus = "processing"
	StatusCompleted  ImageStatus = "completed"
	StatusFailed     ImageStatus = "failed"
	StatusDeleted    ImageStatus = "deleted"
)

var AllowedMimeTypes = map[string]bool{
	"image/bmp":   true,
	"image/gif":   true,
	"image/jpeg":  true,
	"image/jpg":   true,
	"image/pjpeg": true,
	"image/pjpg":  true,
	"image/png":   true,
	"image/x-png": true,
	"image/webp":  true,
}

var AllowedExtensions = map[string]bool{
	"bmp":   true,
	"gif":   true,
	"jpeg":  true,
	"jpg":   true,
	"pjpg":  true,
	"pjpeg": true,
	"png":   true,
	"webp":  true,
}

// Object is a stored file as reported by the object store.
type Object struct {
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// ImageState is what the API knows about an uploaded image.
type ImageState struct {
	ID         string      `json:"id"`
	Status     ImageStatus `json:"status"`
	Original   Object      `json:"original"`
	Thumbnails []Object    `json:"thumbnails"`
	Error      string      `json:"error,omitempty"`
}
