package domain

import "path"

type ThumbnailTask struct {
	ID           string `json:"id"`
	ImageID      string `json:"image_id"`
	OriginalPath string `json:"original_path"`
	Bucket       string `json:"bucket"`
	// Specs restricts the task to the named specs; empty means every configured spec.
	Specs []string `json:"specs,omitempty"`
}

type ThumbnailResult struct {
	TaskID     string      `json:"task_id"`
	ImageID    string      `json:"image_id"`
	Status     ImageStatus `json:"status"`
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
	Error      string      `json:"error,omitempty"`
}

const (
	KafkaTopicTasks   = "thumbnail-tasks"
	KafkaTopicResults = "thumbnail-results"
	KafkaGroupID      = "thumbnail-worker-group"
)

const (
	PathPrefixOriginal  = "originals/"
	PathPrefixThumbnail = "thumbnails/"
)

const DefaultMaxUploadSize = 32 << 20

func OriginalPath(imageID, ext string) string {
	return PathPrefixOriginal + imageID + "." + ext
}

func ThumbnailPath(imageID, spec, ext string) string {
	return path.Join(PathPrefixThumbnail, imageID, spec+"."+ext)
}

func ThumbnailPrefix(imageID string) string {
	return PathPrefixThumbnail + imageID + "/"
}
