package dto

import (
	"time"

	"image-thumbnailer/internal/domain"
	image_uc "image-thumbnailer/internal/usecase/image"
)

type UploadResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	Format    string    `json:"format"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type ImageResponse struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Original   domain.Object   `json:"original"`
	Thumbnails []domain.Object `json:"thumbnails"`
	Error      string          `json:"error,omitempty"`
}

type SpecResponse struct {
	Name            string `json:"name"`
	Rule            string `json:"rule"`
	Watermark       int    `json:"watermark,omitempty"`
	WatermarkOffset [2]int `json:"watermark_offset"`
	Format          string `json:"format,omitempty"`
}

type PlanResponse struct {
	Width  int                    `json:"width"`
	Height int                    `json:"height"`
	Plans  []image_uc.PlanPreview `json:"plans"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
