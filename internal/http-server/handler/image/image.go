package image

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"image-thumbnailer/internal/domain"
	"image-thumbnailer/internal/http-server/handler/image/dto"
	"image-thumbnailer/internal/thumbnail"
	image_uc "image-thumbnailer/internal/usecase/image"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const (
	maxMemory = 32 << 20
)

type ImageHandler struct {
	usecase       imageUsecase
	validate      *validator.Validate
	logger        *zlog.Zerolog
	maxUploadSize int64
}

func NewImageHandler(usecase imageUsecase, maxUploadSize int64, logger *zlog.Zerolog) *ImageHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = domain.DefaultMaxUploadSize
	}
	return &ImageHandler{
		usecase:       usecase,
		validate:      validator.New(),
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "File too large", nil)
			return
		}
		h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
		h.respondError(w, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn().Err(err).Msg("File not found in request")
		h.respondError(w, http.StatusBadRequest, "File is required", nil)
		return
	}
	defer file.Close()

	req := dto.UploadRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Specs:       splitList(r.FormValue("specs")),
	}

	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid upload", err)
		return
	}

	if err := h.validateFile(header); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.respondError(w, status, err.Error(), nil)
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to read file")
		h.respondError(w, http.StatusInternalServerError, "Failed to read file", err)
		return
	}

	image, err := h.usecase.UploadImage(ctx, fileBytes, req.Filename, req.ContentType, req.Specs)
	if err != nil {
		h.handleUploadError(w, err, header.Filename)
		return
	}

	response := dto.UploadResponse{
		ID:        image.ID,
		Filename:  image.OriginalFilename,
		Status:    string(image.Status),
		Format:    image.Format,
		Width:     image.Width,
		Height:    image.Height,
		Size:      image.OriginalSize,
		CreatedAt: image.CreatedAt,
	}

	h.logger.Info().
		Str("image_id", image.ID).
		Str("filename", image.OriginalFilename).
		Str("status", string(image.Status)).
		Msg("Image uploaded successfully")

	h.respondJSON(w, http.StatusAccepted, response)
}

func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	req := dto.GetImageRequest{ID: chi.URLParam(r, "id")}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Image ID is required", nil)
		return
	}

	state, err := h.usecase.GetImage(r.Context(), req.ID)
	if err != nil {
		h.handleError(w, err, req.ID, "Failed to get image")
		return
	}

	thumbs := state.Thumbnails
	if thumbs == nil {
		thumbs = []domain.Object{}
	}

	h.respondJSON(w, http.StatusOK, dto.ImageResponse{
		ID:         state.ID,
		Status:     string(state.Status),
		Original:   state.Original,
		Thumbnails: thumbs,
		Error:      state.Error,
	})
}

func (h *ImageHandler) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	req := dto.GetThumbnailRequest{
		ID:   chi.URLParam(r, "id"),
		Spec: chi.URLParam(r, "spec"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Image ID and spec are required", nil)
		return
	}

	obj, reader, err := h.usecase.GetThumbnail(r.Context(), req.ID, req.Spec)
	if err != nil {
		h.handleError(w, err, req.ID, "Failed to get thumbnail")
		return
	}
	defer reader.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"%s\"", filepath.Base(obj.Path)))
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error().
			Err(err).
			Str("image_id", req.ID).
			Str("spec", req.Spec).
			Msg("Failed to stream thumbnail")
	}
}

func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	req := dto.DeleteRequest{ID: chi.URLParam(r, "id")}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Image ID is required", nil)
		return
	}

	if err := h.usecase.DeleteImage(r.Context(), req.ID); err != nil {
		h.handleError(w, err, req.ID, "Failed to delete image")
		return
	}

	h.logger.Info().Str("image_id", req.ID).Msg("Image deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *ImageHandler) ListSpecs(w http.ResponseWriter, r *http.Request) {
	specs := h.usecase.Specs()

	response := make([]dto.SpecResponse, 0, len(specs))
	for _, spec := range specs {
		response = append(response, specResponse(spec))
	}

	h.respondJSON(w, http.StatusOK, response)
}

func (h *ImageHandler) PreviewPlans(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Width and height must be positive", err)
		return
	}

	plans, err := h.usecase.PreviewPlans(thumbnail.Dimensions{Width: req.Width, Height: req.Height}, req.Specs)
	if err != nil {
		h.handleError(w, err, "", "Failed to resolve plans")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.PlanResponse{Width: req.Width, Height: req.Height, Plans: plans})
}

func (h *ImageHandler) validateFile(header *multipart.FileHeader) error {
	if header.Size > h.maxUploadSize {
		return fmt.Errorf("%w: max %d MB", ErrFileTooLarge, h.maxUploadSize/(1024*1024))
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !domain.AllowedExtensions[ext] {
		return fmt.Errorf("%w: allowed extensions are bmp, gif, jpeg, jpg, pjpeg, pjpg, png, webp", ErrInvalidFileFormat)
	}

	contentType := strings.ToLower(header.Header.Get("Content-Type"))
	if !domain.AllowedMimeTypes[contentType] {
		return fmt.Errorf("%w: %s", ErrNotAnImage, contentType)
	}

	return nil
}

func (h *ImageHandler) handleUploadError(w http.ResponseWriter, err error, filename string) {
	switch {
	case errors.Is(err, image_uc.ErrInvalidFileFormat):
		h.logger.Warn().Str("filename", filename).Msg("Invalid file format")
		h.respondError(w, http.StatusBadRequest, "Unsupported file format", nil)
	case errors.Is(err, image_uc.ErrUnknownSpec):
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, image_uc.ErrFileTooLarge):
		h.logger.Warn().Str("filename", filename).Msg("File too large")
		h.respondError(w, http.StatusRequestEntityTooLarge, "File too large", nil)
	default:
		h.logger.Error().Err(err).Str("filename", filename).Msg("Upload failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to upload file", err)
	}
}

func (h *ImageHandler) handleError(w http.ResponseWriter, err error, imageID, message string) {
	switch {
	case errors.Is(err, image_uc.ErrImageNotFound):
		h.logger.Info().Str("image_id", imageID).Msg("Image not found")
		h.respondError(w, http.StatusNotFound, "Image not found", nil)
	case errors.Is(err, image_uc.ErrThumbnailNotFound):
		h.respondError(w, http.StatusNotFound, "Thumbnail not found", nil)
	case errors.Is(err, image_uc.ErrUnknownSpec):
		h.respondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, image_uc.ErrInvalidDimensions):
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.logger.Error().Err(err).Str("image_id", imageID).Msg(message)
		h.respondError(w, http.StatusInternalServerError, message, err)
	}
}

func specResponse(spec thumbnail.ThumbnailSpec) dto.SpecResponse {
	return dto.SpecResponse{
		Name:            spec.Name,
		Rule:            spec.Rule.String(),
		Watermark:       int(spec.Watermark),
		WatermarkOffset: [2]int{spec.WatermarkOffset.X, spec.WatermarkOffset.Y},
		Format:          spec.Format,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (h *ImageHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Interface("data", data).Msg("Failed to encode response")
	}
}

func (h *ImageHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}

	if err != nil {
		response.Details = err.Error()
	}

	h.respondJSON(w, status, response)
}
