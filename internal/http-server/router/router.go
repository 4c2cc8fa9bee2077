package router

import (
	"net/http"

	"image-thumbnailer/internal/http-server/handler/image"
	"image-thumbnailer/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/wb-go/wbf/zlog"
)

type Handler struct {
	ImageHandler *image.ImageHandler
	Logger       *zlog.Zerolog
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(h.Logger))
	r.Use(middleware.Logging(h.Logger))

	r.Route("/api", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				next.ServeHTTP(w, r)
			})
		})

		r.Route("/images", func(r chi.Router) {
			r.Post("/upload", h.ImageHandler.UploadImage)
			r.Get("/{id}", h.ImageHandler.GetImage)
			r.Get("/{id}/thumbnails/{spec}", h.ImageHandler.GetThumbnail)
			r.Delete("/{id}", h.ImageHandler.DeleteImage)
		})

		r.Get("/specs", h.ImageHandler.ListSpecs)
		r.Post("/plans", h.ImageHandler.PreviewPlans)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	return r
}
