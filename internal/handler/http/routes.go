package http

import (
	"net/http"

	"github.com/GameServerX/dark-haven-website/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Middleware order: trace id, access log, CORS
// (answers preflights), panic recovery, gzip request bodies, response
// compression and, when configured, the request timeout.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, withCORS, withRecover, withGzipRequest)
	router.Use(middleware.Compress(5, "application/json"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth", h.authAction)
		r.Get("/api/chat", h.feed)
		r.Get("/api/users", h.users)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/chat", h.sendMessage)
		r.Patch("/api/chat", h.editMessage)
		r.Delete("/api/chat", h.deleteMessage)

		r.Post("/api/users", h.friendAction)

		if h.services.UploadService != nil {
			r.Post("/api/upload", h.upload)
		}
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "Not found", http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
