package handler

import (
	"net/http"

	"github.com/tripvault/tripvault/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, trips *service.TripService, uploads *service.UploadService) {
	users := NewUserHandler(auth)
	tripHandler := NewTripHandler(trips)
	uploadHandler := NewUploadHandler(uploads)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/users/register", users.HandleRegister)
	mux.HandleFunc("POST /api/users/login", users.HandleLogin)
	mux.Handle("GET /api/users/profile", protected(users.HandleProfile))

	mux.Handle("POST /api/trips", protected(tripHandler.HandleCreate))
	mux.Handle("GET /api/trips", protected(tripHandler.HandleList))
	mux.Handle("GET /api/trips/{id}", protected(tripHandler.HandleGet))
	mux.Handle("PUT /api/trips/{id}", protected(tripHandler.HandleUpdate))
	mux.Handle("DELETE /api/trips/{id}", protected(tripHandler.HandleDelete))

	mux.Handle("POST /api/upload", protected(uploadHandler.HandleUpload))

	// Photo URLs are embedded in pages as plain <img> sources, so this
	// route is public.
	mux.HandleFunc("GET /uploads/{key}", uploadHandler.HandlePhoto)
}
