package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the catalog endpoints. Static segments are registered
// before the {id} routes so they win the match.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, accessLogMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/{kind}").Subrouter()
	api.HandleFunc("/search", h.Search).Methods(http.MethodGet)
	api.HandleFunc("/discover", h.Discover).Methods(http.MethodGet)
	api.HandleFunc("/genres", h.Genres).Methods(http.MethodGet)
	api.HandleFunc("/{id}", h.Title).Methods(http.MethodGet)
	api.HandleFunc("/{id}/trailer", h.Trailer).Methods(http.MethodGet)
	api.HandleFunc("/{id}/similar", h.Similar).Methods(http.MethodGet)
	api.HandleFunc("/{id}/cast", h.Cast).Methods(http.MethodGet)
	api.HandleFunc("/{id}/providers", h.Providers).Methods(http.MethodGet)

	return r
}
