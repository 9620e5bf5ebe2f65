package api // import "github.com/storyworld/storyworld/api"

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/http/response"
	"github.com/storyworld/storyworld/middleware"
	"github.com/storyworld/storyworld/storage"
	"github.com/storyworld/storyworld/store"
)

type Handler struct {
	store   *store.Store
	storage *storage.LocalStorage
	router  *mux.Router
}

// Server mounts the catalog API under /api.
func Server(router *mux.Router, store *store.Store, localStorage *storage.LocalStorage) {
	handler := &Handler{
		store:   store,
		storage: localStorage,
		router:  router,
	}

	sr := router.PathPrefix("/api").Subrouter()
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.createBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/like", handler.likeBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id}/comment", handler.addComment).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id}/comments", handler.listComments).Methods(http.MethodGet)
	sr.HandleFunc("/feedback", handler.addFeedback).Methods(http.MethodPost)
	sr.HandleFunc("/views/increment", handler.incrementViews).Methods(http.MethodPost)
	sr.HandleFunc("/stats", handler.getStats).Methods(http.MethodGet)
	sr.HandleFunc("/genres", handler.getGenres).Methods(http.MethodGet)
	sr.HandleFunc("/health", handler.getHealth).Methods(http.MethodGet)
}

// uploadError keeps the distinction between a bad upload (client's
// fault) and a failed write (ours).
func uploadError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrUploadTooLarge),
		errors.Is(err, storage.ErrNotPDF),
		errors.Is(err, storage.ErrUnsupportedCover):
		response.BadRequest(w, r, err)
	default:
		response.ServerError(w, r, err)
	}
}

// storeError maps store errors onto the HTTP taxonomy: unknown ids are
// 404, validation failures 400, everything else a generic 500.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrBookNotFound):
		response.NotFound(w, r)
	case errors.Is(err, store.ErrEmptyComment),
		errors.Is(err, store.ErrInvalidRating),
		errors.Is(err, store.ErrMissingBookID):
		response.BadRequest(w, r, err)
	default:
		response.ServerError(w, r, err)
	}
}
