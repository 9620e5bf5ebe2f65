package server // import "github.com/storyworld/storyworld/server"

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/storyworld/storyworld/api"
	"github.com/storyworld/storyworld/config"
	"github.com/storyworld/storyworld/metrics"
	"github.com/storyworld/storyworld/middleware"
	"github.com/storyworld/storyworld/storage"
	"github.com/storyworld/storyworld/store"
)

// StartServer starts the HTTP server
func StartServer(ctx context.Context, store *store.Store, localStorage *storage.LocalStorage) (*http.Server, error) {
	addr := config.Opts.Host
	port := config.Opts.Port
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, port),
		Handler: setupHandler(store, localStorage),
	}

	startHTTPServer(server)

	return server, nil
}

func startHTTPServer(server *http.Server) {
	go func() {
		fmt.Println("Starting HTTP server in:", server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Println("HTTP server error", err)
			os.Exit(1)
		}
	}()
}

func setupHandler(store *store.Store, localStorage *storage.LocalStorage) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Compress)

	if config.Opts.MetricsCollector {
		metrics.Register(store)
		router.Use(metrics.RequestMetrics)
		router.Handle("/metrics", metrics.Handler()).Name("metrics")
	}

	// Setup the API routes
	api.Server(router, store, localStorage)

	// Uploaded files are exposed read-only under their randomized names.
	router.PathPrefix(storage.PublicPrefix + "/").Handler(
		http.StripPrefix(storage.PublicPrefix+"/", http.FileServer(http.Dir(localStorage.Dir()))))

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(config.Opts.Version))
	}).Name("version")

	return router
}
