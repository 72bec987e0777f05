package server

import (
	"context"
	"net/http"

	"brewkit/internal/handlers"
	applog "brewkit/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/api/hops", handlers.HopResource)
	mux.HandleFunc("/api/hops/", handlers.HopResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/hops")
	mux.HandleFunc("/hops", handlers.HopSheet)
	applog.Debug(context.Background(), "route registered", "path", "/hops")
	mux.HandleFunc("/preferences", handlers.UpdatePreferences)
	applog.Debug(context.Background(), "route registered", "path", "/preferences")
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/hops", http.StatusFound)
	})
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
