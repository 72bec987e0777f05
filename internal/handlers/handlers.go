package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"brewkit/internal/app"
	"brewkit/internal/db"
	applog "brewkit/internal/log"
)

var (
	sessionManager *scs.SessionManager
	hopStore       *db.HopStore
	application    *app.App
)

// Configure installs the shared dependencies used by the HTTP handlers.
// Any of them may be nil; handlers that need a missing one answer 503.
func Configure(sm *scs.SessionManager, database *gorm.DB, a *app.App) {
	sessionManager = sm
	application = a
	if database == nil {
		hopStore = nil
		return
	}
	hopStore = db.NewHopStore(database)
}

func logger() *slog.Logger {
	if application != nil {
		return application.Logger()
	}
	return applog.Logger()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
