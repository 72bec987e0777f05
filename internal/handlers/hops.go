package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"brewkit/internal/beerxml"
	"brewkit/internal/db"
	"brewkit/internal/hop"
	applog "brewkit/internal/log"
	"brewkit/internal/views/layout"
	"brewkit/internal/views/pages"
)

const (
	hopsAPIPrefix  = "/api/hops"
	maxImportBytes = 8 << 20
)

type hopResponse struct {
	ID uint `json:"id"`
	hop.Values
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type validationResponse struct {
	Error string   `json:"error"`
	Kind  hop.Kind `json:"kind"`
	Field string   `json:"field"`
	Value string   `json:"value"`
}

type importResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// HopResource handles REST-style interactions for hop records under /api/hops.
func HopResource(w http.ResponseWriter, r *http.Request) {
	if hopStore == nil {
		applog.Debug(r.Context(), "hop request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, hopsAPIPrefix)
	path = strings.Trim(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			listHops(w, r)
		case http.MethodPost:
			createHop(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	case "export":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		exportHops(w, r)
		return
	case "import":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		importHops(w, r)
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid hop identifier", "identifier", path, "error", err)
		http.NotFound(w, r)
		return
	}
	hopID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		showHop(w, r, hopID)
	case http.MethodPut:
		updateHop(w, r, hopID)
	case http.MethodDelete:
		deleteHop(w, r, hopID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listHops(w http.ResponseWriter, r *http.Request) {
	records, err := hopStore.List(r.Context())
	if err != nil {
		writeHopError(w, r, err, "unable to load hops")
		return
	}

	responses := make([]hopResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, projectHop(record))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showHop(w http.ResponseWriter, r *http.Request, hopID uint) {
	record, err := hopStore.Get(r.Context(), hopID)
	if err != nil {
		writeHopError(w, r, err, "unable to load hop")
		return
	}
	writeJSON(w, http.StatusOK, projectHop(record))
}

func createHop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := hop.New().Values()
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid hop payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	h, ok := hopFromPayload(w, r, payload)
	if !ok {
		return
	}

	if _, err := hopStore.FindByName(ctx, h.Name()); err == nil {
		writeJSONError(w, http.StatusConflict, "a hop with that name already exists")
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		writeHopError(w, r, err, "unable to create hop")
		return
	}

	record, err := hopStore.Create(ctx, h)
	if err != nil {
		writeHopError(w, r, err, "unable to create hop")
		return
	}
	writeJSON(w, http.StatusCreated, projectHop(record))
}

// updateHop applies the payload on top of the stored record, so fields left
// out of the body keep their values.
func updateHop(w http.ResponseWriter, r *http.Request, hopID uint) {
	ctx := r.Context()

	existing, err := hopStore.Get(ctx, hopID)
	if err != nil {
		writeHopError(w, r, err, "unable to load hop")
		return
	}

	payload := existing.Hop.Values()
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid hop update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	h, ok := hopFromPayload(w, r, payload)
	if !ok {
		return
	}

	if !hop.Equal(h, existing.Hop) {
		if other, err := hopStore.FindByName(ctx, h.Name()); err == nil && other.ID != hopID {
			writeJSONError(w, http.StatusConflict, "a hop with that name already exists")
			return
		}
	}

	record, err := hopStore.Update(ctx, hopID, h)
	if err != nil {
		writeHopError(w, r, err, "unable to update hop")
		return
	}
	writeJSON(w, http.StatusOK, projectHop(record))
}

func deleteHop(w http.ResponseWriter, r *http.Request, hopID uint) {
	if err := hopStore.Delete(r.Context(), hopID); err != nil {
		writeHopError(w, r, err, "unable to delete hop")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func exportHops(w http.ResponseWriter, r *http.Request) {
	records, err := hopStore.List(r.Context())
	if err != nil {
		writeHopError(w, r, err, "unable to load hops")
		return
	}

	hops := make([]*hop.Hop, 0, len(records))
	for _, record := range records {
		hops = append(hops, record.Hop)
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="hops.xml"`)
	if err := beerxml.WriteHops(w, hops); err != nil {
		applog.Error(r.Context(), "failed to write hop export", "error", err)
	}
}

func importHops(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hops, err := beerxml.ReadHops(ctx, http.MaxBytesReader(w, r.Body, maxImportBytes), logger())
	if err != nil {
		if errors.Is(err, hop.ErrValidation) {
			writeHopError(w, r, err, "")
			return
		}
		applog.Debug(ctx, "invalid beerxml upload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid BeerXML document")
		return
	}

	for _, h := range hops {
		if strings.TrimSpace(h.Name()) == "" {
			writeJSONError(w, http.StatusUnprocessableEntity, "every HOP needs a NAME")
			return
		}
	}

	created, updated, err := hopStore.UpsertAll(ctx, hops)
	if err != nil {
		writeHopError(w, r, err, "unable to import hops")
		return
	}
	applog.Info(ctx, "hops imported", "created", created, "updated", updated)
	writeJSON(w, http.StatusOK, importResponse{Created: created, Updated: updated})
}

// HopSheet renders the HTML hop sheet with the visitor's display preferences.
func HopSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if hopStore == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	records, err := hopStore.List(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load hops for sheet", "error", err)
		http.Error(w, "unable to load hops", http.StatusInternalServerError)
		return
	}
	hops := make([]*hop.Hop, 0, len(records))
	for _, record := range records {
		hops = append(hops, record.Hop)
	}

	formatter := formatterFor(r)
	filters := pages.HopFiltersFromRequest(r)
	data := pages.HopSheetData{
		Rows:        pages.HopRows(pages.FilterHops(hops, filters), formatter),
		Filters:     filters,
		Preferences: pages.PreferenceFormFor(formatter),
	}

	component := pages.HopSheet(data)
	if isHTMX(r) {
		component = pages.HopSheetBody(data)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	ctx := layout.WithLanguage(r.Context(), formatter.Language())
	if err := component.Render(ctx, w); err != nil {
		applog.Error(r.Context(), "failed to render hop sheet", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// hopFromPayload builds a record from a decoded payload, answering the
// request itself when the payload is rejected.
func hopFromPayload(w http.ResponseWriter, r *http.Request, payload hop.Values) (*hop.Hop, bool) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return nil, false
	}
	h, err := hop.FromValues(payload)
	if err != nil {
		writeHopError(w, r, err, "")
		return nil, false
	}
	return h, true
}

// writeHopError maps store and validation errors to responses. message is
// used for unexpected failures.
func writeHopError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var verr *hop.ValidationError
	switch {
	case errors.As(err, &verr):
		applog.Debug(r.Context(), "hop rejected", "field", verr.Field, "value", verr.Value, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error: err.Error(),
			Kind:  verr.Kind,
			Field: verr.Field,
			Value: verr.Value,
		})
	case errors.Is(err, db.ErrNotFound):
		applog.Debug(r.Context(), "hop not found", "error", err)
		writeJSONError(w, http.StatusNotFound, "hop not found")
	default:
		if message == "" {
			message = "unable to process hop"
		}
		applog.Error(r.Context(), message, "error", err)
		writeJSONError(w, http.StatusInternalServerError, message)
	}
}

func projectHop(record db.Record) hopResponse {
	return hopResponse{
		ID:        record.ID,
		Values:    record.Hop.Values(),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
