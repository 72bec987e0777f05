package handlers

import (
	"net/http"

	"brewkit/internal/app"
	applog "brewkit/internal/log"
	"brewkit/internal/views/prefs"
)

const (
	sessionWeightSystemKey = "prefs:weight_system"
	sessionVolumeSystemKey = "prefs:volume_system"
	sessionTempScaleKey    = "prefs:temp_scale"
	sessionColorUnitKey    = "prefs:color_unit"
)

type preferencesResponse struct {
	WeightSystem string `json:"weight_system"`
	VolumeSystem string `json:"volume_system"`
	TempScale    string `json:"temp_scale"`
	ColorUnit    string `json:"color_unit"`
}

// UpdatePreferences stores display preferences in the visitor's session.
// Fields left out of the form keep their current value.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "preferences update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if sessionManager == nil {
		http.Error(w, "preferences not available", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse preferences form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	type field struct {
		form    string
		session string
		resolve func(string) (string, bool)
	}
	fields := []field{
		{form: "weight_system", session: sessionWeightSystemKey, resolve: resolveSystem},
		{form: "volume_system", session: sessionVolumeSystemKey, resolve: resolveSystem},
		{form: "temp_scale", session: sessionTempScaleKey, resolve: resolveTempScale},
		{form: "color_unit", session: sessionColorUnitKey, resolve: resolveColorUnit},
	}

	updates := make(map[string]string, len(fields))
	for _, f := range fields {
		raw, ok := r.Form[f.form]
		if !ok || len(raw) == 0 {
			continue
		}
		value, valid := f.resolve(raw[0])
		if !valid {
			applog.Debug(r.Context(), "received invalid preference", "field", f.form, "value", raw[0])
			http.Error(w, "invalid "+f.form+" selection", http.StatusBadRequest)
			return
		}
		updates[f.session] = value
	}
	for key, value := range updates {
		sessionManager.Put(r.Context(), key, value)
	}

	opts := formatterFor(r).Options()
	applog.Debug(r.Context(), "display preferences updated", "fields", len(updates))

	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
	}
	writeJSON(w, http.StatusOK, preferencesResponse{
		WeightSystem: string(opts.WeightSystem),
		VolumeSystem: string(opts.VolumeSystem),
		TempScale:    string(opts.TempScale),
		ColorUnit:    string(opts.ColorUnit),
	})
}

// formatterFor combines the application options with the display
// preferences held in the request's session.
func formatterFor(r *http.Request) app.Formatter {
	opts := app.DefaultOptions()
	lang := app.DefaultLanguage
	if application != nil {
		opts = application.Options()
		lang = application.Language()
	}

	if sessionManager != nil {
		ctx := r.Context()
		if v, ok := prefs.ResolveSystem(sessionManager.GetString(ctx, sessionWeightSystemKey)); ok {
			opts.WeightSystem = v
		}
		if v, ok := prefs.ResolveSystem(sessionManager.GetString(ctx, sessionVolumeSystemKey)); ok {
			opts.VolumeSystem = v
		}
		if v, ok := prefs.ResolveTempScale(sessionManager.GetString(ctx, sessionTempScaleKey)); ok {
			opts.TempScale = v
		}
		if v, ok := prefs.ResolveColorUnit(sessionManager.GetString(ctx, sessionColorUnitKey)); ok {
			opts.ColorUnit = v
		}
	}
	return app.NewFormatter(opts, lang)
}

func resolveSystem(value string) (string, bool) {
	v, ok := prefs.ResolveSystem(value)
	return string(v), ok
}

func resolveTempScale(value string) (string, bool) {
	v, ok := prefs.ResolveTempScale(value)
	return string(v), ok
}

func resolveColorUnit(value string) (string, bool) {
	v, ok := prefs.ResolveColorUnit(value)
	return string(v), ok
}
