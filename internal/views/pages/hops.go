package pages

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"brewkit/internal/app"
	"brewkit/internal/hop"
	"brewkit/internal/units"
	"brewkit/internal/views/components"
	"brewkit/internal/views/layout"
	"brewkit/internal/views/prefs"
)

// HopRow is one formatted line of the hop sheet.
type HopRow struct {
	Name   string
	Origin string
	Use    string
	Type   string
	Form   string
	Alpha  string
	Beta   string
	Amount string
	Time   string
}

// PreferenceForm holds the values preselected in the display preference form.
type PreferenceForm struct {
	WeightSystem string
	VolumeSystem string
	TempScale    string
	ColorUnit    string
}

// HopSheetData is everything the hop sheet page renders.
type HopSheetData struct {
	Rows        []HopRow
	Filters     HopFilters
	Preferences PreferenceForm
}

var hopColumns = []components.Column{
	{Label: "Name"},
	{Label: "Origin"},
	{Label: "Use"},
	{Label: "Type"},
	{Label: "Form"},
	{Label: "Alpha", Numeric: true},
	{Label: "Beta", Numeric: true},
	{Label: "Amount", Numeric: true},
	{Label: "Time", Numeric: true},
}

// HopRows formats hops for display with f.
func HopRows(hops []*hop.Hop, f app.Formatter) []HopRow {
	rows := make([]HopRow, 0, len(hops))
	for _, h := range hops {
		rows = append(rows, HopRow{
			Name:   DefaultDash(h.Name()),
			Origin: DefaultDash(h.Origin()),
			Use:    h.Use(),
			Type:   h.Type(),
			Form:   DefaultDash(h.Form()),
			Alpha:  f.DisplayAmount(h.AlphaPct(), units.Unit{}, 1) + "%",
			Beta:   f.DisplayAmount(h.BetaPct(), units.Unit{}, 1) + "%",
			Amount: f.DisplayAmount(h.AmountKg(), units.Kilograms, 1),
			Time:   f.DisplayAmount(h.TimeMin(), units.Minutes, 0),
		})
	}
	return rows
}

// PreferenceFormFor preselects the form with f's options.
func PreferenceFormFor(f app.Formatter) PreferenceForm {
	opts := f.Options()
	return PreferenceForm{
		WeightSystem: string(opts.WeightSystem),
		VolumeSystem: string(opts.VolumeSystem),
		TempScale:    string(opts.TempScale),
		ColorUnit:    string(opts.ColorUnit),
	}
}

// HopSheet renders the full hop sheet page.
func HopSheet(data HopSheetData) templ.Component {
	return layout.Layout("Hops", HopSheetBody(data))
}

// HopSheetBody renders the hop sheet without the document shell, for htmx
// swaps.
func HopSheetBody(data HopSheetData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section id="hop-sheet" class="flex flex-col gap-6">`+
			`<header class="flex items-end justify-between"><h1 class="text-2xl font-semibold">Hops</h1>`+
			`<a class="text-sm underline" href="/api/hops/export">Export BeerXML</a></header>`+
			`<form method="get" action="/hops" hx-get="/hops" hx-target="#hop-sheet" hx-swap="outerHTML">`+
			`<input type="search" name="q" placeholder="Search name, origin or use" value="`+templ.EscapeString(data.Filters.Query)+`">`+
			`</form>`); err != nil {
			return err
		}

		cells := make([][]string, 0, len(data.Rows))
		for _, row := range data.Rows {
			cells = append(cells, []string{row.Name, row.Origin, row.Use, row.Type, row.Form, row.Alpha, row.Beta, row.Amount, row.Time})
		}
		if err := components.Table("hop-table", hopColumns, cells).Render(ctx, w); err != nil {
			return err
		}

		if err := preferenceForm(data.Preferences).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

func preferenceForm(form PreferenceForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<form id="preferences" method="post" action="/preferences" hx-post="/preferences" class="flex flex-wrap items-end gap-4">`); err != nil {
			return err
		}
		fields := []templ.Component{
			components.SelectField("weight_system", "Weight", prefs.Systems(), form.WeightSystem),
			components.SelectField("volume_system", "Volume", prefs.Systems(), form.VolumeSystem),
			components.SelectField("temp_scale", "Temperature", prefs.TempScales(), form.TempScale),
			components.SelectField("color_unit", "Color", prefs.ColorUnits(), form.ColorUnit),
		}
		for _, field := range fields {
			if err := field.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<button type="submit">Save</button></form>`)
		return err
	})
}

// HopFilters capture the client-driven state for hop lookups.
type HopFilters struct {
	Query string
}

// HopFiltersFromRequest extracts filter inputs from an HTTP request.
func HopFiltersFromRequest(r *http.Request) HopFilters {
	filters := HopFilters{}
	if err := r.ParseForm(); err != nil {
		return filters
	}
	filters.Query = strings.TrimSpace(r.FormValue("q"))
	return filters
}

// FilterHops applies the provided filters to a list of hops.
func FilterHops(all []*hop.Hop, filters HopFilters) []*hop.Hop {
	if filters.Query == "" {
		return all
	}
	query := strings.ToLower(filters.Query)
	filtered := make([]*hop.Hop, 0, len(all))
	for _, h := range all {
		if containsFold(h.Name(), query) ||
			containsFold(h.Origin(), query) ||
			containsFold(h.Use(), query) {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

func containsFold(value, query string) bool {
	return strings.Contains(strings.ToLower(value), query)
}

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}
