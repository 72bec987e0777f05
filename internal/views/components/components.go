package components

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"brewkit/internal/views/prefs"
)

// Column describes one column of a Table.
type Column struct {
	Label string
	// Numeric columns are right aligned.
	Numeric bool
}

// Table renders a plain data table. Cell values are escaped.
func Table(id string, columns []Column, rows [][]string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<table id="` + templ.EscapeString(id) + `" class="w-full text-sm"><thead><tr>`)
		for _, col := range columns {
			b.WriteString(`<th class="` + cellClass(col) + `">` + templ.EscapeString(col.Label) + `</th>`)
		}
		b.WriteString(`</tr></thead><tbody>`)
		if len(rows) == 0 {
			b.WriteString(`<tr><td class="py-6 text-center text-stone-500" colspan="` + strconv.Itoa(len(columns)) + `">Nothing to show.</td></tr>`)
		}
		for _, row := range rows {
			b.WriteString(`<tr>`)
			for i, cell := range row {
				col := Column{}
				if i < len(columns) {
					col = columns[i]
				}
				b.WriteString(`<td class="` + cellClass(col) + `">` + templ.EscapeString(cell) + `</td>`)
			}
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// SelectField renders a labelled select with the selected option marked.
func SelectField(name, label string, options []prefs.Option, selected string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<label class="flex flex-col gap-1 text-sm">` + templ.EscapeString(label))
		b.WriteString(`<select name="` + templ.EscapeString(name) + `">`)
		for _, option := range options {
			b.WriteString(`<option value="` + templ.EscapeString(option.Value) + `"`)
			if option.Value == selected {
				b.WriteString(` selected`)
			}
			b.WriteString(`>` + templ.EscapeString(option.Label) + `</option>`)
		}
		b.WriteString(`</select></label>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func cellClass(col Column) string {
	if col.Numeric {
		return "px-3 py-2 text-right tabular-nums"
	}
	return "px-3 py-2 text-left"
}
