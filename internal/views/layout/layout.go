package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps content in the HTML document shell.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="`+templ.EscapeString(languageFrom(ctx))+`"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title)+`</title>`+
			`<script src="https://unpkg.com/htmx.org@1.9.12"></script></head>`+
			`<body class="`+bodyClass+`"><main class="`+mainClass+`">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

const (
	bodyClass = "min-h-screen bg-stone-50 text-stone-900"
	mainClass = "mx-auto max-w-5xl px-6 py-10"
)

type languageKey struct{}

// WithLanguage records the document language for Layout.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

func languageFrom(ctx context.Context) string {
	if lang, ok := ctx.Value(languageKey{}).(string); ok && lang != "" {
		return lang
	}
	return "en"
}
