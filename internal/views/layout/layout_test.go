package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestLayoutRendersProvidedContent(t *testing.T) {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<section>content</section>"))
		return err
	})

	var buf bytes.Buffer
	if err := Layout("Hops", content).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Hops</title>") {
		t.Fatalf("expected document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "<section>content</section>") {
		t.Fatalf("expected content in output: %s", out)
	}
	if !strings.Contains(out, `<html lang="en">`) {
		t.Fatalf("expected default language: %s", out)
	}
}

func TestLayoutEscapesTitleAndUsesLanguage(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLanguage(context.Background(), "de")
	if err := Layout("<Hops & Malz>", nil).Render(ctx, &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<Hops & Malz>") {
		t.Fatalf("title was not escaped: %s", out)
	}
	if !strings.Contains(out, `<html lang="de">`) {
		t.Fatalf("expected document language de: %s", out)
	}
}
