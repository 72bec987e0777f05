package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when the system language cannot be determined.
const DefaultLanguage = "en"

// SetLanguage switches the display language to the ISO 639-1 code and
// persists it. Region subtags are accepted and dropped, so "pt-BR" selects
// "pt".
func (a *App) SetLanguage(ctx context.Context, code string) error {
	normalized, err := normalizeLanguage(code)
	if err != nil {
		return err
	}

	a.Log(ctx, LevelInfo, "language changed", "language", normalized)
	return a.UpdateOptions(ctx, func(o *Options) {
		o.Language = normalized
	})
}

// Language returns the two letter code of the current display language.
func (a *App) Language() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.language == "" {
		return DefaultLanguage
	}
	return a.language
}

// languageFor returns the language selected by opts, falling back to the
// system language when none is set.
func languageFor(opts Options) string {
	if opts.Language != "" {
		return opts.Language
	}
	return SystemLanguage()
}

// SystemLanguage returns the two letter code of the language named by the
// environment (LC_ALL, LC_MESSAGES, then LANG), or DefaultLanguage.
func SystemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(key)
		if value == "" {
			continue
		}
		if code, err := normalizeLanguage(posixLocaleToBCP47(value)); err == nil {
			return code
		}
	}
	return DefaultLanguage
}

// posixLocaleToBCP47 turns "pt_BR.UTF-8@euro" into "pt-BR".
func posixLocaleToBCP47(value string) string {
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	return strings.ReplaceAll(value, "_", "-")
}

func normalizeLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("language code must not be empty")
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", code, err)
	}
	base, confidence := tag.Base()
	if confidence == language.No || len(base.String()) != 2 {
		return "", fmt.Errorf("language %q has no two letter ISO 639-1 code", code)
	}
	return base.String(), nil
}
