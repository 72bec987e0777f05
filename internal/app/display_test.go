package app

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"brewkit/internal/units"
)

func optionsWith(fn func(*Options)) Options {
	opts := DefaultOptions()
	fn(&opts)
	return opts
}

func TestDisplayAmount(t *testing.T) {
	t.Parallel()

	us := optionsWith(func(o *Options) {
		o.WeightSystem = units.USCustomary
		o.VolumeSystem = units.USCustomary
		o.TempScale = units.Fahrenheit
	})

	tests := []struct {
		name      string
		opts      Options
		lang      string
		amount    float64
		unit      units.Unit
		precision int
		want      string
	}{
		{name: "grams", opts: DefaultOptions(), lang: "en", amount: 0.028, unit: units.Kilograms, precision: 1, want: "28.0 g"},
		{name: "kilograms", opts: DefaultOptions(), lang: "en", amount: 2.5, unit: units.Kilograms, precision: 2, want: "2.50 kg"},
		{name: "pounds", opts: us, lang: "en", amount: 2 * 0.45359237, unit: units.Kilograms, precision: 2, want: "2.00 lb"},
		{name: "fahrenheit", opts: us, lang: "en", amount: 100, unit: units.DegreesC, precision: 0, want: "212 F"},
		{name: "minutes", opts: DefaultOptions(), lang: "en", amount: 60, unit: units.Minutes, precision: 0, want: "1 hr"},
		{name: "bare number", opts: DefaultOptions(), lang: "en", amount: 1234.5, precision: 1, want: "1,234.5"},
		{name: "german separators", opts: DefaultOptions(), lang: "de", amount: 1234.5, precision: 1, want: "1.234,5"},
		{name: "negative precision", opts: DefaultOptions(), lang: "en", amount: 3.4, precision: -2, want: "3"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := NewFormatter(tc.opts, tc.lang).DisplayAmount(tc.amount, tc.unit, tc.precision)
			if got != tc.want {
				t.Fatalf("DisplayAmount(%v) = %q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}

func TestDisplayGravity(t *testing.T) {
	t.Parallel()

	sg := NewFormatter(DefaultOptions(), "en")
	if got := sg.DisplayOG(1.05, false); got != "1.050" {
		t.Fatalf("DisplayOG = %q", got)
	}
	if got := sg.DisplayFG(1.012, true); got != "1.012 sg" {
		t.Fatalf("DisplayFG = %q", got)
	}

	plato := NewFormatter(optionsWith(func(o *Options) { o.UsePlato = true }), "en")
	if got := plato.DisplayOG(1.05, true); got != "12.4 °P" {
		t.Fatalf("DisplayOG in plato = %q", got)
	}
}

func TestPlatoConversionRoundTrip(t *testing.T) {
	t.Parallel()

	for _, sg := range []float64{1.000, 1.040, 1.065, 1.100} {
		if got := PlatoToSG(SGToPlato(sg)); math.Abs(got-sg) > 1e-3 {
			t.Fatalf("PlatoToSG(SGToPlato(%v)) = %v", sg, got)
		}
	}
}

func TestDisplayColor(t *testing.T) {
	t.Parallel()

	if got := NewFormatter(DefaultOptions(), "en").DisplayColor(10, true); got != "10.0 SRM" {
		t.Fatalf("SRM color = %q", got)
	}
	ebc := NewFormatter(optionsWith(func(o *Options) { o.ColorUnit = EBC }), "en")
	if got := ebc.DisplayColor(10, false); got != "19.7" {
		t.Fatalf("EBC color = %q", got)
	}
}

func TestDisplayThickness(t *testing.T) {
	t.Parallel()

	if got := NewFormatter(DefaultOptions(), "en").DisplayThickness(3, true); got != "3.00 L/kg" {
		t.Fatalf("SI thickness = %q", got)
	}

	us := NewFormatter(optionsWith(func(o *Options) {
		o.WeightSystem = units.USCustomary
		o.VolumeSystem = units.USCustomary
	}), "en")
	if got := us.DisplayThickness(3, true); got != "1.44 qt/lb" {
		t.Fatalf("US thickness = %q", got)
	}
}

func TestDisplayDate(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"en": "03/09/2024",
		"de": "09.03.2024",
		"ja": "2024-03-09",
		"fr": "09/03/2024",
	}
	for lang, want := range tests {
		if got := NewFormatter(DefaultOptions(), lang).DisplayDate(day); got != want {
			t.Fatalf("DisplayDate(%s) = %q, want %q", lang, got, want)
		}
	}
}

func TestFormatterParsing(t *testing.T) {
	t.Parallel()

	us := NewFormatter(optionsWith(func(o *Options) {
		o.WeightSystem = units.USCustomary
		o.VolumeSystem = units.USCustomary
		o.TempScale = units.Fahrenheit
		o.ColorUnit = EBC
	}), "en")

	tests := []struct {
		name  string
		parse func(string) (float64, error)
		text  string
		want  float64
	}{
		{name: "bare weight uses pounds", parse: us.ParseWeight, text: "2", want: 0.90718474},
		{name: "weight with unit", parse: us.ParseWeight, text: "28 g", want: 0.028},
		{name: "bare volume uses gallons", parse: us.ParseVolume, text: "5", want: 18.92705892},
		{name: "bare temperature uses scale", parse: us.ParseTemperature, text: "212", want: 100},
		{name: "temperature with unit", parse: us.ParseTemperature, text: "20 C", want: 20},
		{name: "time", parse: us.ParseTime, text: "1 hr", want: 60},
		{name: "bare color uses ebc", parse: us.ParseColor, text: "19.7", want: 10},
		{name: "color in srm", parse: us.ParseColor, text: "10 SRM", want: 10},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.parse(tc.text)
			if err != nil {
				t.Fatalf("parse %q returned error: %v", tc.text, err)
			}
			if math.Abs(got-tc.want) > 1e-6 {
				t.Fatalf("parse %q = %v, want %v", tc.text, got, tc.want)
			}
		})
	}

	if _, err := us.ParseColor("10 lovibond-ish"); !errors.Is(err, units.ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
	if _, err := us.ParseWeight("2 L"); !errors.Is(err, units.ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit for a volume unit, got %v", err)
	}
}

func TestAppDisplayFollowsOptions(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t)

	if got := a.DisplayAmount(0.5, units.Kilograms, 0); got != "500 g" {
		t.Fatalf("SI display = %q", got)
	}

	err := a.UpdateOptions(context.Background(), func(o *Options) {
		o.WeightSystem = units.Imperial
	})
	if err != nil {
		t.Fatalf("UpdateOptions returned error: %v", err)
	}
	if got := a.DisplayAmount(0.45359237, units.Kilograms, 1); got != "1,0 lb" {
		t.Fatalf("imperial display in german = %q", got)
	}
}

func TestSetLanguage(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t)
	ctx := context.Background()

	if err := a.SetLanguage(ctx, "pt-BR"); err != nil {
		t.Fatalf("SetLanguage returned error: %v", err)
	}
	if a.Language() != "pt" {
		t.Fatalf("language = %q, want pt", a.Language())
	}
	if a.Options().Language != "pt" {
		t.Fatalf("language option = %q, want pt", a.Options().Language)
	}

	for _, code := range []string{"", "not a language", "x"} {
		if err := a.SetLanguage(ctx, code); err == nil {
			t.Fatalf("SetLanguage(%q) should fail", code)
		}
	}
	if a.Language() != "pt" {
		t.Fatalf("failed SetLanguage changed language to %q", a.Language())
	}

	reopened := env.open(t)
	if reopened.Language() != "pt" {
		t.Fatalf("language was not persisted, got %q", reopened.Language())
	}
}

func TestSystemLanguage(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "lang", env: map[string]string{"LANG": "es_ES.UTF-8"}, want: "es"},
		{name: "lc_all wins", env: map[string]string{"LC_ALL": "fr_FR", "LANG": "es_ES.UTF-8"}, want: "fr"},
		{name: "posix locale", env: map[string]string{"LANG": "C"}, want: DefaultLanguage},
		{name: "unset", env: map[string]string{}, want: DefaultLanguage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
				t.Setenv(key, tc.env[key])
			}
			if got := SystemLanguage(); got != tc.want {
				t.Fatalf("SystemLanguage() = %q, want %q", got, tc.want)
			}
		})
	}
}
