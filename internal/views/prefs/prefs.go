// Package prefs lists the display preferences a visitor can pick and
// resolves submitted form values against them.
package prefs

import (
	"strings"

	"brewkit/internal/app"
	"brewkit/internal/units"
)

// Option represents a selectable preference exposed to the UI.
type Option struct {
	Value string
	Label string
}

var (
	systems = []Option{
		{Value: string(units.SI), Label: "Metric (kg, L)"},
		{Value: string(units.USCustomary), Label: "US customary (lb, gal)"},
		{Value: string(units.Imperial), Label: "Imperial (lb, imp gal)"},
	}
	tempScales = []Option{
		{Value: string(units.Celsius), Label: "Celsius"},
		{Value: string(units.Fahrenheit), Label: "Fahrenheit"},
	}
	colorUnits = []Option{
		{Value: string(app.SRM), Label: "SRM"},
		{Value: string(app.EBC), Label: "EBC"},
	}
)

// Systems exposes the unit systems for weight and volume selections.
func Systems() []Option { return systems }

// TempScales exposes the temperature scales.
func TempScales() []Option { return tempScales }

// ColorUnits exposes the color units.
func ColorUnits() []Option { return colorUnits }

// ResolveSystem returns the unit system for a submitted value.
func ResolveSystem(value string) (units.System, bool) {
	v, ok := resolve(systems, value)
	return units.System(v), ok
}

// ResolveTempScale returns the temperature scale for a submitted value.
func ResolveTempScale(value string) (units.TempScale, bool) {
	v, ok := resolve(tempScales, value)
	return units.TempScale(v), ok
}

// ResolveColorUnit returns the color unit for a submitted value.
func ResolveColorUnit(value string) (app.ColorUnit, bool) {
	v, ok := resolve(colorUnits, value)
	return app.ColorUnit(v), ok
}

func resolve(options []Option, value string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, option := range options {
		if option.Value == normalized {
			return option.Value, true
		}
	}
	return "", false
}
