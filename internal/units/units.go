// Package units converts between SI amounts and the units brewers read.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrUnknownUnit is returned when an amount names a unit that does not exist
// or measures a different quantity.
var ErrUnknownUnit = errors.New("units: unknown unit")

// Quantity is the physical dimension a unit measures.
type Quantity string

const (
	Mass        Quantity = "mass"
	Volume      Quantity = "volume"
	Temperature Quantity = "temperature"
	Time        Quantity = "time"
)

// System selects the family of weight and volume units used for display.
type System string

const (
	SI          System = "si"
	USCustomary System = "us_customary"
	Imperial    System = "imperial"
)

// TempScale selects the temperature unit used for display.
type TempScale string

const (
	Celsius    TempScale = "celsius"
	Fahrenheit TempScale = "fahrenheit"
)

// Unit is a named unit with linear conversion to and from its SI base
// (kg, L, °C, minutes).
type Unit struct {
	Name     string
	Quantity Quantity
	scale    float64
	offset   float64
}

// ToSI converts an amount in u to the SI base unit.
func (u Unit) ToSI(amount float64) float64 {
	return amount*u.scale + u.offset
}

// FromSI converts an SI amount to u.
func (u Unit) FromSI(si float64) float64 {
	return (si - u.offset) / u.scale
}

var (
	Kilograms   = Unit{Name: "kg", Quantity: Mass, scale: 1}
	Grams       = Unit{Name: "g", Quantity: Mass, scale: 1e-3}
	Milligrams  = Unit{Name: "mg", Quantity: Mass, scale: 1e-6}
	Pounds      = Unit{Name: "lb", Quantity: Mass, scale: 0.45359237}
	Ounces      = Unit{Name: "oz", Quantity: Mass, scale: 0.028349523125}
	Liters      = Unit{Name: "L", Quantity: Volume, scale: 1}
	Milliliters = Unit{Name: "mL", Quantity: Volume, scale: 1e-3}
	USGallons   = Unit{Name: "gal", Quantity: Volume, scale: 3.785411784}
	USQuarts    = Unit{Name: "qt", Quantity: Volume, scale: 0.946352946}
	ImpGallons  = Unit{Name: "imp gal", Quantity: Volume, scale: 4.54609}
	ImpQuarts   = Unit{Name: "imp qt", Quantity: Volume, scale: 1.1365225}
	DegreesC    = Unit{Name: "C", Quantity: Temperature, scale: 1}
	DegreesF    = Unit{Name: "F", Quantity: Temperature, scale: 5.0 / 9.0, offset: -32 * 5.0 / 9.0}
	Seconds     = Unit{Name: "s", Quantity: Time, scale: 1.0 / 60.0}
	Minutes     = Unit{Name: "min", Quantity: Time, scale: 1}
	Hours       = Unit{Name: "hr", Quantity: Time, scale: 60}
	Days        = Unit{Name: "day", Quantity: Time, scale: 1440}
	byName      = map[string]Unit{}
	allUnits    = []Unit{Kilograms, Grams, Milligrams, Pounds, Ounces, Liters, Milliliters, USGallons, USQuarts, ImpGallons, ImpQuarts, DegreesC, DegreesF, Seconds, Minutes, Hours, Days}
	unitAliases = map[string]string{"l": "L", "ml": "mL", "lbs": "lb", "c": "C", "f": "F", "°c": "C", "°f": "F", "m": "min", "h": "hr", "days": "day"}
)

func init() {
	for _, u := range allUnits {
		byName[u.Name] = u
	}
}

// Lookup finds a unit by its display name or a common alias.
func Lookup(name string) (Unit, bool) {
	name = strings.TrimSpace(name)
	if u, ok := byName[name]; ok {
		return u, true
	}
	if canonical, ok := unitAliases[strings.ToLower(name)]; ok {
		return byName[canonical], true
	}
	return Unit{}, false
}

// Best picks a readable unit for an SI amount of q in the given system.
func Best(q Quantity, system System, si float64) Unit {
	abs := math.Abs(si)
	switch q {
	case Mass:
		if system == SI {
			switch {
			case abs >= 1:
				return Kilograms
			case abs >= 1e-3 || abs == 0:
				return Grams
			default:
				return Milligrams
			}
		}
		if abs >= Pounds.scale {
			return Pounds
		}
		return Ounces
	case Volume:
		switch system {
		case USCustomary:
			if abs >= USGallons.scale {
				return USGallons
			}
			return USQuarts
		case Imperial:
			if abs >= ImpGallons.scale {
				return ImpGallons
			}
			return ImpQuarts
		default:
			if abs >= 1 || abs == 0 {
				return Liters
			}
			return Milliliters
		}
	case Time:
		switch {
		case abs >= Days.scale:
			return Days
		case abs >= Hours.scale:
			return Hours
		case abs >= 1 || abs == 0:
			return Minutes
		default:
			return Seconds
		}
	}
	return DegreesC
}

// ForScale returns the temperature unit for a scale.
func ForScale(scale TempScale) Unit {
	if scale == Fahrenheit {
		return DegreesF
	}
	return DegreesC
}

// ParseAmount converts text such as "1 lb" or "20 min" to an SI amount of q.
// A bare number is taken to be SI already.
func ParseAmount(text string, q Quantity) (float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("units: empty amount")
	}

	number, unitName := splitAmount(fields)

	amount, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("units: parse %q: %w", text, err)
	}
	if unitName == "" {
		return amount, nil
	}

	u, ok := Lookup(unitName)
	if !ok || u.Quantity != q {
		return 0, fmt.Errorf("%w %q for %s", ErrUnknownUnit, unitName, q)
	}
	return u.ToSI(amount), nil
}

// HasUnits reports whether text names a unit after its number.
func HasUnits(text string) bool {
	_, unitName := splitAmount(strings.Fields(text))
	return unitName != ""
}

// splitAmount separates "1 lb", "28g", "68°F" and "1.5e-2kg" into number and
// unit. A single field is split after its longest prefix that parses as a
// number.
func splitAmount(fields []string) (string, string) {
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) > 1 {
		return fields[0], strings.Join(fields[1:], " ")
	}
	text := fields[0]
	for i := len(text); i > 0; i-- {
		if i < len(text) && !utf8.RuneStart(text[i]) {
			continue
		}
		if _, err := strconv.ParseFloat(text[:i], 64); err == nil {
			return text[:i], text[i:]
		}
	}
	return text, ""
}
