package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"brewkit/internal/units"
)

// srmToEBC is the conversion factor from SRM to EBC color units.
const srmToEBC = 1.97

// Formatter renders SI quantities for display with a fixed set of options and
// a language. Build one with NewFormatter or App.Formatter.
type Formatter struct {
	opts     Options
	language string
	printer  *message.Printer
}

// NewFormatter builds a Formatter for opts in the given language. An invalid
// language falls back to DefaultLanguage.
func NewFormatter(opts Options, lang string) Formatter {
	opts.normalize()
	code, err := normalizeLanguage(lang)
	if err != nil {
		code = DefaultLanguage
	}
	return Formatter{
		opts:     opts,
		language: code,
		printer:  message.NewPrinter(language.Make(code)),
	}
}

// Formatter returns a Formatter for the current options and language.
func (a *App) Formatter() Formatter {
	return NewFormatter(a.Options(), a.Language())
}

// DisplayAmount formats an SI amount in the unit the current options prefer
// for u's quantity. A zero Unit formats the bare number.
func (a *App) DisplayAmount(amountSI float64, u units.Unit, precision int) string {
	return a.Formatter().DisplayAmount(amountSI, u, precision)
}

// DisplayDate formats t as a short date for the current language.
func (a *App) DisplayDate(t time.Time) string {
	return a.Formatter().DisplayDate(t)
}

// DisplayOG formats an original gravity.
func (a *App) DisplayOG(sg float64, showUnits bool) string {
	return a.Formatter().DisplayOG(sg, showUnits)
}

// DisplayFG formats a final gravity.
func (a *App) DisplayFG(sg float64, showUnits bool) string {
	return a.Formatter().DisplayFG(sg, showUnits)
}

// DisplayColor formats a color given in SRM.
func (a *App) DisplayColor(srm float64, showUnits bool) string {
	return a.Formatter().DisplayColor(srm, showUnits)
}

// DisplayThickness formats a mash thickness given in L/kg.
func (a *App) DisplayThickness(lPerKg float64, showUnits bool) string {
	return a.Formatter().DisplayThickness(lPerKg, showUnits)
}

// Options returns the options the formatter renders with.
func (f Formatter) Options() Options {
	return f.opts
}

// Language returns the formatter's language code.
func (f Formatter) Language() string {
	return f.language
}

// DisplayAmount formats amountSI, converted to the preferred unit for u's
// quantity, with precision digits after the decimal point.
func (f Formatter) DisplayAmount(amountSI float64, u units.Unit, precision int) string {
	if precision < 0 {
		precision = 0
	}
	if u.Name == "" {
		return f.number(amountSI, precision)
	}

	display := f.unitFor(u.Quantity, amountSI)
	return f.number(display.FromSI(amountSI), precision) + " " + display.Name
}

// DisplayDate formats t as a short date in the order the language expects.
func (f Formatter) DisplayDate(t time.Time) string {
	return t.Format(dateLayout(f.language))
}

// DisplayOG formats a specific gravity as SG or, with UsePlato, degrees Plato.
func (f Formatter) DisplayOG(sg float64, showUnits bool) string {
	return f.gravity(sg, showUnits)
}

// DisplayFG formats a final gravity the same way as DisplayOG.
func (f Formatter) DisplayFG(sg float64, showUnits bool) string {
	return f.gravity(sg, showUnits)
}

// DisplayColor formats srm in the configured color unit.
func (f Formatter) DisplayColor(srm float64, showUnits bool) string {
	value, label := srm, "SRM"
	if f.opts.ColorUnit == EBC {
		value, label = srm*srmToEBC, "EBC"
	}
	out := f.number(value, 1)
	if showUnits {
		out += " " + label
	}
	return out
}

// DisplayThickness formats a mash thickness in the volume per weight units of
// the configured systems, e.g. L/kg or qt/lb.
func (f Formatter) DisplayThickness(lPerKg float64, showUnits bool) string {
	volume, weight := f.ThicknessUnits()
	value := volume.FromSI(lPerKg) / weight.FromSI(1)
	out := f.number(value, 2)
	if showUnits {
		out += " " + volume.Name + "/" + weight.Name
	}
	return out
}

// ThicknessUnits returns the volume and weight units used for mash thickness.
func (f Formatter) ThicknessUnits() (volume, weight units.Unit) {
	switch f.opts.VolumeSystem {
	case units.USCustomary:
		volume = units.USQuarts
	case units.Imperial:
		volume = units.ImpQuarts
	default:
		volume = units.Liters
	}
	if f.opts.WeightSystem == units.SI {
		weight = units.Kilograms
	} else {
		weight = units.Pounds
	}
	return volume, weight
}

// ParseWeight converts user text to kilograms. A bare number is read in the
// default weight unit of the configured system.
func (f Formatter) ParseWeight(text string) (float64, error) {
	def := units.Kilograms
	if f.opts.WeightSystem != units.SI {
		def = units.Pounds
	}
	return f.parse(text, units.Mass, def)
}

// ParseVolume converts user text to liters.
func (f Formatter) ParseVolume(text string) (float64, error) {
	def := units.Liters
	switch f.opts.VolumeSystem {
	case units.USCustomary:
		def = units.USGallons
	case units.Imperial:
		def = units.ImpGallons
	}
	return f.parse(text, units.Volume, def)
}

// ParseTemperature converts user text to degrees Celsius.
func (f Formatter) ParseTemperature(text string) (float64, error) {
	return f.parse(text, units.Temperature, units.ForScale(f.opts.TempScale))
}

// ParseTime converts user text to minutes.
func (f Formatter) ParseTime(text string) (float64, error) {
	return f.parse(text, units.Time, units.Minutes)
}

// ParseColor converts user text to SRM. "EBC" or "SRM" may follow the number;
// a bare number is read in the configured color unit.
func (f Formatter) ParseColor(text string) (float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("units: empty color")
	}

	unit := f.opts.ColorUnit
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "srm", "l", "°l":
			unit = SRM
		case "ebc":
			unit = EBC
		default:
			return 0, fmt.Errorf("%w %q for color", units.ErrUnknownUnit, fields[1])
		}
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("units: parse %q: %w", text, err)
	}
	if unit == EBC {
		return value / srmToEBC, nil
	}
	return value, nil
}

func (f Formatter) parse(text string, q units.Quantity, def units.Unit) (float64, error) {
	value, err := units.ParseAmount(text, q)
	if err != nil {
		return 0, err
	}
	if units.HasUnits(text) {
		return value, nil
	}
	return def.ToSI(value), nil
}

func (f Formatter) unitFor(q units.Quantity, si float64) units.Unit {
	switch q {
	case units.Mass:
		return units.Best(q, f.opts.WeightSystem, si)
	case units.Volume:
		return units.Best(q, f.opts.VolumeSystem, si)
	case units.Temperature:
		return units.ForScale(f.opts.TempScale)
	default:
		return units.Best(q, units.SI, si)
	}
}

func (f Formatter) gravity(sg float64, showUnits bool) string {
	if f.opts.UsePlato {
		out := f.number(SGToPlato(sg), 1)
		if showUnits {
			out += " °P"
		}
		return out
	}
	out := f.number(sg, 3)
	if showUnits {
		out += " sg"
	}
	return out
}

func (f Formatter) number(v float64, precision int) string {
	return f.printer.Sprintf("%v", number.Decimal(v, number.Scale(precision)))
}

// SGToPlato converts specific gravity to degrees Plato.
func SGToPlato(sg float64) float64 {
	return -616.868 + 1111.14*sg - 630.272*sg*sg + 135.997*sg*sg*sg
}

// PlatoToSG converts degrees Plato to specific gravity.
func PlatoToSG(plato float64) float64 {
	return 1 + plato/(258.6-(plato/258.2)*227.1)
}

func dateLayout(lang string) string {
	switch lang {
	case "en":
		return "01/02/2006"
	case "ja", "zh", "ko", "hu", "lt", "sv":
		return "2006-01-02"
	case "de", "ru", "pl", "cs", "da", "fi", "nb", "no", "tr", "uk":
		return "02.01.2006"
	default:
		return "02/01/2006"
	}
}
