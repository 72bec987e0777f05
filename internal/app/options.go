package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"brewkit/internal/units"
)

// OptionsFile is the file name of the persisted options inside the config
// directory.
const OptionsFile = "options.yaml"

// ColorFormula selects how recipe color is estimated from the grain bill.
type ColorFormula string

const (
	Mosher ColorFormula = "mosher"
	Daniel ColorFormula = "daniel"
	Morey  ColorFormula = "morey"
)

// ColorUnit selects how color is displayed.
type ColorUnit string

const (
	SRM ColorUnit = "srm"
	EBC ColorUnit = "ebc"
)

// IBUFormula selects the bitterness estimate.
type IBUFormula string

const (
	Tinseth IBUFormula = "tinseth"
	Rager   IBUFormula = "rager"
)

// Options are the user preferences persisted between runs.
type Options struct {
	WeightSystem       units.System    `yaml:"weight_unit_system" json:"weightUnitSystem"`
	VolumeSystem       units.System    `yaml:"volume_unit_system" json:"volumeUnitSystem"`
	TempScale          units.TempScale `yaml:"temperature_scale" json:"temperatureScale"`
	ColorFormula       ColorFormula    `yaml:"color_formula" json:"colorFormula"`
	ColorUnit          ColorUnit       `yaml:"color_unit" json:"colorUnit"`
	IBUFormula         IBUFormula      `yaml:"ibu_formula" json:"ibuFormula"`
	UsePlato           bool            `yaml:"use_plato" json:"usePlato"`
	Language           string          `yaml:"language,omitempty" json:"language,omitempty"`
	UserDataDir        string          `yaml:"user_data_dir,omitempty" json:"userDataDir,omitempty"`
	CheckVersion       bool            `yaml:"check_version" json:"checkVersion"`
	LastDBMergeRequest time.Time       `yaml:"last_db_merge_request,omitempty" json:"lastDbMergeRequest,omitempty"`
}

// DefaultOptions returns the options used when no options file exists.
func DefaultOptions() Options {
	return Options{
		WeightSystem: units.SI,
		VolumeSystem: units.SI,
		TempScale:    units.Celsius,
		ColorFormula: Morey,
		ColorUnit:    SRM,
		IBUFormula:   Tinseth,
		CheckVersion: true,
	}
}

// normalize replaces unknown enum values with their defaults and reports the
// names of the options it had to reset.
func (o *Options) normalize() []string {
	def := DefaultOptions()
	var reset []string

	switch o.WeightSystem {
	case units.SI, units.USCustomary, units.Imperial:
	default:
		o.WeightSystem = def.WeightSystem
		reset = append(reset, "weight_unit_system")
	}
	switch o.VolumeSystem {
	case units.SI, units.USCustomary, units.Imperial:
	default:
		o.VolumeSystem = def.VolumeSystem
		reset = append(reset, "volume_unit_system")
	}
	switch o.TempScale {
	case units.Celsius, units.Fahrenheit:
	default:
		o.TempScale = def.TempScale
		reset = append(reset, "temperature_scale")
	}
	switch o.ColorFormula {
	case Mosher, Daniel, Morey:
	default:
		o.ColorFormula = def.ColorFormula
		reset = append(reset, "color_formula")
	}
	switch o.ColorUnit {
	case SRM, EBC:
	default:
		o.ColorUnit = def.ColorUnit
		reset = append(reset, "color_unit")
	}
	switch o.IBUFormula {
	case Tinseth, Rager:
	default:
		o.IBUFormula = def.IBUFormula
		reset = append(reset, "ibu_formula")
	}
	if o.Language != "" {
		if code, err := normalizeLanguage(o.Language); err != nil {
			o.Language = ""
			reset = append(reset, "language")
		} else {
			o.Language = code
		}
	}
	return reset
}

// ReadOptions loads the options file from the config directory. A missing
// file yields the defaults and is written out so the next run finds it.
func (a *App) ReadOptions(ctx context.Context) error {
	path := a.optionsPath()

	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.Log(ctx, LevelWarning, "options file missing, writing defaults", "path", path)
		a.setOptions(opts)
		return a.SaveOptions(ctx)
	case err != nil:
		return fmt.Errorf("read options: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return fmt.Errorf("parse options %s: %w", path, err)
	}
	for _, name := range opts.normalize() {
		a.Log(ctx, LevelWarning, "option has an unsupported value, using default", "option", name, "path", path)
	}

	a.setOptions(opts)
	return nil
}

// SaveOptions writes the current options to the config directory.
func (a *App) SaveOptions(ctx context.Context) error {
	path := a.optionsPath()

	data, err := yaml.Marshal(a.Options())
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write options: %w", err)
	}
	a.Log(ctx, LevelDebug, "options saved", "path", path)
	return nil
}

func (a *App) optionsPath() string {
	return filepath.Join(a.Dirs().ConfigDir, OptionsFile)
}
