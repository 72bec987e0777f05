// Package hop models a single hop ingredient: its validated fields, change
// notifications, and its BeerXML HOP element.
//
// A Hop is owned by one goroutine at a time; it does no locking of its own.
package hop

import "sort"

// Version is the BeerXML record version written to and expected in VERSION.
const Version = 1

// Field names used in change events and validation errors.
const (
	FieldName             = "name"
	FieldVersion          = "version"
	FieldAlphaPct         = "alpha_pct"
	FieldAmountKg         = "amount_kg"
	FieldUse              = "use"
	FieldTimeMin          = "time_min"
	FieldNotes            = "notes"
	FieldType             = "type"
	FieldForm             = "form"
	FieldBetaPct          = "beta_pct"
	FieldHSIPct           = "hsi_pct"
	FieldOrigin           = "origin"
	FieldSubstitutes      = "substitutes"
	FieldHumulenePct      = "humulene_pct"
	FieldCaryophyllenePct = "caryophyllene_pct"
	FieldCohumulonePct    = "cohumulone_pct"
	FieldMyrcenePct       = "myrcene_pct"
)

// Hop is a hop ingredient. Fields change only through the setters.
type Hop struct {
	name             string
	version          int
	alphaPct         float64
	amountKg         float64
	use              string
	timeMin          float64
	notes            string
	typ              string
	form             string
	betaPct          float64
	hsiPct           float64
	origin           string
	substitutes      string
	humulenePct      float64
	caryophyllenePct float64
	cohumulonePct    float64
	myrcenePct       float64

	listeners []*subscription
}

// Values is a plain copy of every field of a Hop.
type Values struct {
	Name             string  `json:"name"`
	Version          int     `json:"version"`
	AlphaPct         float64 `json:"alpha_pct"`
	AmountKg         float64 `json:"amount_kg"`
	Use              string  `json:"use"`
	TimeMin          float64 `json:"time_min"`
	Notes            string  `json:"notes"`
	Type             string  `json:"type"`
	Form             string  `json:"form"`
	BetaPct          float64 `json:"beta_pct"`
	HSIPct           float64 `json:"hsi_pct"`
	Origin           string  `json:"origin"`
	Substitutes      string  `json:"substitutes"`
	HumulenePct      float64 `json:"humulene_pct"`
	CaryophyllenePct float64 `json:"caryophyllene_pct"`
	CohumulonePct    float64 `json:"cohumulone_pct"`
	MyrcenePct       float64 `json:"myrcene_pct"`
}

// Editor is the mutation surface of a Hop, for collaborators that edit a
// record without needing its serialization or subscriptions.
type Editor interface {
	SetName(string)
	SetNotes(string)
	SetOrigin(string)
	SetSubstitutes(string)
	SetUse(string) error
	SetType(string) error
	SetForm(string) error
	SetAlphaPct(float64) error
	SetAmountKg(float64) error
	SetTimeMin(float64) error
	SetBetaPct(float64) error
	SetHSIPct(float64) error
	SetHumulenePct(float64) error
	SetCaryophyllenePct(float64) error
	SetCohumulonePct(float64) error
	SetMyrcenePct(float64) error
}

// Observable is the subscription surface of a Hop.
type Observable interface {
	Subscribe(Listener) func()
}

var (
	_ Editor     = (*Hop)(nil)
	_ Observable = (*Hop)(nil)
)

// New returns a hop with every field at its default.
func New() *Hop {
	h := &Hop{}
	h.setDefaults()
	return h
}

func (h *Hop) setDefaults() {
	h.name = ""
	h.version = Version
	h.use = UseBoil
	h.notes = ""
	h.typ = TypeBoth
	h.form = FormPellet
	h.origin = ""
	h.substitutes = ""

	h.alphaPct = 0
	h.amountKg = 0
	h.timeMin = 0
	h.betaPct = 0
	h.hsiPct = 0
	h.humulenePct = 0
	h.caryophyllenePct = 0
	h.cohumulonePct = 0
	h.myrcenePct = 0
}

// Clone copies every field into a new Hop. Subscriptions are not copied.
func (h *Hop) Clone() *Hop {
	c := *h
	c.listeners = nil
	return &c
}

// FromValues builds a Hop by applying v through the validated setters. The
// first failing field stops construction. A zero Version is read as the
// current one; any other version is rejected.
func FromValues(v Values) (*Hop, error) {
	if v.Version != 0 && v.Version != Version {
		return nil, badVersion(v.Version)
	}
	h := New()
	h.SetName(v.Name)
	h.SetNotes(v.Notes)
	h.SetOrigin(v.Origin)
	h.SetSubstitutes(v.Substitutes)

	setters := []func() error{
		func() error { return h.SetUse(v.Use) },
		func() error { return h.SetType(v.Type) },
		func() error { return h.SetForm(v.Form) },
		func() error { return h.SetAlphaPct(v.AlphaPct) },
		func() error { return h.SetAmountKg(v.AmountKg) },
		func() error { return h.SetTimeMin(v.TimeMin) },
		func() error { return h.SetBetaPct(v.BetaPct) },
		func() error { return h.SetHSIPct(v.HSIPct) },
		func() error { return h.SetHumulenePct(v.HumulenePct) },
		func() error { return h.SetCaryophyllenePct(v.CaryophyllenePct) },
		func() error { return h.SetCohumulonePct(v.CohumulonePct) },
		func() error { return h.SetMyrcenePct(v.MyrcenePct) },
	}
	for _, set := range setters {
		if err := set(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Values returns a copy of every field.
func (h *Hop) Values() Values {
	return Values{
		Name:             h.name,
		Version:          h.version,
		AlphaPct:         h.alphaPct,
		AmountKg:         h.amountKg,
		Use:              h.use,
		TimeMin:          h.timeMin,
		Notes:            h.notes,
		Type:             h.typ,
		Form:             h.form,
		BetaPct:          h.betaPct,
		HSIPct:           h.hsiPct,
		Origin:           h.origin,
		Substitutes:      h.substitutes,
		HumulenePct:      h.humulenePct,
		CaryophyllenePct: h.caryophyllenePct,
		CohumulonePct:    h.cohumulonePct,
		MyrcenePct:       h.myrcenePct,
	}
}

// Equal reports whether a and b share a name. Other fields are ignored, so two
// differently-specified hops with the same name compare equal; use SameValues
// for a full comparison.
func Equal(a, b *Hop) bool {
	return a.name == b.name
}

// Less orders hops by name.
func Less(a, b *Hop) bool {
	return a.name < b.name
}

// SameValues reports whether every field of a and b matches.
func SameValues(a, b *Hop) bool {
	return a.Values() == b.Values()
}

// Sort orders hops by name in place.
func Sort(hops []*Hop) {
	sort.SliceStable(hops, func(i, j int) bool {
		return Less(hops[i], hops[j])
	})
}

//============================== getters ==============================

func (h *Hop) Name() string              { return h.name }
func (h *Hop) Version() int              { return h.version }
func (h *Hop) AlphaPct() float64         { return h.alphaPct }
func (h *Hop) AmountKg() float64         { return h.amountKg }
func (h *Hop) Use() string               { return h.use }
func (h *Hop) TimeMin() float64          { return h.timeMin }
func (h *Hop) Notes() string             { return h.notes }
func (h *Hop) Type() string              { return h.typ }
func (h *Hop) Form() string              { return h.form }
func (h *Hop) BetaPct() float64          { return h.betaPct }
func (h *Hop) HSIPct() float64           { return h.hsiPct }
func (h *Hop) Origin() string            { return h.origin }
func (h *Hop) Substitutes() string       { return h.substitutes }
func (h *Hop) HumulenePct() float64      { return h.humulenePct }
func (h *Hop) CaryophyllenePct() float64 { return h.caryophyllenePct }
func (h *Hop) CohumulonePct() float64    { return h.cohumulonePct }
func (h *Hop) MyrcenePct() float64       { return h.myrcenePct }

//============================== setters ==============================

func (h *Hop) SetName(s string) {
	h.name = s
	h.changed(FieldName)
}

func (h *Hop) SetNotes(s string) {
	h.notes = s
	h.changed(FieldNotes)
}

func (h *Hop) SetOrigin(s string) {
	h.origin = s
	h.changed(FieldOrigin)
}

func (h *Hop) SetSubstitutes(s string) {
	h.substitutes = s
	h.changed(FieldSubstitutes)
}

// SetUse stores s if it begins with a legal use.
func (h *Hop) SetUse(s string) error {
	if !IsValidUse(s) {
		return notInSet(FieldUse, "use", s)
	}
	h.use = s
	h.changed(FieldUse)
	return nil
}

// SetType stores s if it begins with a legal type.
func (h *Hop) SetType(s string) error {
	if !IsValidType(s) {
		return notInSet(FieldType, "type", s)
	}
	h.typ = s
	h.changed(FieldType)
	return nil
}

// SetForm stores s if it begins with a legal form.
func (h *Hop) SetForm(s string) error {
	if !IsValidForm(s) {
		return notInSet(FieldForm, "form", s)
	}
	h.form = s
	h.changed(FieldForm)
	return nil
}

func (h *Hop) SetAlphaPct(v float64) error {
	return h.setPercent(&h.alphaPct, FieldAlphaPct, v)
}

func (h *Hop) SetBetaPct(v float64) error {
	return h.setPercent(&h.betaPct, FieldBetaPct, v)
}

func (h *Hop) SetHSIPct(v float64) error {
	return h.setPercent(&h.hsiPct, FieldHSIPct, v)
}

func (h *Hop) SetHumulenePct(v float64) error {
	return h.setPercent(&h.humulenePct, FieldHumulenePct, v)
}

func (h *Hop) SetCaryophyllenePct(v float64) error {
	return h.setPercent(&h.caryophyllenePct, FieldCaryophyllenePct, v)
}

func (h *Hop) SetCohumulonePct(v float64) error {
	return h.setPercent(&h.cohumulonePct, FieldCohumulonePct, v)
}

func (h *Hop) SetMyrcenePct(v float64) error {
	return h.setPercent(&h.myrcenePct, FieldMyrcenePct, v)
}

// SetAmountKg stores a non-negative mass in kilograms.
func (h *Hop) SetAmountKg(v float64) error {
	if !(v >= 0) {
		return badAmount(FieldAmountKg, v)
	}
	h.amountKg = v
	h.changed(FieldAmountKg)
	return nil
}

// SetTimeMin stores a non-negative duration in minutes.
func (h *Hop) SetTimeMin(v float64) error {
	if !(v >= 0) {
		return badTime(FieldTimeMin, v)
	}
	h.timeMin = v
	h.changed(FieldTimeMin)
	return nil
}

// setPercent rejects NaN along with anything outside [0, 100].
func (h *Hop) setPercent(dst *float64, field string, v float64) error {
	if !(v >= 0 && v <= 100) {
		return badPercentage(field, v)
	}
	*dst = v
	h.changed(field)
	return nil
}
