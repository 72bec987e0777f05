package hop

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	applog "brewkit/internal/log"
)

// ElementTag is the BeerXML element name of a single hop.
const ElementTag = "HOP"

// ToXML appends a HOP element describing h to parent and returns it. A nil
// parent yields a detached element.
func (h *Hop) ToXML(parent *etree.Element) *etree.Element {
	el := etree.NewElement(ElementTag)

	add := func(tag, text string) {
		el.CreateElement(tag).SetText(text)
	}
	add("NAME", h.name)
	add("VERSION", strconv.Itoa(h.version))
	add("ALPHA", formatDouble(h.alphaPct))
	add("AMOUNT", formatDouble(h.amountKg))
	add("USE", h.use)
	add("TIME", formatDouble(h.timeMin))
	add("NOTES", h.notes)
	add("TYPE", h.typ)
	add("FORM", h.form)
	add("BETA", formatDouble(h.betaPct))
	add("HSI", formatDouble(h.hsiPct))
	add("ORIGIN", h.origin)
	add("SUBSTITUTES", h.substitutes)
	add("HUMULENE", formatDouble(h.humulenePct))
	add("CARYOPHYLLENE", formatDouble(h.caryophyllenePct))
	add("COHUMULONE", formatDouble(h.cohumulonePct))
	add("MYRCENE", formatDouble(h.myrcenePct))

	if parent != nil {
		parent.AddChild(el)
	}
	return el
}

// FromXML builds a hop from a HOP element. See (*Hop).ReadXML for how bad
// input is handled. The hop is returned even when err is non-nil.
func FromXML(ctx context.Context, el *etree.Element, logger *slog.Logger) (*Hop, error) {
	h := New()
	err := h.ReadXML(ctx, el, logger)
	return h, err
}

// ReadXML resets h to its defaults and then applies the children of el in
// document order. Unknown tags and stray non-element nodes are logged as
// warnings; bad versions, enumerations and unparsable numbers are logged as
// errors and leave the field at its default. A number outside its legal range
// stops the walk and its *ValidationError is returned; fields read before it
// keep their values.
func (h *Hop) ReadXML(ctx context.Context, el *etree.Element, logger *slog.Logger) error {
	if logger == nil {
		logger = applog.Logger()
	}
	h.setDefaults()
	if el == nil {
		return nil
	}

	for idx, token := range el.Child {
		node, ok := token.(*etree.Element)
		if !ok {
			if data, isText := token.(*etree.CharData); isText && strings.TrimSpace(data.Data) == "" {
				continue
			}
			logger.WarnContext(ctx, "node is not an element", "parent", el.GetPath(), "index", idx)
			continue
		}

		if len(node.Child) == 0 {
			continue
		}
		if _, isText := node.Child[0].(*etree.CharData); !isText {
			continue
		}
		value := node.Text()
		path := node.GetPath()

		var err error
		switch node.Tag {
		case "NAME":
			h.SetName(value)
		case "VERSION":
			if v, convErr := strconv.Atoi(strings.TrimSpace(value)); convErr != nil || v != h.version {
				logger.ErrorContext(ctx, "HOP says it is not the expected version", "expected", h.version, "value", value, "path", path)
			}
		case "ALPHA":
			err = h.readDouble(ctx, logger, path, value, h.SetAlphaPct)
		case "AMOUNT":
			err = h.readDouble(ctx, logger, path, value, h.SetAmountKg)
		case "USE":
			if IsValidUse(value) {
				_ = h.SetUse(value)
			} else {
				logger.ErrorContext(ctx, "not a valid use for HOP", "value", value, "path", path)
			}
		case "TIME":
			err = h.readDouble(ctx, logger, path, value, h.SetTimeMin)
		case "NOTES":
			h.SetNotes(value)
		case "TYPE":
			if IsValidType(value) {
				_ = h.SetType(value)
			} else {
				logger.ErrorContext(ctx, "not a valid type for HOP", "value", value, "path", path)
			}
		case "FORM":
			if IsValidForm(value) {
				_ = h.SetForm(value)
			} else {
				logger.ErrorContext(ctx, "not a valid form for HOP", "value", value, "path", path)
			}
		case "BETA":
			err = h.readDouble(ctx, logger, path, value, h.SetBetaPct)
		case "HSI":
			err = h.readDouble(ctx, logger, path, value, h.SetHSIPct)
		case "ORIGIN":
			h.SetOrigin(value)
		case "SUBSTITUTES":
			h.SetSubstitutes(value)
		case "HUMULENE":
			err = h.readDouble(ctx, logger, path, value, h.SetHumulenePct)
		case "CARYOPHYLLENE":
			err = h.readDouble(ctx, logger, path, value, h.SetCaryophyllenePct)
		case "COHUMULONE":
			err = h.readDouble(ctx, logger, path, value, h.SetCohumulonePct)
		case "MYRCENE":
			err = h.readDouble(ctx, logger, path, value, h.SetMyrcenePct)
		default:
			logger.WarnContext(ctx, "unsupported HOP property", "property", node.Tag, "path", path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *Hop) readDouble(ctx context.Context, logger *slog.Logger, path, text string, set func(float64) error) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		logger.ErrorContext(ctx, "value is not a number", "value", text, "path", path)
		return nil
	}
	return set(v)
}
