package hop

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "brewkit/internal/log"
)

func parseElement(t *testing.T, src string) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(src))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func TestToXMLFieldOrder(t *testing.T) {
	t.Parallel()

	el := sampleHop(t).ToXML(nil)
	require.Equal(t, ElementTag, el.Tag)

	want := []string{
		"NAME", "VERSION", "ALPHA", "AMOUNT", "USE", "TIME", "NOTES", "TYPE", "FORM",
		"BETA", "HSI", "ORIGIN", "SUBSTITUTES", "HUMULENE", "CARYOPHYLLENE", "COHUMULONE", "MYRCENE",
	}
	children := el.ChildElements()
	require.Len(t, children, len(want))
	for i, child := range children {
		assert.Equal(t, want[i], child.Tag)
	}
	assert.Equal(t, "1", el.SelectElement("VERSION").Text())
	assert.Equal(t, "5.5", el.SelectElement("ALPHA").Text())
	assert.Equal(t, "Dry Hop", el.SelectElement("USE").Text())
}

func TestToXMLAppendsToParent(t *testing.T) {
	t.Parallel()

	parent := etree.NewElement("HOPS")
	el := New().ToXML(parent)
	require.Len(t, parent.ChildElements(), 1)
	assert.Same(t, el, parent.ChildElements()[0])
}

func TestXMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := sampleHop(t)

	doc := etree.NewDocument()
	original.ToXML(&doc.Element)
	doc.Indent(2)
	text, err := doc.WriteToString()
	require.NoError(t, err)

	got, err := FromXML(context.Background(), parseElement(t, text), applog.New(new(bytes.Buffer)))
	require.NoError(t, err)
	assert.Equal(t, original.Values(), got.Values())
	assert.True(t, SameValues(original, got))
}

// An empty FORM is written as an element without text, which reading skips,
// so the form comes back as the default.
func TestXMLRoundTripEmptyFormReadsBackAsPellet(t *testing.T) {
	t.Parallel()

	original := sampleHop(t)
	require.NoError(t, original.SetForm(""))

	doc := etree.NewDocument()
	original.ToXML(&doc.Element)
	text, err := doc.WriteToString()
	require.NoError(t, err)

	got, err := FromXML(context.Background(), parseElement(t, text), applog.New(new(bytes.Buffer)))
	require.NoError(t, err)
	assert.Equal(t, FormPellet, got.Form())
	assert.False(t, SameValues(original, got))

	want := original.Values()
	want.Form = FormPellet
	assert.Equal(t, want, got.Values())
}

func TestFromXMLSkipsUnknownTags(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	el := parseElement(t, `<HOP>
  <NAME>Saaz</NAME>
  <DISPLAY_AMOUNT>1 oz</DISPLAY_AMOUNT>
  <ALPHA>3.5</ALPHA>
  <ORIGIN>Czech Republic</ORIGIN>
</HOP>`)

	h, err := FromXML(context.Background(), el, applog.New(buf))
	require.NoError(t, err)
	assert.Equal(t, "Saaz", h.Name())
	assert.Equal(t, 3.5, h.AlphaPct())
	assert.Equal(t, "Czech Republic", h.Origin())
	assert.Contains(t, buf.String(), "level=warn")
	assert.Contains(t, buf.String(), "DISPLAY_AMOUNT")
}

func TestFromXMLInvalidUseKeepsDefault(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	el := parseElement(t, `<HOP><NAME>Magnum</NAME><USE>Whirlpool</USE><TYPE>Noble</TYPE></HOP>`)

	h, err := FromXML(context.Background(), el, applog.New(buf))
	require.NoError(t, err)
	assert.Equal(t, UseBoil, h.Use())
	assert.Equal(t, TypeBoth, h.Type())
	assert.Equal(t, "Magnum", h.Name())
	assert.Equal(t, 2, strings.Count(buf.String(), "level=error"))
}

func TestFromXMLVersionMismatchIsLogged(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	el := parseElement(t, `<HOP><VERSION>2</VERSION><NAME>Fuggle</NAME></HOP>`)

	h, err := FromXML(context.Background(), el, applog.New(buf))
	require.NoError(t, err)
	assert.Equal(t, "Fuggle", h.Name())
	assert.Equal(t, Version, h.Version())
	assert.Contains(t, buf.String(), "level=error")
}

func TestFromXMLNonElementAndEmptyChildren(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	el := parseElement(t, `<HOP>stray text<!-- a comment --><NAME>Target</NAME><NOTES></NOTES><FORM/><TIME><X/></TIME></HOP>`)

	h, err := FromXML(context.Background(), el, applog.New(buf))
	require.NoError(t, err)
	assert.Equal(t, "Target", h.Name())
	assert.Equal(t, "", h.Notes())
	assert.Equal(t, FormPellet, h.Form())
	assert.Equal(t, 0.0, h.TimeMin())
	assert.Equal(t, 2, strings.Count(buf.String(), "node is not an element"))
}

func TestFromXMLUnparsableNumberKeepsDefault(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	el := parseElement(t, `<HOP><ALPHA>high</ALPHA><BETA> 4.5 </BETA></HOP>`)

	h, err := FromXML(context.Background(), el, applog.New(buf))
	require.NoError(t, err)
	assert.Equal(t, 0.0, h.AlphaPct())
	assert.Equal(t, 4.5, h.BetaPct())
	assert.Contains(t, buf.String(), "value is not a number")
}

func TestFromXMLOutOfRangeStopsWithPartialRecord(t *testing.T) {
	t.Parallel()

	el := parseElement(t, `<HOP><NAME>Galena</NAME><ALPHA>130</ALPHA><ORIGIN>US</ORIGIN></HOP>`)

	h, err := FromXML(context.Background(), el, applog.New(new(bytes.Buffer)))
	require.ErrorIs(t, err, ErrValidation)
	require.NotNil(t, h)
	assert.Equal(t, "Galena", h.Name())
	assert.Equal(t, 0.0, h.AlphaPct())
	assert.Equal(t, "", h.Origin())
}

func TestReadXMLResetsToDefaults(t *testing.T) {
	t.Parallel()

	h := sampleHop(t)
	err := h.ReadXML(context.Background(), parseElement(t, `<HOP><NAME>Tettnang</NAME></HOP>`), applog.New(new(bytes.Buffer)))
	require.NoError(t, err)

	want := New().Values()
	want.Name = "Tettnang"
	assert.Equal(t, want, h.Values())
}
