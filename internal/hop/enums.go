package hop

import "strings"

// Legal hop uses, in BeerXML spelling.
const (
	UseBoil      = "Boil"
	UseDryHop    = "Dry Hop"
	UseMash      = "Mash"
	UseFirstWort = "First Wort"
	UseAroma     = "Aroma"
)

// Legal hop types.
const (
	TypeBittering = "Bittering"
	TypeAroma     = "Aroma"
	TypeBoth      = "Both"
)

// Legal hop forms. FormNone is the empty form.
const (
	FormPellet = "Pellet"
	FormPlug   = "Plug"
	FormLeaf   = "Leaf"
	FormNone   = ""
)

var (
	uses  = []string{UseBoil, UseDryHop, UseMash, UseFirstWort, UseAroma}
	types = []string{TypeBittering, TypeAroma, TypeBoth}
	forms = []string{FormPellet, FormPlug, FormLeaf, FormNone}
)

// Uses returns the legal use values.
func Uses() []string { return append([]string(nil), uses...) }

// Types returns the legal type values.
func Types() []string { return append([]string(nil), types...) }

// Forms returns the legal form values.
func Forms() []string { return append([]string(nil), forms...) }

// IsValidUse reports whether s begins with one of the legal uses.
func IsValidUse(s string) bool { return hasAnyPrefix(s, uses) }

// IsValidType reports whether s begins with one of the legal types.
func IsValidType(s string) bool { return hasAnyPrefix(s, types) }

// IsValidForm reports whether s begins with one of the legal forms. Because
// the empty form is legal, every string passes.
func IsValidForm(s string) bool { return hasAnyPrefix(s, forms) }

func hasAnyPrefix(s string, set []string) bool {
	for _, candidate := range set {
		if strings.HasPrefix(s, candidate) {
			return true
		}
	}
	return false
}
