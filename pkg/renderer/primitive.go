// Package renderer drives the PDF writer used to produce roadmap documents.
//
// The contract here is deliberately small: create a document, embed one of
// the standard fonts, add a page, place text at absolute coordinates and
// serialize. Coordinates are in points with the origin at the bottom-left
// corner of the page.
package renderer

// Color is an RGB colour with components in the range [0, 1].
type Color struct {
	R float64
	G float64
	B float64
}

// Black is the default text colour.
//
//nolint:gochecknoglobals // Colour constant
var Black = Color{}

// Font is a handle to a font embedded in a specific document.
type Font struct {
	Name   string
	family string
	style  string
}

// TextOptions positions and styles a single run of text.
type TextOptions struct {
	X     float64
	Y     float64
	Size  float64
	Font  Font
	Color Color
}

// Factory creates empty documents.
type Factory interface {
	CreateDocument() (doc Document, err error)
}

// Document is a single PDF being assembled. It is serialized at most once.
type Document interface {
	EmbedStandardFont(name string) (font Font, err error)
	AddPage() (page Page, err error)
	Serialize() (data []byte, err error)
}

// Page is a page of a Document.
type Page interface {
	Size() (width, height float64)
	DrawText(text string, opts TextOptions)
}

// Standard font names.
const (
	Helvetica            = "Helvetica"
	HelveticaBold        = "Helvetica-Bold"
	HelveticaOblique     = "Helvetica-Oblique"
	HelveticaBoldOblique = "Helvetica-BoldOblique"
	TimesRoman           = "Times-Roman"
	TimesBold            = "Times-Bold"
	TimesItalic          = "Times-Italic"
	TimesBoldItalic      = "Times-BoldItalic"
	Courier              = "Courier"
	CourierBold          = "Courier-Bold"
	CourierOblique       = "Courier-Oblique"
	CourierBoldOblique   = "Courier-BoldOblique"
	Symbol               = "Symbol"
	ZapfDingbats         = "ZapfDingbats"
)

//nolint:gochecknoglobals // Standard font table
var standardFonts = map[string][2]string{
	Helvetica:            {"helvetica", ""},
	HelveticaBold:        {"helvetica", "B"},
	HelveticaOblique:     {"helvetica", "I"},
	HelveticaBoldOblique: {"helvetica", "BI"},
	TimesRoman:           {"times", ""},
	TimesBold:            {"times", "B"},
	TimesItalic:          {"times", "I"},
	TimesBoldItalic:      {"times", "BI"},
	Courier:              {"courier", ""},
	CourierBold:          {"courier", "B"},
	CourierOblique:       {"courier", "I"},
	CourierBoldOblique:   {"courier", "BI"},
	Symbol:               {"symbol", ""},
	ZapfDingbats:         {"zapfdingbats", ""},
}

// IsStandardFont reports whether name is one of the 14 standard PDF fonts.
func IsStandardFont(name string) (ok bool) {
	_, ok = standardFonts[name]
	return ok
}
