package renderer

import (
	"bytes"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// Supported page sizes.
const (
	PageA3     = "A3"
	PageA4     = "A4"
	PageA5     = "A5"
	PageLetter = "Letter"
	PageLegal  = "Legal"
)

// Options configures documents produced by PDFFactory.
type Options struct {
	PageSize     string
	Compress     bool
	CreationDate time.Time
	Title        string
	Creator      string
}

// PDFFactory creates fpdf-backed documents.
type PDFFactory struct {
	opts Options
}

// NewPDFFactory validates the options and returns a factory.
func NewPDFFactory(opts Options) (factory *PDFFactory, err error) {
	if opts.PageSize == "" {
		opts.PageSize = PageA4
	}

	switch opts.PageSize {
	case PageA3, PageA4, PageA5, PageLetter, PageLegal:
	default:
		err = errors.Errorf("unsupported page size: %s", opts.PageSize)
		return factory, err
	}

	factory = &PDFFactory{opts: opts}
	return factory, err
}

// CreateDocument starts a new, empty document.
func (f *PDFFactory) CreateDocument() (doc Document, err error) {
	pdf := fpdf.New("P", "pt", f.opts.PageSize, "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(f.opts.Compress)
	pdf.SetCatalogSort(true)
	if !f.opts.CreationDate.IsZero() {
		pdf.SetCreationDate(f.opts.CreationDate)
		pdf.SetModificationDate(f.opts.CreationDate)
	}
	if f.opts.Title != "" {
		pdf.SetTitle(f.opts.Title, true)
	}
	if f.opts.Creator != "" {
		pdf.SetCreator(f.opts.Creator, true)
	}

	if pdf.Err() {
		err = errors.Wrap(pdf.Error(), "failed to create PDF document")
		return doc, err
	}

	doc = &pdfDocument{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		embedded:  map[string]bool{},
	}
	return doc, err
}

type pdfDocument struct {
	pdf        *fpdf.Fpdf
	translate  func(string) string
	embedded   map[string]bool
	pages      int
	serialized bool
	err        error
}

func (d *pdfDocument) EmbedStandardFont(name string) (font Font, err error) {
	face, ok := standardFonts[name]
	if !ok {
		err = errors.Errorf("unknown standard font: %s", name)
		return font, err
	}

	// Loading the metrics once here surfaces problems before any drawing.
	d.pdf.SetFont(face[0], face[1], 12)
	if d.pdf.Err() {
		err = errors.Wrapf(d.pdf.Error(), "failed to embed font: %s", name)
		return font, err
	}

	d.embedded[name] = true
	font = Font{Name: name, family: face[0], style: face[1]}
	return font, err
}

func (d *pdfDocument) AddPage() (page Page, err error) {
	if d.serialized {
		err = errors.New("document already serialized")
		return page, err
	}

	d.pdf.AddPage()
	if d.pdf.Err() {
		err = errors.Wrap(d.pdf.Error(), "failed to add page")
		return page, err
	}

	d.pages++
	width, height := d.pdf.GetPageSize()
	page = &pdfPage{doc: d, number: d.pages, width: width, height: height}
	return page, err
}

func (d *pdfDocument) Serialize() (data []byte, err error) {
	if d.serialized {
		err = errors.New("document already serialized")
		return data, err
	}
	d.serialized = true

	if d.err != nil {
		err = d.err
		return data, err
	}

	var buf bytes.Buffer
	err = d.pdf.Output(&buf)
	if err != nil {
		err = errors.Wrap(err, "failed to serialize PDF")
		return data, err
	}

	data = buf.Bytes()
	return data, err
}

type pdfPage struct {
	doc    *pdfDocument
	number int
	width  float64
	height float64
}

func (p *pdfPage) Size() (width, height float64) {
	width = p.width
	height = p.height
	return width, height
}

// DrawText places text with its baseline at (X, Y). Coordinates outside the
// page are accepted; the text is simply not visible.
func (p *pdfPage) DrawText(text string, opts TextOptions) {
	d := p.doc
	if d.err != nil {
		return
	}
	if !d.embedded[opts.Font.Name] {
		d.err = errors.Errorf("font not embedded in document: %q", opts.Font.Name)
		return
	}

	if bad, ok := d.unencodable(text); ok {
		d.err = errors.Errorf("cannot encode %q in WinAnsi text: %q", bad, text)
		return
	}

	d.pdf.SetPage(p.number)
	d.pdf.SetFont(opts.Font.family, opts.Font.style, opts.Size)
	d.pdf.SetTextColor(channel(opts.Color.R), channel(opts.Color.G), channel(opts.Color.B))
	// fpdf measures y from the top edge.
	d.pdf.Text(opts.X, p.height-opts.Y, d.translate(text))
}

// unencodable returns the first rune the cp1252 translator cannot map. The
// translator substitutes '.' for those.
func (d *pdfDocument) unencodable(text string) (bad rune, found bool) {
	for _, r := range text {
		if r < utf8.RuneSelf {
			continue
		}
		if d.translate(string(r)) == "." {
			bad = r
			found = true
			return bad, found
		}
	}
	return bad, found
}

func channel(v float64) (c int) {
	switch {
	case v <= 0:
		c = 0
	case v >= 1:
		c = 255
	default:
		c = int(v*255 + 0.5)
	}
	return c
}
