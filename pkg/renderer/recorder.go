package renderer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// A4 page dimensions in points.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// Placement is one recorded DrawText call.
type Placement struct {
	Page  int
	Text  string
	X     float64
	Y     float64
	Size  float64
	Font  string
	Color Color
}

// Recorder is a Factory whose documents record placements instead of
// producing PDF bytes. Serialize returns a plain-text listing of every
// placement, which makes it useful for dry runs and layout comparisons.
type Recorder struct {
	Width  float64
	Height float64
	docs   []*RecordedDocument
}

// NewRecorder returns a Recorder using A4 pages.
func NewRecorder() (r *Recorder) {
	r = &Recorder{Width: A4Width, Height: A4Height}
	return r
}

// CreateDocument starts a new recorded document.
func (r *Recorder) CreateDocument() (doc Document, err error) {
	rd := &RecordedDocument{width: r.Width, height: r.Height}
	r.docs = append(r.docs, rd)
	doc = rd
	return doc, err
}

// Documents returns every document created so far.
func (r *Recorder) Documents() (docs []*RecordedDocument) {
	docs = r.docs
	return docs
}

// Last returns the most recently created document, or nil.
func (r *Recorder) Last() (doc *RecordedDocument) {
	if len(r.docs) == 0 {
		return doc
	}
	doc = r.docs[len(r.docs)-1]
	return doc
}

// RecordedDocument is a Document produced by a Recorder.
type RecordedDocument struct {
	width      float64
	height     float64
	Fonts      []string
	Pages      int
	Placements []Placement
	serialized bool
}

func (d *RecordedDocument) EmbedStandardFont(name string) (font Font, err error) {
	face, ok := standardFonts[name]
	if !ok {
		err = errors.Errorf("unknown standard font: %s", name)
		return font, err
	}
	d.Fonts = append(d.Fonts, name)
	font = Font{Name: name, family: face[0], style: face[1]}
	return font, err
}

func (d *RecordedDocument) AddPage() (page Page, err error) {
	if d.serialized {
		err = errors.New("document already serialized")
		return page, err
	}
	d.Pages++
	page = &recordedPage{doc: d, number: d.Pages}
	return page, err
}

func (d *RecordedDocument) Serialize() (data []byte, err error) {
	if d.serialized {
		err = errors.New("document already serialized")
		return data, err
	}
	d.serialized = true
	data = []byte(d.Listing())
	return data, err
}

// Listing renders placements one per line as "page x y size font text".
func (d *RecordedDocument) Listing() (listing string) {
	var b strings.Builder
	for _, p := range d.Placements {
		fmt.Fprintf(&b, "%d %.2f %.2f %.0f %s %s\n", p.Page, p.X, p.Y, p.Size, p.Font, p.Text)
	}
	listing = b.String()
	return listing
}

// Texts returns the drawn strings in order.
func (d *RecordedDocument) Texts() (texts []string) {
	texts = make([]string, 0, len(d.Placements))
	for _, p := range d.Placements {
		texts = append(texts, p.Text)
	}
	return texts
}

// Visible reports whether a placement's baseline lies on the page.
func (d *RecordedDocument) Visible(p Placement) (visible bool) {
	visible = p.Y >= 0 && p.Y <= d.height
	return visible
}

type recordedPage struct {
	doc    *RecordedDocument
	number int
}

func (p *recordedPage) Size() (width, height float64) {
	width = p.doc.width
	height = p.doc.height
	return width, height
}

func (p *recordedPage) DrawText(text string, opts TextOptions) {
	p.doc.Placements = append(p.doc.Placements, Placement{
		Page:  p.number,
		Text:  text,
		X:     opts.X,
		Y:     opts.Y,
		Size:  opts.Size,
		Font:  opts.Font.Name,
		Color: opts.Color,
	})
}
