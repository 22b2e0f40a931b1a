package layout

import "github.com/nikogura/career-roadmap/pkg/renderer"

// Typography holds the fixed layout constants, in points.
type Typography struct {
	Margin       float64
	TopMargin    float64
	Indent       float64
	LineHeight   float64
	TitleSize    float64
	TitleAdvance float64
	HeadingSize  float64
	BodySize     float64
	Font         string
	Color        renderer.Color
}

// DefaultTypography returns the roadmap's standard constants.
func DefaultTypography() (t Typography) {
	t = Typography{
		Margin:       50,
		TopMargin:    50,
		Indent:       10,
		LineHeight:   20,
		TitleSize:    24,
		TitleAdvance: 40,
		HeadingSize:  16,
		BodySize:     12,
		Font:         renderer.Helvetica,
		Color:        renderer.Black,
	}
	return t
}
