package layout

import "github.com/nikogura/career-roadmap/pkg/renderer"

// Cursor tracks the vertical writing position on a page. It only ever moves
// down and never checks the remaining space: content past the bottom edge is
// placed at negative offsets and is not visible.
type Cursor struct {
	Page renderer.Page
	Y    float64
}

// NewCursor starts a cursor topMargin below the top of page.
func NewCursor(page renderer.Page, topMargin float64) (c *Cursor) {
	_, height := page.Size()
	c = &Cursor{Page: page, Y: height - topMargin}
	return c
}

// Advance moves the cursor down by delta points.
func (c *Cursor) Advance(delta float64) {
	c.Y -= delta
}

// Draw places text at x on the current line.
func (c *Cursor) Draw(text string, x, size float64, font renderer.Font, color renderer.Color) {
	c.Page.DrawText(text, renderer.TextOptions{
		X:     x,
		Y:     c.Y,
		Size:  size,
		Font:  font,
		Color: color,
	})
}

// Overflowed reports whether the cursor has passed the bottom edge.
func (c *Cursor) Overflowed() (overflowed bool) {
	overflowed = c.Y < 0
	return overflowed
}
