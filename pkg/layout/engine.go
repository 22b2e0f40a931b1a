// Package layout turns a profile into a single-page career roadmap PDF.
//
// Generation is one sequential pass: resolve recommendations, assemble the
// sections in their fixed order, then walk a vertical cursor down the page
// placing each heading and line. The page is never broken; content that does
// not fit runs off the bottom edge.
package layout

import (
	"context"
	"log/slog"

	"github.com/nikogura/career-roadmap/pkg/logging"
	"github.com/nikogura/career-roadmap/pkg/profile"
	"github.com/nikogura/career-roadmap/pkg/recommend"
	"github.com/nikogura/career-roadmap/pkg/renderer"
)

// FactoryLoader supplies the document factory, loading it on first use.
type FactoryLoader interface {
	Load(ctx context.Context) (factory renderer.Factory, err error)
}

// Output is a finished roadmap.
type Output struct {
	Bytes           []byte
	FileName        string
	Sections        []Section
	Recommendations recommend.Set
	// FinalY is the cursor position after the last line.
	FinalY float64
}

// Engine generates roadmap documents. Each call builds its own document and
// cursor, so an Engine may be shared; callers that must not run two
// generations at once guard that themselves.
type Engine struct {
	loader     FactoryLoader
	typography Typography
	logger     *slog.Logger
}

// Option customizes an Engine.
type Option func(e *Engine)

// WithTypography replaces the default layout constants.
func WithTypography(t Typography) (opt Option) {
	opt = func(e *Engine) {
		e.typography = t
	}
	return opt
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) (opt Option) {
	opt = func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
	return opt
}

// NewEngine creates an engine backed by loader.
func NewEngine(loader FactoryLoader, opts ...Option) (engine *Engine) {
	engine = &Engine{
		loader:     loader,
		typography: DefaultTypography(),
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Typography returns the constants in use.
func (e *Engine) Typography() (t Typography) {
	t = e.typography
	return t
}

// Generate renders the roadmap for p. On any writer failure it returns a
// *GenerationError and a zero Output.
func (e *Engine) Generate(ctx context.Context, p profile.Profile) (out Output, err error) {
	var factory renderer.Factory
	factory, err = e.loader.Load(ctx)
	if err != nil {
		err = e.fail(StageLoad, err)
		return out, err
	}

	field := p.Field()
	rec := recommend.Resolve(field)
	sections := BuildSections(p, rec)

	var doc renderer.Document
	doc, err = factory.CreateDocument()
	if err != nil {
		err = e.fail(StageCreate, err)
		return out, err
	}

	var font renderer.Font
	font, err = doc.EmbedStandardFont(e.typography.Font)
	if err != nil {
		err = e.fail(StageEmbedFont, err)
		return out, err
	}

	var page renderer.Page
	page, err = doc.AddPage()
	if err != nil {
		err = e.fail(StageAddPage, err)
		return out, err
	}

	cursor := NewCursor(page, e.typography.TopMargin)
	e.draw(cursor, font, sections)

	if cursor.Overflowed() {
		e.logger.Debug("roadmap.overflow", "final_y", cursor.Y)
	}

	var data []byte
	data, err = doc.Serialize()
	if err != nil {
		err = e.fail(StageSerialize, err)
		return out, err
	}

	out = Output{
		Bytes:           data,
		FileName:        FileName(p),
		Sections:        sections,
		Recommendations: rec,
		FinalY:          cursor.Y,
	}

	e.logger.Info("roadmap.generated",
		"file", out.FileName,
		"field", field,
		"curated", rec.Curated,
		"dream_role", p.Role(),
		"bytes", len(data),
	)

	return out, err
}

// draw walks the sections down the page.
func (e *Engine) draw(cursor *Cursor, font renderer.Font, sections []Section) {
	t := e.typography

	for _, s := range sections {
		size := t.HeadingSize
		advance := t.LineHeight
		if s.Level == LevelDocument {
			size = t.TitleSize
			advance = t.TitleAdvance
		}

		cursor.Draw(s.Title, t.Margin, size, font, t.Color)
		cursor.Advance(advance)

		for _, line := range s.Lines {
			cursor.Draw(line, t.Margin+t.Indent, t.BodySize, font, t.Color)
			cursor.Advance(t.LineHeight)
		}

		cursor.Advance(float64(s.Trailing) * t.LineHeight)
	}
}

func (e *Engine) fail(stage Stage, cause error) (err error) {
	e.logger.Error("roadmap.failed", "stage", string(stage), "error", cause)
	err = &GenerationError{Stage: stage, Err: cause}
	return err
}
