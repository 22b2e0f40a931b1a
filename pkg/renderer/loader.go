package renderer

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Constructor builds the Factory. It runs at most once per Loader.
type Constructor func() (factory Factory, err error)

// Loader lazily constructs a Factory on first use and hands the same handle
// (or the same construction error) to every later caller.
type Loader struct {
	construct Constructor
	once      sync.Once
	factory   Factory
	err       error
}

// NewLoader wraps a constructor.
func NewLoader(construct Constructor) (loader *Loader) {
	loader = &Loader{construct: construct}
	return loader
}

// NewPDFLoader returns a Loader for the fpdf-backed factory.
func NewPDFLoader(opts Options) (loader *Loader) {
	loader = NewLoader(func() (factory Factory, err error) {
		factory, err = NewPDFFactory(opts)
		return factory, err
	})
	return loader
}

// Load returns the shared Factory, constructing it on the first call.
// A cancelled context is reported without consuming the one-time load.
func (l *Loader) Load(ctx context.Context) (factory Factory, err error) {
	err = ctx.Err()
	if err != nil {
		return factory, err
	}

	l.once.Do(func() {
		if l.construct == nil {
			l.err = errors.New("no document factory constructor configured")
			return
		}
		l.factory, l.err = l.construct()
		if l.err == nil && l.factory == nil {
			l.err = errors.New("document factory constructor returned nil")
		}
	})

	factory = l.factory
	err = l.err
	return factory, err
}
