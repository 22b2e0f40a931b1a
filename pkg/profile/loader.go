// Package profile models the intake data a career roadmap is generated from.
package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// FieldError is a single shape violation at a JSON field path.
type FieldError struct {
	Field   string
	Message string
}

// ShapeError reports a profile document whose structure does not match the
// expected shape (wrong types, non-string list items).
type ShapeError struct {
	Errors []FieldError
}

func (e *ShapeError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "profile shape check failed: " + strings.Join(parts, "; ")
}

// Load reads a profile from a JSON file.
func Load(path string) (p Profile, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read profile file: %s", path)
		return p, err
	}

	p, err = Parse(data)
	if err != nil {
		err = errors.Wrapf(err, "failed to load profile: %s", path)
		return p, err
	}

	return p, err
}

// Parse checks the document shape and decodes it. Missing fields are fine;
// absent lists come back as empty slices.
func Parse(data []byte) (p Profile, err error) {
	err = CheckShape(data)
	if err != nil {
		return p, err
	}

	err = json.Unmarshal(data, &p)
	if err != nil {
		err = errors.Wrap(err, "failed to parse profile JSON")
		return p, err
	}

	p = p.Normalize()
	return p, err
}

// CheckShape validates a raw profile document against the embedded schema.
func CheckShape(data []byte) (err error) {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	docLoader := gojsonschema.NewBytesLoader(data)

	var result *gojsonschema.Result
	result, err = gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		err = errors.Wrap(err, "failed to check profile shape")
		return err
	}

	if result.Valid() {
		return err
	}

	shapeErr := &ShapeError{}
	for _, re := range result.Errors() {
		shapeErr.Errors = append(shapeErr.Errors, FieldError{
			Field:   re.Field(),
			Message: re.Description(),
		})
	}
	err = shapeErr
	return err
}

// Normalize replaces nil lists with empty ones.
func (p Profile) Normalize() (normalized Profile) {
	normalized = p
	if normalized.Skills == nil {
		normalized.Skills = []string{}
	}
	if normalized.Tools == nil {
		normalized.Tools = []string{}
	}
	return normalized
}
