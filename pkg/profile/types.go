package profile

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

const (
	// NotProvided is substituted for any absent name or education value.
	NotProvided = "Not provided"
	// DefaultField is used when no preferred career field was chosen.
	DefaultField = "General"
	// DefaultDreamRole is used when no dream role was given.
	DefaultDreamRole = "Not specified"
)

// Profile is the finalized intake data consumed by the roadmap generator.
// Every field is optional.
type Profile struct {
	FullName       string    `json:"fullName,omitempty"`
	Education      Education `json:"education"`
	Skills         []string  `json:"skills"`
	Tools          []string  `json:"tools"`
	PreferredField string    `json:"preferredField,omitempty"`
	DreamRole      string    `json:"dreamRole,omitempty"`
}

// Education groups the three education tiers.
type Education struct {
	TenthGrade      TenthGrade      `json:"tenthGrade"`
	TwelfthGrade    TwelfthGrade    `json:"twelfthGrade"`
	HigherEducation HigherEducation `json:"higherEducation"`
}

// TenthGrade holds the secondary school result.
type TenthGrade struct {
	Percentage Score `json:"percentage,omitempty"`
}

// TwelfthGrade holds the higher secondary result and stream.
type TwelfthGrade struct {
	Percentage Score  `json:"percentage,omitempty"`
	Stream     string `json:"stream,omitempty"`
}

// HigherEducation holds the degree and its specialization.
type HigherEducation struct {
	Degree         string `json:"degree,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

// Score is a percentage as typed into the intake form. Strings are kept
// as typed. Numbers are printed in their shortest decimal form, and a
// numeric zero counts as absent.
type Score string

// UnmarshalJSON accepts a string, a number or null.
func (s *Score) UnmarshalJSON(data []byte) (err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return err
	}

	if trimmed[0] == '"' {
		var text string
		err = json.Unmarshal(trimmed, &text)
		if err != nil {
			err = errors.Wrap(err, "failed to parse percentage")
			return err
		}
		*s = Score(text)
		return err
	}

	var number float64
	err = json.Unmarshal(trimmed, &number)
	if err != nil {
		err = errors.Wrap(err, "percentage must be a string or a number")
		return err
	}
	if number == 0 {
		*s = ""
		return err
	}
	*s = Score(strconv.FormatFloat(number, 'f', -1, 64))
	return err
}

// Name returns the full name or the placeholder.
func (p Profile) Name() (name string) {
	name = orDefault(p.FullName, NotProvided)
	return name
}

// Field returns the preferred career field or "General".
func (p Profile) Field() (field string) {
	field = orDefault(p.PreferredField, DefaultField)
	return field
}

// Role returns the dream role or "Not specified".
func (p Profile) Role() (role string) {
	role = orDefault(p.DreamRole, DefaultDreamRole)
	return role
}

// PercentageText returns the tenth grade percentage or the placeholder.
func (t TenthGrade) PercentageText() (text string) {
	text = orDefault(string(t.Percentage), NotProvided)
	return text
}

// PercentageText returns the twelfth grade percentage or the placeholder.
func (t TwelfthGrade) PercentageText() (text string) {
	text = orDefault(string(t.Percentage), NotProvided)
	return text
}

// StreamText returns the twelfth grade stream or the placeholder.
func (t TwelfthGrade) StreamText() (text string) {
	text = orDefault(t.Stream, NotProvided)
	return text
}

// DegreeText returns the degree or the placeholder.
func (h HigherEducation) DegreeText() (text string) {
	text = orDefault(h.Degree, NotProvided)
	return text
}

// SpecializationText returns the specialization or the placeholder.
func (h HigherEducation) SpecializationText() (text string) {
	text = orDefault(h.Specialization, NotProvided)
	return text
}

func orDefault(value, fallback string) (result string) {
	result = value
	if result == "" {
		result = fallback
	}
	return result
}
