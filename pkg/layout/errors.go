package layout

import "fmt"

// Stage names the step of a generation that failed.
type Stage string

// Generation stages that can fail.
const (
	StageLoad      Stage = "load"
	StageCreate    Stage = "create"
	StageEmbedFont Stage = "embed_font"
	StageAddPage   Stage = "add_page"
	StageSerialize Stage = "serialize"
)

// GenerationError is returned when the document writer fails. No partial
// output accompanies it.
type GenerationError struct {
	Stage Stage
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("roadmap generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
