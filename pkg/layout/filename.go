package layout

import (
	"regexp"

	"github.com/nikogura/career-roadmap/pkg/profile"
)

// FileSuffix is appended to every suggested file name.
const FileSuffix = "_career_roadmap.pdf"

//nolint:gochecknoglobals // Compiled once
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{feff}]+`)

// FileName suggests a download name: the full name (or its placeholder) with
// each whitespace run replaced by one underscore, plus FileSuffix.
func FileName(p profile.Profile) (name string) {
	name = whitespaceRun.ReplaceAllString(p.Name(), "_") + FileSuffix
	return name
}
