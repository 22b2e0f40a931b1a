package layout

import (
	"fmt"
	"strings"

	"github.com/nikogura/career-roadmap/pkg/profile"
	"github.com/nikogura/career-roadmap/pkg/recommend"
)

// Section titles, in render order.
const (
	TitleDocument       = "Career Development Roadmap"
	TitleQualifications = "Name & Qualification Summary"
	TitleSkillSummary   = "Current Skill Summary"
	TitleRecommended    = "Recommended Skills to Learn"
	TitleCareerPaths    = "Career Path Suggestions"
	TitleRoadmap        = "Step-by-step Roadmap"
)

// Level selects the heading style of a section.
type Level int

const (
	// LevelDocument is the single large document title.
	LevelDocument Level = iota
	// LevelSection is an ordinary section heading.
	LevelSection
)

// Section is a titled group of lines rendered contiguously.
type Section struct {
	Title string   `json:"title"`
	Level Level    `json:"level"`
	Lines []string `json:"lines"`
	// Trailing is the number of blank line heights left after the section.
	Trailing int `json:"trailing"`
}

// BuildSections assembles the roadmap content in its fixed order.
func BuildSections(p profile.Profile, rec recommend.Set) (sections []Section) {
	edu := p.Education

	sections = []Section{
		{
			Title: TitleDocument,
			Level: LevelDocument,
		},
		{
			Title: TitleQualifications,
			Level: LevelSection,
			Lines: []string{
				"Name: " + p.Name(),
				fmt.Sprintf("10th Grade: %s%%", edu.TenthGrade.PercentageText()),
				fmt.Sprintf("12th Grade: %s%% (%s)", edu.TwelfthGrade.PercentageText(), edu.TwelfthGrade.StreamText()),
				fmt.Sprintf("%s in %s", edu.HigherEducation.DegreeText(), edu.HigherEducation.SpecializationText()),
			},
			Trailing: 1,
		},
		{
			Title: TitleSkillSummary,
			Level: LevelSection,
			Lines: []string{
				"Skills: " + joinOr(p.Skills, "No skills provided"),
				"Tools & Technologies: " + joinOr(p.Tools, "No tools provided"),
			},
			Trailing: 1,
		},
		{
			Title:    TitleRecommended,
			Level:    LevelSection,
			Lines:    bullets(rec.Skills),
			Trailing: 1,
		},
		{
			Title:    TitleCareerPaths,
			Level:    LevelSection,
			Lines:    bullets(rec.CareerPaths),
			Trailing: 1,
		},
		{
			Title: TitleRoadmap,
			Level: LevelSection,
			Lines: numbered(rec.RoadmapSteps),
		},
	}

	return sections
}

// joinOr comma-joins items, or returns the sentinel when the join is empty.
func joinOr(items []string, sentinel string) (joined string) {
	joined = strings.Join(items, ", ")
	if joined == "" {
		joined = sentinel
	}
	return joined
}

func bullets(items []string) (lines []string) {
	lines = make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "* "+item)
	}
	return lines
}

func numbered(items []string) (lines []string) {
	lines = make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	return lines
}
