// Package recommend maps a career field to curated skills, career paths and
// roadmap steps. Unknown fields, including "General", resolve to a generic
// list per category.
package recommend

import "sort"

// Set is the recommendation content for one career field.
type Set struct {
	Field        string   `json:"field"`
	Curated      bool     `json:"curated"`
	Skills       []string `json:"skills"`
	CareerPaths  []string `json:"careerPaths"`
	RoadmapSteps []string `json:"roadmapSteps"`
}

// ResolveSkills returns the skills to learn for a field.
func ResolveSkills(field string) (skills []string) {
	skills = lookup(skillTable, fallbackSkills, field)
	return skills
}

// ResolvePaths returns the career path chains for a field.
func ResolvePaths(field string) (paths []string) {
	paths = lookup(pathTable, fallbackPaths, field)
	return paths
}

// ResolveRoadmap returns the ordered roadmap steps for a field.
func ResolveRoadmap(field string) (steps []string) {
	steps = lookup(roadmapTable, fallbackRoadmap, field)
	return steps
}

// Resolve returns all three categories for a field.
func Resolve(field string) (set Set) {
	set = Set{
		Field:        field,
		Curated:      IsKnown(field),
		Skills:       ResolveSkills(field),
		CareerPaths:  ResolvePaths(field),
		RoadmapSteps: ResolveRoadmap(field),
	}
	return set
}

// IsKnown reports whether a field has curated content. Matching is exact and
// case-sensitive.
func IsKnown(field string) (known bool) {
	_, known = skillTable[field]
	return known
}

// KnownFields lists the curated field labels in sorted order.
func KnownFields() (fields []string) {
	fields = make([]string, 0, len(skillTable))
	for field := range skillTable {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// lookup returns a copy so callers cannot alter the tables.
func lookup(table map[string][]string, fallback []string, field string) (result []string) {
	source, ok := table[field]
	if !ok {
		source = fallback
	}
	result = make([]string, len(source))
	copy(result, source)
	return result
}
