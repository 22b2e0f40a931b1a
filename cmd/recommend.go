package cmd

import (
	"fmt"
	"strings"

	"github.com/nikogura/career-roadmap/pkg/profile"
	"github.com/nikogura/career-roadmap/pkg/recommend"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listFields bool

//nolint:gochecknoglobals // Cobra boilerplate
var recommendCmd = &cobra.Command{
	Use:   "recommend [field]",
	Short: "Show the recommendations for a field",
	Long: `Print the skills, career paths and roadmap steps a roadmap would contain
for the given field. Fields without curated content get the general lists.

Example:
  career-roadmap recommend "Data Science"
  career-roadmap recommend --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().BoolVar(&listFields, "list", false, "List fields with curated recommendations")
}

func runRecommend(cmd *cobra.Command, args []string) (err error) {
	out := cmd.OutOrStdout()

	if listFields {
		for _, field := range recommend.KnownFields() {
			fmt.Fprintln(out, field)
		}
		return err
	}

	set := recommend.Resolve(recommendField(args))
	fmt.Fprint(out, formatSet(set))

	return err
}

// recommendField picks the field argument, defaulting like an empty profile.
func recommendField(args []string) (field string) {
	field = profile.DefaultField
	if len(args) > 0 && args[0] != "" {
		field = args[0]
	}
	return field
}

func formatSet(set recommend.Set) (text string) {
	var b strings.Builder

	if set.Curated {
		fmt.Fprintf(&b, "Field: %s\n", set.Field)
	} else {
		fmt.Fprintf(&b, "Field: %s (general recommendations)\n", set.Field)
	}

	b.WriteString("\nRecommended Skills:\n")
	for _, s := range set.Skills {
		fmt.Fprintf(&b, "  * %s\n", s)
	}

	b.WriteString("\nPotential Career Paths:\n")
	for _, p := range set.CareerPaths {
		fmt.Fprintf(&b, "  * %s\n", p)
	}

	b.WriteString("\nCareer Roadmap:\n")
	for i, step := range set.RoadmapSteps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}

	text = b.String()
	return text
}
