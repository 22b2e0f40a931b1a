package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nikogura/career-roadmap/pkg/config"
	"github.com/nikogura/career-roadmap/pkg/history"
	"github.com/nikogura/career-roadmap/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var historyDir string

//nolint:gochecknoglobals // Cobra boilerplate
var historyReindex bool

//nolint:gochecknoglobals // Cobra boilerplate
var historyArchive bool

//nolint:gochecknoglobals // Cobra boilerplate
var historyLimit int

//nolint:gochecknoglobals // Cobra boilerplate
var historyField string

//nolint:gochecknoglobals // Cobra boilerplate
var historyName string

//nolint:gochecknoglobals // Cobra boilerplate
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List generated roadmaps",
	Long: `List roadmaps generated into the output directory, newest first.

Use --reindex to rebuild the index from the sidecar files, and --archive to
list roadmaps stored in the database instead.

Example:
  career-roadmap history
  career-roadmap history --reindex
  career-roadmap history --field Marketing --name asha
  career-roadmap history --archive --limit 10`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyDir, "output-dir", "", "Output directory (default from config)")
	historyCmd.Flags().BoolVar(&historyReindex, "reindex", false, "Rebuild the index before listing")
	historyCmd.Flags().BoolVar(&historyArchive, "archive", false, "List the database archive")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum rows to list")
	historyCmd.Flags().StringVar(&historyField, "field", "", "Only roadmaps for this field")
	historyCmd.Flags().StringVar(&historyName, "name", "", "Only roadmaps whose name contains this text")
}

func runHistory(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()

	var cfg config.Config
	cfg, _, err = loadConfig()
	if err != nil {
		return err
	}

	if historyArchive {
		return listArchive(ctx, cmd.OutOrStdout(), cfg.DatabaseURL, historyLimit)
	}

	dir := historyDir
	if dir == "" {
		dir = cfg.OutputDir
	}

	var indexer *history.Indexer
	indexer, err = history.NewIndexer(dir)
	if err != nil {
		return err
	}

	if historyReindex {
		var count int
		count, err = indexer.Index(ctx)
		if err != nil {
			return err
		}
		if getVerbose() {
			fmt.Printf("✓ Rebuilt history index (%d roadmaps indexed)\n", count)
		}
	}

	var entries []history.Entry
	entries, err = indexer.Find(ctx, history.Query{Field: historyField, Name: historyName, Limit: historyLimit})
	if err != nil {
		return err
	}

	err = printEntries(cmd.OutOrStdout(), entries)
	if err != nil {
		return err
	}

	if getVerbose() && len(entries) > 0 {
		summary := history.Summarize(entries)
		fmt.Printf("\n%d roadmaps (%d curated, %d overflowed)\n", summary.Total, summary.Curated, summary.Overflowed)
		for _, field := range summary.Fields() {
			fmt.Printf("  %s: %d\n", field, summary.ByField[field])
		}
	}

	return err
}

func printEntries(out io.Writer, entries []history.Entry) (err error) {
	if len(entries) == 0 {
		_, err = fmt.Fprintln(out, "No roadmaps found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GENERATED\tNAME\tFIELD\tFILE")
	for _, e := range entries {
		field := e.Field
		if !e.Curated {
			field += " (general)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.GeneratedAt.Format("2006-01-02 15:04"), e.FullName, field, e.FileName)
	}

	err = w.Flush()
	if err != nil {
		err = errors.Wrap(err, "failed to write history")
		return err
	}
	return err
}

func listArchive(ctx context.Context, out io.Writer, dsn string, limit int) (err error) {
	if dsn == "" {
		err = errors.Errorf("database_url is not configured (set %s)", config.EnvDatabaseURL)
		return err
	}

	var archive *store.Archive
	archive, err = store.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer archive.Close()

	var records []store.Record
	records, err = archive.List(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tNAME\tFIELD\tBYTES")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.FullName, r.Field, r.Size)
	}

	err = w.Flush()
	if err != nil {
		err = errors.Wrap(err, "failed to write archive listing")
		return err
	}
	return err
}
