package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nikogura/career-roadmap/pkg/config"
	"github.com/nikogura/career-roadmap/pkg/history"
	"github.com/nikogura/career-roadmap/pkg/layout"
	"github.com/nikogura/career-roadmap/pkg/profile"
	"github.com/nikogura/career-roadmap/pkg/renderer"
	"github.com/nikogura/career-roadmap/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var outputName string

//nolint:gochecknoglobals // Cobra boilerplate
var noHistory bool

//nolint:gochecknoglobals // Cobra boilerplate
var dryRun bool

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate <profile-file-or-url>",
	Short: "Generate a career roadmap PDF from a profile",
	Long: `Generate a single-page career roadmap PDF from a JSON profile, read from a
file path or an http(s) URL.

The file is named after the profile's full name, e.g. Asha_Rao_career_roadmap.pdf,
and written to the output directory from config unless --output-dir is given.
A metadata sidecar is written next to the PDF and the history index is rebuilt.
When database_url is configured the PDF is archived as well.

Example:
  career-roadmap generate profile.json
  career-roadmap generate profile.json --output-dir ~/Documents/Roadmaps
  career-roadmap generate profile.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	generateCmd.Flags().StringVar(&outputName, "name", "", "Override the suggested file name")
	generateCmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip the history sidecar and index")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print text placements instead of writing a PDF")
}

// generateRequest collects everything one CLI generation needs.
type generateRequest struct {
	ProfilePath string
	OutputDir   string
	Name        string
	NoHistory   bool
	Config      config.Config
	Loader      layout.FactoryLoader
	Archive     *store.Archive
	Logger      *slog.Logger
}

// generateResult reports what a CLI generation produced.
type generateResult struct {
	Path      string
	Output    layout.Output
	Indexed   int
	ArchiveID string
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var cfg config.Config
	var logger *slog.Logger
	cfg, logger, err = loadConfig()
	if err != nil {
		return err
	}

	if dryRun {
		return runDryRun(ctx, args[0], logger)
	}

	req := generateRequest{
		ProfilePath: args[0],
		OutputDir:   outputDir,
		Name:        outputName,
		NoHistory:   noHistory,
		Config:      cfg,
		Loader:      renderer.NewPDFLoader(pdfOptions(cfg)),
		Logger:      logger,
	}

	if cfg.DatabaseURL != "" {
		req.Archive, err = openArchive(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: archive unavailable: %v\n", err)
			err = nil
		} else {
			defer req.Archive.Close()
		}
	}

	var result generateResult
	result, err = generateRoadmap(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Roadmap written to %s\n", result.Path)
	if getVerbose() {
		fmt.Printf("  Field: %s (curated: %t)\n", result.Output.Recommendations.Field, result.Output.Recommendations.Curated)
		fmt.Printf("  Size: %d bytes\n", len(result.Output.Bytes))
		if result.Indexed > 0 {
			fmt.Printf("  History index: %d roadmaps\n", result.Indexed)
		}
		if result.ArchiveID != "" {
			fmt.Printf("  Archive id: %s\n", result.ArchiveID)
		}
	}

	return err
}

// generateRoadmap loads the profile, renders it and writes the PDF plus its
// history metadata.
func generateRoadmap(ctx context.Context, req generateRequest) (result generateResult, err error) {
	if getVerbose() {
		fmt.Printf("Loading profile from: %s\n", req.ProfilePath)
	}

	var p profile.Profile
	p, err = profile.LoadSource(ctx, req.ProfilePath)
	if err != nil {
		return result, err
	}

	engine := layout.NewEngine(req.Loader, layout.WithLogger(req.Logger))

	result.Output, err = engine.Generate(ctx, p)
	if err != nil {
		return result, err
	}

	dir := req.OutputDir
	if dir == "" {
		dir = req.Config.OutputDir
	}

	name := req.Name
	if name == "" {
		name = result.Output.FileName
	}

	result.Path = filepath.Join(dir, name)
	err = renderer.WritePDF(result.Output.Bytes, result.Path)
	if err != nil {
		return result, err
	}

	if !req.NoHistory {
		result.Indexed, err = recordHistory(ctx, dir, result.Path, p, result.Output)
		if err != nil {
			fmt.Printf("Warning: failed to update history: %v\n", err)
			err = nil
		}
	}

	if req.Archive != nil {
		var saved store.Record
		saved, err = req.Archive.Save(ctx, store.Record{
			FileName: filepath.Base(result.Path),
			FullName: p.Name(),
			Field:    result.Output.Recommendations.Field,
			Curated:  result.Output.Recommendations.Curated,
			Content:  result.Output.Bytes,
		})
		if err != nil {
			fmt.Printf("Warning: failed to archive roadmap: %v\n", err)
			err = nil
		} else {
			result.ArchiveID = saved.ID.String()
		}
	}

	return result, err
}

func recordHistory(ctx context.Context, dir, pdfPath string, p profile.Profile, out layout.Output) (count int, err error) {
	titles := make([]string, 0, len(out.Sections))
	for _, s := range out.Sections {
		titles = append(titles, s.Title)
	}

	entry := history.Entry{
		FileName:    filepath.Base(pdfPath),
		Path:        pdfPath,
		FullName:    p.Name(),
		Field:       out.Recommendations.Field,
		Curated:     out.Recommendations.Curated,
		DreamRole:   p.Role(),
		GeneratedAt: time.Now().UTC(),
		Size:        len(out.Bytes),
		Sections:    titles,
		Overflowed:  out.FinalY < 0,
	}

	_, err = history.WriteSidecar(entry)
	if err != nil {
		return count, err
	}

	var indexer *history.Indexer
	indexer, err = history.NewIndexer(dir)
	if err != nil {
		return count, err
	}

	count, err = indexer.Index(ctx)
	return count, err
}

// runDryRun renders against the recording primitive and prints where each
// line would land.
func runDryRun(ctx context.Context, profilePath string, logger *slog.Logger) (err error) {
	var p profile.Profile
	p, err = profile.LoadSource(ctx, profilePath)
	if err != nil {
		return err
	}

	rec := renderer.NewRecorder()
	loader := renderer.NewLoader(func() (renderer.Factory, error) {
		return rec, nil
	})
	engine := layout.NewEngine(loader, layout.WithLogger(logger))

	var out layout.Output
	out, err = engine.Generate(ctx, p)
	if err != nil {
		return err
	}

	fmt.Printf("# %s\n", out.FileName)
	_, err = os.Stdout.Write(out.Bytes)
	if err != nil {
		err = errors.Wrap(err, "failed to write listing")
		return err
	}
	fmt.Printf("# final y: %.2f\n", out.FinalY)

	return err
}

func pdfOptions(cfg config.Config) (opts renderer.Options) {
	opts = renderer.Options{
		PageSize: cfg.PageSize,
		Compress: cfg.Compress,
		Title:    layout.TitleDocument,
		Creator:  "career-roadmap",
	}
	return opts
}

func openArchive(ctx context.Context, dsn string) (archive *store.Archive, err error) {
	archive, err = store.New(ctx, dsn)
	if err != nil {
		return archive, err
	}

	err = archive.EnsureSchema(ctx)
	if err != nil {
		archive.Close()
		archive = nil
		return archive, err
	}

	return archive, err
}
