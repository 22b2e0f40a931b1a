package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikogura/career-roadmap/pkg/config"
	"github.com/nikogura/career-roadmap/pkg/layout"
	"github.com/nikogura/career-roadmap/pkg/renderer"
	"github.com/nikogura/career-roadmap/pkg/server"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listenAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve roadmap generation over HTTP",
	Long: `Run the HTTP API.

  POST /api/roadmap            profile JSON in, PDF out
  GET  /api/fields             fields with curated recommendations
  GET  /api/recommendations    ?field=<label>
  GET  /api/roadmaps/:id       archived PDF (requires database_url)
  GET  /healthz

Only one roadmap is generated at a time; concurrent requests get 409.

Example:
  career-roadmap serve --listen :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config.Config
	var logger *slog.Logger
	cfg, logger, err = loadConfig()
	if err != nil {
		return err
	}

	addr := listenAddr
	if addr == "" {
		addr = cfg.Listen
	}

	engine := layout.NewEngine(renderer.NewPDFLoader(pdfOptions(cfg)), layout.WithLogger(logger))
	opts := []server.Option{server.WithLogger(logger)}

	if cfg.DatabaseURL != "" {
		archive, archiveErr := openArchive(ctx, cfg.DatabaseURL)
		if archiveErr != nil {
			logger.Warn("archive.unavailable", slog.String("error", archiveErr.Error()))
		} else {
			defer archive.Close()
			opts = append(opts, server.WithArchive(archive))
		}
	}

	srv := server.New(engine, opts...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(addr)
	}()

	if getVerbose() {
		fmt.Printf("Listening on %s\n", addr)
	}

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	return err
}
