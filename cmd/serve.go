package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/docquiz/internal/server"
	"github.com/abhisek/docquiz/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve the document upload and MCQ generation endpoints.

  POST /upload-pdf      multipart upload, field "pdf"
  POST /generate-mcqs   {"message": "10 questions on photosynthesis"}
  GET  /api-docs        OpenAPI description`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides DOCQUIZ_ADDR)")
	serveCmd.Flags().String("upload-dir", "", "Directory for uploaded documents (overrides DOCQUIZ_UPLOAD_DIR)")
	serveCmd.Flags().Int("attempts", 0, "Maximum generation attempts per request (overrides DOCQUIZ_MAX_ATTEMPTS)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v, _ := cmd.Flags().GetString("upload-dir"); v != "" {
		cfg.Server.UploadDir = v
	}
	if v, _ := cmd.Flags().GetInt("attempts"); v > 0 {
		cfg.Generation.MaxAttempts = v
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	p, err := buildPipeline(cmd, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	srv, err := server.New(cfg.Server, cfg.Generation.MaxAttempts, p.generator, p.source, session.NewRegistry(p.logger), p.logger)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	p.logger.Info("starting docquiz",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.String("upload_dir", cfg.Server.UploadDir),
		zap.String("provider", cfg.LLM.Provider),
	)
	return srv.ListenAndServe(ctx)
}
