package docsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Config controls PDF text extraction.
type Config struct {
	// Pdftotext is the poppler binary name or absolute path.
	// Default: "pdftotext". Set to "-" to always use the built-in parser.
	Pdftotext string `yaml:"pdftotext"`
}

// PDFSource extracts text from PDF files. It shells out to pdftotext when
// available and falls back to a pure-Go parser otherwise.
type PDFSource struct {
	cfg      Config
	runner   Runner
	fallback func(path string) (string, error)
	logger   *zap.Logger
}

// NewPDFSource creates a PDFSource. A nil logger disables logging.
func NewPDFSource(cfg Config, logger *zap.Logger) *PDFSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &PDFSource{cfg: cfg, runner: execRunner{}, fallback: readPlainText, logger: logger}
}

// Extract returns the text of the PDF at path.
func (s *PDFSource) Extract(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &ErrDocumentUnreadable{Path: path, Err: err}
	}

	text, err := s.extract(ctx, path)
	if err != nil {
		return "", &ErrDocumentUnreadable{Path: path, Err: err}
	}
	if text == "" {
		return "", &ErrDocumentUnreadable{Path: path, Err: ErrNoText}
	}

	s.logger.Debug("extracted document text",
		zap.String("path", path),
		zap.Int("chars", len([]rune(text))),
	)
	return text, nil
}

func (s *PDFSource) extract(ctx context.Context, path string) (string, error) {
	if s.cfg.Pdftotext == "-" {
		return s.fallback(path)
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := s.runner.Run(ctx, s.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err == nil {
		return string(out), nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	s.logger.Debug("pdftotext failed, using built-in parser",
		zap.String("path", path),
		zap.String("stderr", strings.TrimSpace(string(errb))),
		zap.Error(err),
	)

	text, ferr := s.fallback(path)
	if ferr != nil {
		return "", errors.Join(fmt.Errorf("pdftotext: %w", err), ferr)
	}
	return text, nil
}

// readPlainText parses the PDF with the pure-Go reader. The parser panics
// on some malformed inputs, so panics are converted to errors.
func readPlainText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
