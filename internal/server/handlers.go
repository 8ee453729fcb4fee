package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/docquiz/internal/mcqgen"
)

//go:embed openapi.json
var openAPISpec []byte

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const multipartMemory = 8 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type uploadResponse struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

type generateRequest struct {
	Message string `json:"message"`
}

type generateResponse struct {
	MCQs mcqgen.Set `json:"mcqs"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Header.Get("Content-Type") != "application/pdf" {
		writeError(w, http.StatusBadRequest, "Only PDF files are allowed!")
		return
	}

	path := filepath.Join(s.cfg.UploadDir, uuid.NewString()+".pdf")
	if err := saveFile(path, file); err != nil {
		s.logger.Error("failed to store upload", zap.String("path", path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}

	if _, err := s.source.Extract(r.Context(), path); err != nil {
		s.logger.Warn("rejecting unreadable upload",
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("failed to delete invalid upload", zap.String("path", path), zap.Error(rmErr))
		}
		writeError(w, http.StatusInternalServerError, "Invalid or corrupted PDF file")
		return
	}

	sid, err := s.sessionID(w, r, true)
	if err != nil {
		os.Remove(path)
		s.logger.Error("session unavailable", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Session unavailable")
		return
	}
	s.docs.Set(sid, path)

	s.logger.Info("document uploaded",
		zap.String("session", sid),
		zap.String("filename", header.Filename),
		zap.String("path", path),
		zap.Int64("bytes", header.Size),
	)
	writeJSON(w, http.StatusOK, uploadResponse{Message: "PDF uploaded successfully", Path: path})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sid, err := s.sessionID(w, r, false)
	if err != nil {
		s.logger.Error("session unavailable", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Session unavailable")
		return
	}
	path, ok := s.docs.Get(sid)
	if sid == "" || !ok {
		writeError(w, http.StatusBadRequest, "Please upload a PDF file first")
		return
	}

	if _, err := os.Stat(path); err != nil {
		s.docs.Discard(sid, path)
		writeError(w, http.StatusNotFound, "PDF file no longer exists. Please upload again.")
		return
	}

	text, err := s.source.Extract(r.Context(), path)
	if err != nil {
		s.logger.Warn("stored document unreadable", zap.String("path", path), zap.Error(err))
		s.docs.Discard(sid, path)
		writeError(w, http.StatusInternalServerError, "Invalid or corrupted PDF file")
		return
	}
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, "Could not extract text from PDF")
		return
	}

	s.logger.Info("generating mcqs",
		zap.String("session", sid),
		zap.String("message", req.Message),
		zap.Int("text_chars", len([]rune(text))),
	)

	set, err := s.gen.Generate(r.Context(), text, req.Message, s.maxAttempts)
	if err != nil {
		s.logger.Error("mcq generation failed",
			zap.String("session", sid),
			zap.String("kind", mcqgen.ErrorKind(err)),
			zap.Error(err),
		)
		s.docs.Discard(sid, path)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{MCQs: set})
}

func (s *Server) handleAPIDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPISpec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func saveFile(path string, src io.Reader) error {
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}
	return dst.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
