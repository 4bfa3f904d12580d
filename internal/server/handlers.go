package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/sales-agent/internal/model"
)

// handleRoot serves the service banner with the endpoint map.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Sales AI Agent API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":        "/health",
			"process_call":  "/ai/process-call",
			"process_email": "/ai/process-email",
		},
	})
}

// handleHealth reports liveness plus which provider credentials are present.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"service":           "sales-agent",
		"openai_configured": s.cfg.OpenAI.Key != "",
		"claude_configured": s.cfg.Anthropic.Key != "",
	})
}

// handleProcessCall accepts a multipart upload under the audio_file field and
// runs the call pipeline on it.
func (s *Server) handleProcessCall(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxFileSize)

	file, header, err := r.FormFile("audio_file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("audio file exceeds %d bytes", s.cfg.Server.MaxFileSize))
			return
		}
		writeError(w, http.StatusBadRequest, "audio_file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read audio file")
		return
	}

	result, err := s.processor.ProcessCall(r.Context(), audio, header.Filename)
	if err != nil {
		zap.L().Error("server: process call failed",
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to process call: %s", err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleProcessEmail accepts the email fields as JSON and runs the email
// pipeline on them.
func (s *Server) handleProcessEmail(w http.ResponseWriter, r *http.Request) {
	var req model.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmailBody == "" {
		writeError(w, http.StatusBadRequest, "email_body is required")
		return
	}
	if req.FromEmail == "" {
		writeError(w, http.StatusBadRequest, "from_email is required")
		return
	}

	result, err := s.processor.ProcessEmail(r.Context(), req)
	if err != nil {
		zap.L().Error("server: process email failed",
			zap.String("from", req.FromEmail),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to process email: %s", err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}
