package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/knockout"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/llm"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/tools"
)

func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool")

	args, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read request body: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	result, err := s.dispatcher.Invoke(r.Context(), name, args)
	if err != nil {
		slog.Error("tool invocation failed", "tool", name, "error", err)

		var transportErr *llm.TransportError
		switch {
		case errors.Is(err, tools.ErrUnknownTool):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, tools.ErrBadArguments), errors.Is(err, knockout.ErrEmptySentence):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.As(err, &transportErr):
			http.Error(w, err.Error(), http.StatusBadGateway)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tools.Definitions); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	info := fmt.Sprintf(`Cell2Sentence4Longevity Age Prediction Model

Model: %s
vLLM Endpoint: %s

This model predicts the age of a cell donor based on gene expression patterns.
Input: a "cell sentence" - a space-separated list of aging-related gene names ordered by descending expression level.
Output: predicted age in years.

Metadata that can be provided:
- Sex (male/female)
- Smoking status (0 = non-smoker, 1 = smoker)
- Tissue (e.g. blood, brain, liver)
- Cell type (e.g. CD14-low, CD16-positive monocyte)
`, s.vllm.Model, s.vllm.BaseURL)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, info)
}

func (s *Server) handleExamplePrompt(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.cfg.ExamplePayloadPath)
	if err != nil {
		slog.Warn("example payload not available", "path", s.cfg.ExamplePayloadPath, "error", err)
		http.Error(w, "example payload file not found", http.StatusNotFound)
		return
	}

	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		http.Error(w, fmt.Sprintf("failed to decode example payload: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, payload.Prompt)
}
