package main

import (
	"log"
	"log/slog"
	"path/filepath"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/config"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/eventlog"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/knockout"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/llm"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/predictor"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/server"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/tools"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	recorder, err := eventlog.NewFileRecorder(filepath.Join(cfg.Logging.Dir, "mcp_server.json"))
	if err != nil {
		log.Fatalf("failed to open audit log: %v", err)
	}
	defer recorder.Close()

	client := llm.NewVLLM(&cfg.VLLM)
	pred := predictor.New(client, recorder)
	orchestrator := knockout.New(pred, recorder)
	dispatcher := tools.NewDispatcher(pred, orchestrator)

	srv := server.New(*cfg, dispatcher)
	slog.Info("starting age prediction server", "host", cfg.Server.Host, "port", cfg.Server.Port, "model", cfg.VLLM.Model)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
