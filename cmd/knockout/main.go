// Command knockout runs insilico knockout experiments against the age
// prediction endpoint from the command line.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/config"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/eventlog"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/knockout"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/llm"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/predictor"
)

var (
	flagVLLMURL      string
	flagModel        string
	flagLogDir       string
	flagOutputFormat string
)

var rootCmd = &cobra.Command{
	Use:          "knockout",
	Short:        "Insilico knockout experiments for gene expression age prediction",
	Long:         "Removes the highest-expressed gene from a cell sentence and compares the model's age predictions before and after.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVLLMURL, "vllm-url", "", "base URL for the vLLM API server (overrides VLLM_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "model name to use for prediction (overrides VLLM_MODEL)")
	rootCmd.PersistentFlags().StringVar(&flagLogDir, "log-dir", "", "directory for audit log files (overrides LOG_DIR)")
	rootCmd.PersistentFlags().StringVarP(&flagOutputFormat, "format", "f", "text", "output format: text, csv, or json")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(payloadCmd)
}

// newOrchestrator wires a knockout orchestrator from env config plus flag
// overrides. The returned closer flushes the audit log.
func newOrchestrator() (*knockout.Orchestrator, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if flagVLLMURL != "" {
		cfg.VLLM.BaseURL = flagVLLMURL
	}
	if flagModel != "" {
		cfg.VLLM.Model = flagModel
	}
	if flagLogDir != "" {
		cfg.Logging.Dir = flagLogDir
	}

	recorder, err := eventlog.NewFileRecorder(filepath.Join(cfg.Logging.Dir, "knockout.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	client := llm.NewVLLM(&cfg.VLLM)
	orchestrator := knockout.New(predictor.New(client, recorder), recorder)
	return orchestrator, recorder.Close, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
