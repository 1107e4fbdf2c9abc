package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/prompt"
)

// requestPayload mirrors the body of a pre-built completion request, e.g.
// data/example/vllm_payload.json.
type requestPayload struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

var payloadCmd = &cobra.Command{
	Use:   "payload <file>",
	Short: "Run a knockout from a pre-built request payload file",
	Long: `Extracts the gene sentence, metadata and sampling parameters from a
JSON payload containing a full prompt, then knocks out the first gene.

Example:
  knockout payload data/example/vllm_payload.json --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: runPayloadKnockout,
}

func runPayloadKnockout(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read payload file: %w", err)
	}

	var payload requestPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to decode payload file: %w", err)
	}

	geneSentence, meta, err := prompt.Parse(payload.Prompt)
	if err != nil {
		return fmt.Errorf("failed to extract gene sentence from payload prompt: %w", err)
	}

	// --model wins over the payload's model
	if flagModel == "" && payload.Model != "" {
		flagModel = payload.Model
	}

	orchestrator, closeLog, err := newOrchestrator()
	if err != nil {
		return err
	}
	defer closeLog()

	params := apimodels.SamplingParams{
		MaxTokens:   payload.MaxTokens,
		Temperature: payload.Temperature,
		TopP:        payload.TopP,
	}

	result, err := orchestrator.Knockout(cmd.Context(), geneSentence, meta, params)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), flagOutputFormat, result)
}
