package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/config"
)

// stop tokens for the fine-tuned Gemma model served by vLLM
var stopTokens = []string{"<ctrl100>", "<end_of_turn>", "<eos>"}

// VLLM talks to a vLLM server through its OpenAI-compatible completions API.
type VLLM struct {
	client *openai.Client
	model  string
}

func NewVLLM(cfg *config.VLLMConfig) *VLLM {
	slog.Info("creating vLLM client", "base_url", cfg.BaseURL, "model", cfg.Model)

	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/v1/"),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		// a single call per prediction; retry policy belongs to the caller
		option.WithMaxRetries(0),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &VLLM{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

func (v *VLLM) Model() string {
	return v.model
}

func (v *VLLM) Complete(ctx context.Context, prompt string, params apimodels.SamplingParams) (string, error) {
	resp, err := v.client.Completions.New(ctx, openai.CompletionNewParams{
		Model:       openai.F(openai.CompletionNewParamsModel(v.model)),
		Prompt:      openai.F[openai.CompletionNewParamsPromptUnion](shared.UnionString(prompt)),
		MaxTokens:   openai.Int(int64(params.MaxTokens)),
		Temperature: openai.Float(params.Temperature),
		TopP:        openai.Float(params.TopP),
		N:           openai.Int(1),
		Stop:        openai.F[openai.CompletionNewParamsStopUnion](openai.CompletionNewParamsStopArray(stopTokens)),
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			slog.Error("completion request rejected", "status", apierr.StatusCode, "error", err)
			return "", &TransportError{StatusCode: apierr.StatusCode, Err: err}
		}
		slog.Error("completion request failed", "error", err)
		return "", &TransportError{Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &TransportError{Err: errors.New("completion response contained no choices")}
	}
	return resp.Choices[0].Text, nil
}
