// Package predictor composes prompt rendering, the completion call and age
// parsing into a single predict_age operation.
package predictor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/eventlog"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/helpers"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/llm"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/prompt"
)

type Predictor struct {
	client   llm.Client
	recorder eventlog.Recorder
}

func New(client llm.Client, recorder eventlog.Recorder) *Predictor {
	return &Predictor{
		client:   client,
		recorder: recorder,
	}
}

// Predict renders the prompt, issues one completion call and parses the age
// out of the response. A transport failure propagates to the caller; an
// unparsable response still returns successfully with PredictedAge nil and
// the raw text preserved. One audit record is emitted per invocation.
func (p *Predictor) Predict(ctx context.Context, geneSentence string, meta apimodels.Metadata, params apimodels.SamplingParams) (apimodels.AgePredictionResult, error) {
	promptText := prompt.Build(geneSentence, meta)
	params = params.WithDefaults()

	raw, err := p.client.Complete(ctx, promptText, params)
	if err != nil {
		slog.Error("age prediction failed", "error", err)
		p.recorder.Record(eventlog.Event{
			Action: "predict_age",
			Fields: map[string]any{
				"gene_count": len(strings.Fields(geneSentence)),
				"prompt":     promptText,
				"error":      err.Error(),
			},
		})
		return apimodels.AgePredictionResult{}, err
	}

	result := apimodels.AgePredictionResult{
		RawResponse: strings.TrimSpace(raw),
		PromptUsed:  promptText,
		Model:       p.client.Model(),
	}
	if age, ok := ParseAge(result.RawResponse); ok {
		result.PredictedAge = helpers.Ptr(age)
	} else {
		slog.Warn("no age found in model response", "raw_response", result.RawResponse)
	}

	p.recorder.Record(eventlog.Event{
		Action: "predict_age",
		Fields: map[string]any{
			"gene_count":    len(strings.Fields(geneSentence)),
			"max_tokens":    params.MaxTokens,
			"temperature":   params.Temperature,
			"prompt":        promptText,
			"raw_response":  result.RawResponse,
			"predicted_age": result.PredictedAge,
		},
	})

	return result, nil
}
