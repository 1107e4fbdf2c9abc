// Package knockout implements the insilico knockout experiment: remove the
// highest-expressed gene from a cell sentence and compare the age predictions
// before and after.
package knockout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/eventlog"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/helpers"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/predictor"
)

// ErrEmptySentence is returned before any network call when the input
// sentence has no gene tokens.
var ErrEmptySentence = errors.New("gene sentence is empty")

type Orchestrator struct {
	predictor *predictor.Predictor
	recorder  eventlog.Recorder
}

func New(p *predictor.Predictor, recorder eventlog.Recorder) *Orchestrator {
	return &Orchestrator{
		predictor: p,
		recorder:  recorder,
	}
}

// Knockout predicts age for the original sentence and for the sentence with
// its first gene removed, then computes delta = knockout - original. The two
// predictions run sequentially; a transport failure on either one aborts the
// experiment. DeltaAge stays nil unless both predictions parsed.
//
// A single-gene sentence produces an empty knockout sentence; that prediction
// is still attempted since the model's behavior on empty input is its own.
func (o *Orchestrator) Knockout(ctx context.Context, geneSentence string, meta apimodels.Metadata, params apimodels.SamplingParams) (apimodels.KnockoutResult, error) {
	genes := strings.Fields(geneSentence)
	if len(genes) == 0 {
		return apimodels.KnockoutResult{}, ErrEmptySentence
	}

	geneKnockedOut := genes[0]
	knockoutSentence := strings.Join(genes[1:], " ")
	slog.Info("starting insilico knockout", "gene", geneKnockedOut, "gene_count", len(genes))

	original, err := o.predictor.Predict(ctx, geneSentence, meta, params)
	if err != nil {
		return apimodels.KnockoutResult{}, fmt.Errorf("original prediction: %w", err)
	}

	knocked, err := o.predictor.Predict(ctx, knockoutSentence, meta, params)
	if err != nil {
		return apimodels.KnockoutResult{}, fmt.Errorf("knockout prediction: %w", err)
	}

	result := apimodels.KnockoutResult{
		GeneKnockedOut:            geneKnockedOut,
		AgePrediction:             original.PredictedAge,
		AgePredictionWithKnockout: knocked.PredictedAge,
		OriginalGeneSentence:      geneSentence,
		KnockoutGeneSentence:      knockoutSentence,
		Model:                     original.Model,
	}
	if original.PredictedAge != nil && knocked.PredictedAge != nil {
		result.DeltaAge = helpers.Ptr(*knocked.PredictedAge - *original.PredictedAge)
	}

	o.recorder.Record(eventlog.Event{
		Action: "insilico_knockout",
		Fields: map[string]any{
			"gene_knocked_out":             geneKnockedOut,
			"original_gene_count":          len(genes),
			"age_prediction":               result.AgePrediction,
			"age_prediction_with_knockout": result.AgePredictionWithKnockout,
			"delta_age":                    result.DeltaAge,
		},
	})

	return result, nil
}
