// Package tools exposes the prediction operations as named, invokable tools
// so the transport layer stays decoupled from the core components.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/knockout"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/predictor"
)

var (
	ErrUnknownTool  = errors.New("unknown tool")
	ErrBadArguments = errors.New("invalid tool arguments")
)

// Definition describes one callable tool for discovery by clients.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var Definitions = []Definition{
	{
		Name:        "predict_age",
		Description: "Predict the age of a cell donor from a gene expression sentence. The gene expression sentence should be a space-separated list of aging-related gene names ordered by descending expression level.",
	},
	{
		Name:        "predict_age_with_metadata",
		Description: "Predict the age of a cell donor from a gene expression sentence with additional metadata. Provide the gene expression sentence, sex, tissue, cell type, and other relevant metadata.",
	},
	{
		Name:        "insilico_knockout",
		Description: "Perform an insilico knockout experiment by removing the highest-expressed gene from the gene expression sentence and comparing age predictions. Returns original age, knockout age and the delta.",
	},
}

// Dispatcher routes named tool invocations to the predictor and the knockout
// orchestrator.
type Dispatcher struct {
	predictor    *predictor.Predictor
	orchestrator *knockout.Orchestrator
}

func NewDispatcher(p *predictor.Predictor, o *knockout.Orchestrator) *Dispatcher {
	return &Dispatcher{
		predictor:    p,
		orchestrator: o,
	}
}

// Invoke decodes the JSON arguments and runs the named tool. The returned
// value is the tool's result entity, ready for JSON encoding.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args []byte) (any, error) {
	var req apimodels.ToolRequest
	if len(args) > 0 {
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
	}

	switch name {
	case "predict_age":
		return d.predictor.Predict(ctx, req.GeneSentence, apimodels.Metadata{}, req.SamplingParams)
	case "predict_age_with_metadata":
		return d.predictor.Predict(ctx, req.GeneSentence, req.Metadata, req.SamplingParams)
	case "insilico_knockout":
		return d.orchestrator.Knockout(ctx, req.GeneSentence, req.Metadata, req.SamplingParams)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
}
