package llm

import (
	"context"
	"fmt"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
)

// Client is a text-completion interface over the inference endpoint.
type Client interface {
	// Complete sends one completion request and returns the generated text.
	// Failures to reach the endpoint or non-success statuses come back as
	// *TransportError; no retry happens here.
	Complete(ctx context.Context, prompt string, params apimodels.SamplingParams) (string, error)

	// Model returns the model identifier used for completions.
	Model() string
}

// TransportError means the inference endpoint could not be reached or
// returned a non-success status. StatusCode is 0 when no response arrived.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion endpoint returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion endpoint unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
