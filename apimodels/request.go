package apimodels

// Metadata carries optional donor context for a prediction. Absent fields are
// left out of the rendered prompt entirely.
type Metadata struct {
	// Sex of the donor (e.g. "male", "female")
	Sex *string `json:"sex,omitempty"`

	// SmokingStatus is 0 for non-smoker, 1 for smoker
	SmokingStatus *int `json:"smoking_status,omitempty"`

	// Tissue type (e.g. "blood", "brain", "liver")
	Tissue *string `json:"tissue,omitempty"`

	// CellType (e.g. "CD14-low, CD16-positive monocyte")
	CellType *string `json:"cell_type,omitempty"`
}

// IsZero reports whether no metadata field is set.
func (m Metadata) IsZero() bool {
	return m.Sex == nil && m.SmokingStatus == nil && m.Tissue == nil && m.CellType == nil
}

// SamplingParams controls text generation at the inference endpoint.
// Zero values mean "use the default"; out-of-range values are passed through
// and left for the endpoint to reject.
type SamplingParams struct {
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

const (
	DefaultMaxTokens = 20
	DefaultTopP      = 1.0
)

// WithDefaults fills unset sampling fields. Temperature defaults to 0 for
// deterministic output, which is already the zero value.
func (p SamplingParams) WithDefaults() SamplingParams {
	if p.MaxTokens == 0 {
		p.MaxTokens = DefaultMaxTokens
	}
	if p.TopP == 0 {
		p.TopP = DefaultTopP
	}
	return p
}

// ToolRequest is the argument payload accepted by every tool operation.
// predict_age ignores the metadata fields; the other tools honor them.
type ToolRequest struct {
	// GeneSentence is a space-separated list of gene symbols ordered by
	// descending expression level.
	GeneSentence string `json:"gene_sentence"`

	Metadata
	SamplingParams
}
