package apimodels

// AgePredictionResult is the outcome of a single age prediction. A nil
// PredictedAge means the model's output contained no recognizable number;
// RawResponse keeps what the model actually said so callers can diagnose it.
type AgePredictionResult struct {
	PredictedAge *float64 `json:"predicted_age"`
	RawResponse  string   `json:"raw_response"`
	PromptUsed   string   `json:"prompt_used"`
	Model        string   `json:"model"`
}

// KnockoutResult is the outcome of an insilico knockout experiment: the
// highest-expressed gene is removed from the sentence and the two predictions
// are compared. DeltaAge is knockout minus original and is nil unless both
// predictions parsed.
type KnockoutResult struct {
	GeneKnockedOut            string   `json:"gene_knocked_out"`
	AgePrediction             *float64 `json:"age_prediction"`
	AgePredictionWithKnockout *float64 `json:"age_prediction_with_knockout"`
	DeltaAge                  *float64 `json:"delta_age"`
	OriginalGeneSentence      string   `json:"original_gene_sentence"`
	KnockoutGeneSentence      string   `json:"knockout_gene_sentence"`
	Model                     string   `json:"model"`
}
