package knockout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/eventlog"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/helpers"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/llm"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/predictor"
)

type fakeClient struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeClient) Complete(_ context.Context, prompt string, _ apimodels.SamplingParams) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func (f *fakeClient) Model() string {
	return "test-model"
}

func newOrchestrator(client *fakeClient, recorder eventlog.Recorder) *Orchestrator {
	return New(predictor.New(client, recorder), recorder)
}

func TestKnockoutEndToEnd(t *testing.T) {
	client := &fakeClient{responses: []string{"46.0 years", "46.0 years"}}
	o := newOrchestrator(client, eventlog.Nop{})

	meta := apimodels.Metadata{
		Sex:    helpers.Ptr("female"),
		Tissue: helpers.Ptr("blood"),
	}
	result, err := o.Knockout(context.Background(), "MT-CO1 FTL EEF1A1 HLA-B LST1 S100A4", meta, apimodels.SamplingParams{})
	require.NoError(t, err)

	assert.Equal(t, "MT-CO1", result.GeneKnockedOut)
	require.NotNil(t, result.AgePrediction)
	assert.Equal(t, 46.0, *result.AgePrediction)
	require.NotNil(t, result.AgePredictionWithKnockout)
	assert.Equal(t, 46.0, *result.AgePredictionWithKnockout)
	require.NotNil(t, result.DeltaAge)
	assert.Equal(t, 0.0, *result.DeltaAge)
	assert.Equal(t, "MT-CO1 FTL EEF1A1 HLA-B LST1 S100A4", result.OriginalGeneSentence)
	assert.Equal(t, "FTL EEF1A1 HLA-B LST1 S100A4", result.KnockoutGeneSentence)
	assert.Equal(t, "test-model", result.Model)
	assert.Equal(t, 2, client.calls)

	// both prompts carry the metadata, only the second lost the first gene
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[0], "Aging related cell sentence: MT-CO1 FTL EEF1A1 HLA-B LST1 S100A4")
	assert.Contains(t, client.prompts[1], "Aging related cell sentence: FTL EEF1A1 HLA-B LST1 S100A4")
	assert.Contains(t, client.prompts[1], "Sex: female")
}

func TestKnockoutDeltaSignConvention(t *testing.T) {
	// knockout minus original: 50 - 46 = +4
	client := &fakeClient{responses: []string{"46.0", "50.0"}}
	o := newOrchestrator(client, eventlog.Nop{})

	result, err := o.Knockout(context.Background(), "MT-CO1 FTL", apimodels.Metadata{}, apimodels.SamplingParams{})
	require.NoError(t, err)

	require.NotNil(t, result.DeltaAge)
	assert.Equal(t, 4.0, *result.DeltaAge)
}

func TestKnockoutSingleGeneLeavesEmptySentence(t *testing.T) {
	client := &fakeClient{responses: []string{"46.0", "44.0"}}
	o := newOrchestrator(client, eventlog.Nop{})

	result, err := o.Knockout(context.Background(), "MT-CO1", apimodels.Metadata{}, apimodels.SamplingParams{})
	require.NoError(t, err)

	assert.Equal(t, "MT-CO1", result.GeneKnockedOut)
	assert.Equal(t, "", result.KnockoutGeneSentence)
	// the second prediction is still attempted on the empty sentence
	assert.Equal(t, 2, client.calls)
	assert.Contains(t, client.prompts[1], "Aging related cell sentence: \n")
}

func TestKnockoutEmptySentenceRejectedBeforeAnyCall(t *testing.T) {
	for _, sentence := range []string{"", "   ", "\t\n"} {
		client := &fakeClient{responses: []string{"46.0"}}
		o := newOrchestrator(client, eventlog.Nop{})

		_, err := o.Knockout(context.Background(), sentence, apimodels.Metadata{}, apimodels.SamplingParams{})
		assert.ErrorIs(t, err, ErrEmptySentence)
		assert.Equal(t, 0, client.calls, "no network call may happen for input %q", sentence)
	}
}

func TestKnockoutAbsenceSkipsDelta(t *testing.T) {
	tests := []struct {
		name      string
		responses []string
	}{
		{name: "original unparsable", responses: []string{"no idea", "50.0"}},
		{name: "knockout unparsable", responses: []string{"46.0", "no idea"}},
		{name: "both unparsable", responses: []string{"hmm", "no idea"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{responses: tt.responses}
			o := newOrchestrator(client, eventlog.Nop{})

			result, err := o.Knockout(context.Background(), "MT-CO1 FTL", apimodels.Metadata{}, apimodels.SamplingParams{})
			require.NoError(t, err)
			assert.Nil(t, result.DeltaAge)
		})
	}
}

func TestKnockoutShortCircuitsOnTransportError(t *testing.T) {
	client := &fakeClient{err: &llm.TransportError{StatusCode: 502}}
	o := newOrchestrator(client, eventlog.Nop{})

	_, err := o.Knockout(context.Background(), "MT-CO1 FTL", apimodels.Metadata{}, apimodels.SamplingParams{})

	var transportErr *llm.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, 1, client.calls)
}

func TestKnockoutEmitsAuditRecord(t *testing.T) {
	client := &fakeClient{responses: []string{"46.0", "50.0"}}
	recorder := &eventlog.Memory{}
	o := newOrchestrator(client, recorder)

	_, err := o.Knockout(context.Background(), "MT-CO1 FTL EEF1A1", apimodels.Metadata{}, apimodels.SamplingParams{})
	require.NoError(t, err)

	events := recorder.Events()
	// one per prediction plus one knockout summary
	require.Len(t, events, 3)
	assert.Equal(t, "predict_age", events[0].Action)
	assert.Equal(t, "predict_age", events[1].Action)
	assert.Equal(t, "insilico_knockout", events[2].Action)
	assert.Equal(t, "MT-CO1", events[2].Fields["gene_knocked_out"])
	assert.Equal(t, 3, events[2].Fields["original_gene_count"])
}
