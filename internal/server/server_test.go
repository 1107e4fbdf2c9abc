package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/config"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/eventlog"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/knockout"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/llm"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/predictor"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/tools"
)

type fakeClient struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeClient) Complete(_ context.Context, _ string, _ apimodels.SamplingParams) (string, error) {
	f.calls++
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

func newTestServer(client *fakeClient) *Server {
	cfg := config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           "0",
			ReadTimeout:    time.Minute,
			WriteTimeout:   time.Minute,
			RequestTimeout: time.Minute,
		},
		VLLM: config.VLLMConfig{
			BaseURL: "http://localhost:8000",
			Model:   "test-model",
		},
	}
	p := predictor.New(client, eventlog.Nop{})
	dispatcher := tools.NewDispatcher(p, knockout.New(p, eventlog.Nop{}))
	return New(cfg, dispatcher)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&fakeClient{responses: []string{"46.0"}})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestHandleListTools(t *testing.T) {
	s := newTestServer(&fakeClient{responses: []string{"46.0"}})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var defs []tools.Definition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &defs))
	assert.Len(t, defs, 3)
}

func TestHandleKnockoutTool(t *testing.T) {
	client := &fakeClient{responses: []string{"46.0 years", "46.0 years"}}
	s := newTestServer(client)

	body := `{"gene_sentence": "MT-CO1 FTL EEF1A1 HLA-B LST1 S100A4", "sex": "female", "tissue": "blood"}`
	rec := doRequest(t, s, http.MethodPost, "/api/v1/tools/insilico_knockout", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result apimodels.KnockoutResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "MT-CO1", result.GeneKnockedOut)
	assert.Equal(t, "FTL EEF1A1 HLA-B LST1 S100A4", result.KnockoutGeneSentence)
	require.NotNil(t, result.DeltaAge)
	assert.Equal(t, 0.0, *result.DeltaAge)
	assert.Equal(t, 2, client.calls)
}

func TestHandlePredictAgeTool(t *testing.T) {
	s := newTestServer(&fakeClient{responses: []string{"52 years old"}})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/tools/predict_age", `{"gene_sentence": "MT-CO1 FTL"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result apimodels.AgePredictionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.PredictedAge)
	assert.Equal(t, 52.0, *result.PredictedAge)
}

func TestHandleToolCallErrors(t *testing.T) {
	t.Run("unknown tool", func(t *testing.T) {
		s := newTestServer(&fakeClient{responses: []string{"46.0"}})
		rec := doRequest(t, s, http.MethodPost, "/api/v1/tools/nope", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty gene sentence", func(t *testing.T) {
		client := &fakeClient{responses: []string{"46.0"}}
		s := newTestServer(client)
		rec := doRequest(t, s, http.MethodPost, "/api/v1/tools/insilico_knockout", `{"gene_sentence": "  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, client.calls)
	})

	t.Run("malformed arguments", func(t *testing.T) {
		s := newTestServer(&fakeClient{responses: []string{"46.0"}})
		rec := doRequest(t, s, http.MethodPost, "/api/v1/tools/predict_age", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("endpoint unreachable", func(t *testing.T) {
		s := newTestServer(&fakeClient{err: &llm.TransportError{StatusCode: 500}})
		rec := doRequest(t, s, http.MethodPost, "/api/v1/tools/predict_age", `{"gene_sentence": "FTL"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHandleModelInfo(t *testing.T) {
	s := newTestServer(&fakeClient{responses: []string{"46.0"}})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/model-info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Model: test-model")
	assert.Contains(t, rec.Body.String(), "vLLM Endpoint: http://localhost:8000")
}

func TestHandleExamplePromptMissingFile(t *testing.T) {
	s := newTestServer(&fakeClient{responses: []string{"46.0"}})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/example-prompt", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
