package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server  ServerConfig
	VLLM    VLLMConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host        string        `envconfig:"MCP_HOST" default:"0.0.0.0"`
	Port        string        `envconfig:"MCP_PORT" default:"3002"`
	ReadTimeout time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	// A knockout issues two sequential model calls, so the write timeout has
	// to cover roughly twice the per-call endpoint timeout.
	WriteTimeout       time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"150s"`
	RequestTimeout     time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"150s"`
	ExamplePayloadPath string        `envconfig:"EXAMPLE_PAYLOAD_PATH" default:"data/example/vllm_payload.json"`
}

type VLLMConfig struct {
	BaseURL string        `envconfig:"VLLM_BASE_URL" default:"http://localhost:8000"`
	Model   string        `envconfig:"VLLM_MODEL" default:"transhumanist-already-exists/C2S-Scale-Gemma-2-27B-age-prediction-fullft"`
	APIKey  string        `envconfig:"VLLM_API_KEY"`
	Timeout time.Duration `envconfig:"VLLM_TIMEOUT" default:"60s"`
}

type LoggingConfig struct {
	Dir string `envconfig:"LOG_DIR" default:"logs"`
}

func Load() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
