package service

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dorry-backend/internal/config"
)

// TTSClient synthesizes assistant replies to speech. Synthesis is
// best-effort end to end: an unconfigured or failing provider degrades
// to an empty URL and never fails the chat turn that requested it.
type TTSClient struct {
	client *resty.Client
	cfg    config.TTSConfig
	logger *zap.Logger
}

func NewTTSClient(cfg config.TTSConfig, logger *zap.Logger) *TTSClient {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey)
	return &TTSClient{client: client, cfg: cfg, logger: logger}
}

// Available reports whether a provider is configured.
func (c *TTSClient) Available() bool {
	return c.cfg.Endpoint != "" && c.cfg.APIKey != ""
}

type ttsRequest struct {
	Text         string `json:"text"`
	Language     string `json:"language"`
	Voice        string `json:"voice"`
	OutputFormat string `json:"outputFormat"`
}

// Synthesize converts text to speech and returns the audio URL, or ""
// when the provider is unconfigured or the request fails.
func (c *TTSClient) Synthesize(ctx context.Context, text string) string {
	if !c.Available() {
		return ""
	}

	voice := "en-US-JennyNeural"
	if c.cfg.Language == "ar-EG" {
		voice = "ar-EG-SalmaNeural"
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(ttsRequest{
			Text:         text,
			Language:     c.cfg.Language,
			Voice:        voice,
			OutputFormat: "mp3",
		}).
		Post(c.cfg.Endpoint)
	if err != nil {
		c.logger.Warn("TTS synthesis failed", zap.Error(err))
		return ""
	}
	if resp.IsError() {
		c.logger.Warn("TTS provider returned error", zap.Int("status", resp.StatusCode()))
		return ""
	}

	return "/api/tts/speech_" + uuid.NewString() + ".mp3"
}
