// Package gemini retrieves video titles and transcriptions from the Gemini API with Google Search grounding.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/auth"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/key"
	"github.com/tubescribe/tubescribe/log"
	"github.com/tubescribe/tubescribe/network"
	"github.com/tubescribe/tubescribe/video"
	"google.golang.org/genai"
)

var (
	// ErrMissingAPIKey is returned when no API key can be resolved.
	ErrMissingAPIKey = errors.New("gemini api key is not set, run `tubescribe auth set` or export GEMINI_API_KEY")

	// ErrEmptyResponse is returned when the model answered with no text.
	ErrEmptyResponse = errors.New("No response from AI")

	// ErrSchemaViolation is returned when the answer lacks a required field.
	ErrSchemaViolation = errors.New("response does not match the expected schema")
)

// Config holds what is needed to build a Client.
type Config struct {
	APIKey  string
	Model   string
	Search  bool
	BaseURL string

	// HTTPClient defaults to network.Client.
	HTTPClient *http.Client
}

// ConfigFromViper builds a Config from the current configuration,
// resolving the API key through config, env and keyring.
func ConfigFromViper() (Config, error) {
	resolved, ok := auth.ResolveAPIKey().Get()
	if !ok {
		return Config{}, ErrMissingAPIKey
	}

	return Config{
		APIKey:  resolved.Key,
		Model:   viper.GetString(key.GeminiModel),
		Search:  viper.GetBool(key.GeminiSearch),
		BaseURL: viper.GetString(key.GeminiBaseURL),
	}, nil
}

// Client issues one GenerateContent call per video.
type Client struct {
	models *genai.Models
	model  string
	config *genai.GenerateContentConfig
	logger log.Entry
}

// New creates a Client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	if cfg.Model == "" {
		cfg.Model = constant.DefaultModel
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = network.Client
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		models: client.Models,
		model:  cfg.Model,
		config: generateConfig(cfg.Search),
		logger: log.With(log.Fields{"component": "gemini", "model": cfg.Model}),
	}, nil
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Retrieve asks the model for the exact title and full transcription of the video at url.
func (c *Client) Retrieve(ctx context.Context, url string) (*video.Transcript, error) {
	logger := c.logger.With(log.Fields{"url": url})
	logger.Debug("generate content")

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(Prompt(url)), c.config)
	if err != nil {
		logger.WithError(err).Error("generate content failed")
		return nil, err
	}

	transcript, err := Parse(resp)
	if err != nil {
		logger.WithError(err).Warn("unusable response")
		return nil, err
	}

	logger.With(log.Fields{"sources": len(transcript.Sources)}).Debug("transcript parsed")
	return transcript, nil
}

// Prompt returns the instruction sent for url.
func Prompt(url string) string {
	return fmt.Sprintf(constant.RetrievalPrompt, url)
}

func generateConfig(search bool) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title": {
					Type:        genai.TypeString,
					Description: "The exact title of the YouTube video.",
				},
				"fullTranscription": {
					Type:        genai.TypeString,
					Description: "The complete, verbatim transcription of the video.",
				},
			},
			Required: []string{"title", "fullTranscription"},
		},
	}

	if search {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	return config
}
