// Package vision talks to the multimodal LLM providers. It only moves
// bytes and text; interpretation of the model output lives in parse.go and
// in the enrichment pipeline.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"

	appcfg "github.com/promptfinder/core/internal/config"
	"github.com/promptfinder/core/internal/pkg/imagefetch"
)

// Client analyzes images with a vision-capable model and returns the raw
// text response.
type Client interface {
	// AnalyzeImage sends the image plus prompt and returns the model text.
	// Both passes go through here; the second pass re-reads the image so
	// the review can check tags against what is actually shown.
	AnalyzeImage(ctx context.Context, img *imagefetch.Image, prompt string, model string) (string, error)
	// TestConnection performs a cheap text round trip to verify the
	// credentials before any batch work starts.
	TestConnection(ctx context.Context) error
}

// NewClient builds the provider client selected by configuration.
func NewClient(cfg appcfg.VisionConfig) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("vision api key is empty")
	}

	switch cfg.Provider {
	case "", "openai":
		return newOpenAIClient(cfg), nil
	case "anthropic":
		return newAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown vision provider %q", cfg.Provider)
	}
}

func timeoutFor(cfg appcfg.VisionConfig) time.Duration {
	if cfg.TimeoutSeconds > 0 {
		return time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return 60 * time.Second
}

func maxTokensFor(cfg appcfg.VisionConfig) int64 {
	if cfg.MaxTokens > 0 {
		return int64(cfg.MaxTokens)
	}
	return 1500
}

func dataURL(img *imagefetch.Image) string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

type openAIClient struct {
	client    openaiclient.Client
	cfg       appcfg.VisionConfig
	timeout   time.Duration
	maxTokens int64
}

func newOpenAIClient(cfg appcfg.VisionConfig) *openAIClient {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		openaioption.WithMaxRetries(1),
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, openaioption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}
	return &openAIClient{
		client:    openaiclient.NewClient(opts...),
		cfg:       cfg,
		timeout:   timeoutFor(cfg),
		maxTokens: maxTokensFor(cfg),
	}
}

func (c *openAIClient) AnalyzeImage(ctx context.Context, img *imagefetch.Image, prompt string, model string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.client.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model: openaiclient.ChatModel(model),
		Messages: []openaiclient.ChatCompletionMessageParamUnion{
			openaiclient.UserMessage([]openaiclient.ChatCompletionContentPartUnionParam{
				openaiclient.TextContentPart(prompt),
				openaiclient.ImageContentPart(openaiclient.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL(img),
				}),
			}),
		},
		MaxTokens:   openaiclient.Int(c.maxTokens),
		Temperature: openaiclient.Float(0.2),
		ResponseFormat: openaiclient.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openaiclient.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision request: %w", err)
	}
	return firstChoiceText(completion)
}

func (c *openAIClient) TestConnection(ctx context.Context) error {
	model := jetopenai.NewLanguageModel(c.cfg.Model, jetopenai.WithClient(c.client))
	return pingModel(ctx, c.timeout, model)
}

func firstChoiceText(completion *openaiclient.ChatCompletion) (string, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return "", errors.New("empty response from vision model")
	}
	text := completion.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response from vision model")
	}
	return text, nil
}

type anthropicClient struct {
	client    anthropicclient.Client
	cfg       appcfg.VisionConfig
	timeout   time.Duration
	maxTokens int64
}

func newAnthropicClient(cfg appcfg.VisionConfig) *anthropicClient {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		anthropicoption.WithMaxRetries(1),
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}
	return &anthropicClient{
		client:    anthropicclient.NewClient(opts...),
		cfg:       cfg,
		timeout:   timeoutFor(cfg),
		maxTokens: maxTokensFor(cfg),
	}
}

func (c *anthropicClient) AnalyzeImage(ctx context.Context, img *imagefetch.Image, prompt string, model string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	b64 := base64.StdEncoding.EncodeToString(img.Data)
	message, err := c.client.Messages.New(ctx, anthropicclient.MessageNewParams{
		Model:     anthropicclient.Model(model),
		MaxTokens: c.maxTokens,
		Messages: []anthropicclient.MessageParam{
			anthropicclient.NewUserMessage(
				anthropicclient.NewImageBlockBase64(img.MIMEType, b64),
				anthropicclient.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision request: %w", err)
	}
	return messageText(message)
}

func (c *anthropicClient) TestConnection(ctx context.Context) error {
	model := jetanthropic.NewLanguageModel(c.cfg.Model, jetanthropic.WithClient(c.client))
	return pingModel(ctx, c.timeout, model)
}

func messageText(message *anthropicclient.Message) (string, error) {
	if message == nil {
		return "", errors.New("empty response from vision model")
	}
	var full strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			full.WriteString(block.Text)
		}
	}
	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response from vision model")
	}
	return text, nil
}

// pingModel sends a minimal text prompt through the provider. Any error
// here means the configuration is unusable and batch work must not start.
func pingModel(ctx context.Context, timeout time.Duration, model jetapi.LanguageModel) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := jetai.GenerateText(ctx,
		[]jetapi.Message{
			&jetapi.UserMessage{Content: jetapi.ContentFromText("Reply with the word ok.")},
		},
		jetai.WithModel(model),
		jetai.WithMaxOutputTokens(8),
	)
	if err != nil {
		return fmt.Errorf("vision connection test: %w", err)
	}
	return nil
}
