// Package llm talks to an OpenAI-compatible language model for article
// curation, translation, summarization and reformatting.
package llm

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/econoscope/econoscope/pkg/config"
	"github.com/econoscope/econoscope/pkg/domain"
)

// token limits per operation, matching prompt expectations
const (
	curateMaxTokens       = 300
	translateMaxTokens    = 1000
	translateArticleMax   = 4000
	summaryMaxTokens      = 200
	summaryArticleMax     = 500
	formatMaxTokens       = 2000
	fullArticleThreshold  = 500 // runes, longer inputs get the long-form templates
	koreanSummaryFallback = "요약을 생성할 수 없습니다."
)

// Client issues enrichment prompts against the configured model
type Client struct {
	client *openai.Client
	cfg    config.LLMConfig
}

// New creates an LLM client from the given configuration
func New(cfg config.LLMConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	return &Client{client: openai.NewClientWithConfig(clientConfig), cfg: cfg}
}

// complete issues a single-user-message chat completion and returns the text
func (c *Client) complete(ctx context.Context, prompt string, maxTokens int, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: float32(c.cfg.Temperature),
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}
	return resp.Choices[0].Message.Content, nil
}

// Curate scores the article's economic impact from its title and description.
// A malformed or invalid model response yields the default neutral result, not
// an error; only transport-level failures are returned as errors.
func (c *Client) Curate(ctx context.Context, title, description string) (domain.CurationResult, error) {
	content, err := c.complete(ctx, curatePrompt(title, description), curateMaxTokens, true)
	if err != nil {
		return domain.CurationResult{}, err
	}
	return parseCuration(content), nil
}

// Translate translates Korean text to English. Inputs longer than 500 runes
// get the long-form reformat-and-translate template.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	prompt, maxTokens := translatePrompt(text), translateMaxTokens
	if utf8.RuneCountInString(text) > fullArticleThreshold {
		prompt, maxTokens = translateArticlePrompt(text), translateArticleMax
	}

	translation, err := c.complete(ctx, prompt, maxTokens, false)
	if err != nil {
		return "", err
	}
	if translation == "" {
		return text, nil
	}
	return translation, nil
}

// Summarize produces a Korean summary. Full article content gets the 3-5
// sentence template, title+description only the 2-3 sentence one.
func (c *Client) Summarize(ctx context.Context, title, description, content string) (string, error) {
	text := content
	if text == "" {
		text = title + " " + description
	}

	prompt, maxTokens := summaryShortPrompt(title, description), summaryMaxTokens
	if utf8.RuneCountInString(text) > fullArticleThreshold {
		prompt, maxTokens = summaryArticlePrompt(text), summaryArticleMax
	}

	summary, err := c.complete(ctx, prompt, maxTokens, false)
	if err != nil {
		return "", err
	}
	if summary == "" {
		return koreanSummaryFallback, nil
	}
	return summary, nil
}

// Format reformats Korean article text into readable paragraphs without
// translating it
func (c *Client) Format(ctx context.Context, text string) (string, error) {
	formatted, err := c.complete(ctx, formatPrompt(text), formatMaxTokens, false)
	if err != nil {
		return "", err
	}
	if formatted == "" {
		return text, nil
	}
	return formatted, nil
}

// SemanticSummaryKey returns the text used as the summary cache key, mirroring
// what Summarize actually summarizes
func SemanticSummaryKey(title, description, content string) string {
	if content != "" {
		return content
	}
	return title + " " + description
}
