package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"ticker-sentiment/internal/api"
	"ticker-sentiment/internal/trace"
	"ticker-sentiment/internal/types"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	claudeEndpoint = "https://api.anthropic.com/v1/messages"

	systemPrompt = "You are a financial news analyst. Rate the sentiment of one sentence. Respond ONLY with valid JSON."
)

// LLMConfig selects the provider and model for LLMScorer.
type LLMConfig struct {
	Provider    string // "OPENAI" or "CLAUDE"
	Model       string
	MaxTokens   int
	Temperature float32
	APIKey      string // read from OPENAI_API_KEY / ANTHROPIC_API_KEY when empty
	Endpoint    string // provider default when empty
	MaxAttempts int    // per sentence, 429 and 5xx are retried; default 3
}

// LLMScorer asks a chat model for a sentence's polarity and subjectivity.
type LLMScorer struct {
	cfg    LLMConfig
	client *api.Client
	retry  api.RetryConfig
}

func NewLLMScorer(cfg LLMConfig, timeout time.Duration) (*LLMScorer, error) {
	cfg.Provider = strings.ToUpper(cfg.Provider)
	switch cfg.Provider {
	case "OPENAI":
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.Endpoint == "" {
			cfg.Endpoint = openAIEndpoint
		}
	case "CLAUDE":
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.Endpoint == "" {
			cfg.Endpoint = claudeEndpoint
		}
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key missing", strings.ToLower(cfg.Provider))
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 100
	}

	retry := api.DefaultRetryConfig()
	if cfg.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.MaxAttempts
	}

	return &LLMScorer{
		cfg:    cfg,
		client: api.NewClient(api.WithTimeout(timeout), api.WithLogging(true)),
		retry:  retry,
	}, nil
}

func (s *LLMScorer) Score(ctx context.Context, text string) (types.SentimentScore, error) {
	ctx, span := trace.StartSpan(ctx, "llm-sentence-sentiment")
	defer span.End()

	var content string
	var err error
	switch s.cfg.Provider {
	case "OPENAI":
		content, err = s.callOpenAI(ctx, buildPrompt(text))
	default:
		content, err = s.callClaude(ctx, buildPrompt(text))
	}
	if err != nil {
		return types.SentimentScore{}, err
	}
	return parseScore(content)
}

func buildPrompt(text string) string {
	return fmt.Sprintf(`Rate this sentence from a financial news article.

Sentence: %s

polarity: -1.0 (very negative) to 1.0 (very positive)
subjectivity: 0.0 (purely factual) to 1.0 (purely opinion)

Respond ONLY with JSON: {"polarity": <float>, "subjectivity": <float>}`, text)
}

func parseScore(content string) (types.SentimentScore, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var r struct {
		Polarity     *float64 `json:"polarity"`
		Subjectivity *float64 `json:"subjectivity"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &r); err != nil {
		return types.SentimentScore{}, fmt.Errorf("invalid JSON response: %w", err)
	}
	if r.Polarity == nil || r.Subjectivity == nil {
		return types.SentimentScore{}, errors.New("response missing polarity or subjectivity")
	}
	return types.SentimentScore{
		Polarity:     clamp(*r.Polarity, -1, 1),
		Subjectivity: clamp(*r.Subjectivity, 0, 1),
	}, nil
}

func (s *LLMScorer) callOpenAI(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model": s.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": s.cfg.Temperature,
		"max_tokens":  s.cfg.MaxTokens,
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	headers := map[string]string{"Authorization": "Bearer " + s.cfg.APIKey}
	if err := s.post(ctx, body, headers, &r); err != nil {
		return "", err
	}
	if len(r.Choices) == 0 {
		return "", errors.New("no choices")
	}
	return r.Choices[0].Message.Content, nil
}

func (s *LLMScorer) callClaude(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":      s.cfg.Model,
		"max_tokens": s.cfg.MaxTokens,
		"system":     systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	var r struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	headers := map[string]string{
		"x-api-key":         s.cfg.APIKey,
		"anthropic-version": "2023-06-01",
	}
	if err := s.post(ctx, body, headers, &r); err != nil {
		return "", err
	}
	if len(r.Content) == 0 {
		return "", errors.New("no content")
	}
	return r.Content[0].Text, nil
}

func (s *LLMScorer) post(ctx context.Context, body any, headers map[string]string, out any) error {
	req := api.Request{Method: http.MethodPost, URL: s.cfg.Endpoint, Body: body, Headers: headers}
	resp, err := s.client.DoWithRetry(ctx, req, s.retry)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", strings.ToLower(s.cfg.Provider), err)
	}
	return resp.ParseJSON(out)
}
