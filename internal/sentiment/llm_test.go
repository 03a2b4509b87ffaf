package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pol     float64
		sub     float64
		wantErr bool
	}{
		{"plain", `{"polarity": 0.4, "subjectivity": 0.2}`, 0.4, 0.2, false},
		{"fenced", "```json\n{\"polarity\": -0.3, \"subjectivity\": 0.6}\n```", -0.3, 0.6, false},
		{"clamped", `{"polarity": 2.5, "subjectivity": -1}`, 1, 0, false},
		{"zero is valid", `{"polarity": 0, "subjectivity": 0}`, 0, 0, false},
		{"missing field", `{"polarity": 0.4}`, 0, 0, true},
		{"not json", `positive`, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScore(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseScore returned error: %v", err)
			}
			if !near(got.Polarity, tt.pol) || !near(got.Subjectivity, tt.sub) {
				t.Errorf("Expected (%.2f, %.2f), got %+v", tt.pol, tt.sub, got)
			}
		})
	}
}

func TestLLMScorer_OpenAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Expected bearer auth, got %q", got)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "gpt-4o-mini" || len(req.Messages) != 2 {
			t.Errorf("Unexpected request: %+v", req)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"polarity\":0.5,\"subjectivity\":0.25}"}}]}`))
	}))
	defer srv.Close()

	s, err := NewLLMScorer(LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKey: "sk-test", Endpoint: srv.URL}, time.Second)
	if err != nil {
		t.Fatalf("NewLLMScorer returned error: %v", err)
	}
	got, err := s.Score(context.Background(), "AAPL beat estimates")
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if got.Polarity != 0.5 || got.Subjectivity != 0.25 {
		t.Errorf("Unexpected score %+v", got)
	}
}

func TestLLMScorer_Claude(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "claude-key" {
			t.Errorf("Expected x-api-key header, got %q", got)
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("Expected anthropic-version header")
		}
		w.Write([]byte(`{"content":[{"text":"{\"polarity\":-0.2,\"subjectivity\":0.9}"}]}`))
	}))
	defer srv.Close()

	s, err := NewLLMScorer(LLMConfig{Provider: "CLAUDE", APIKey: "claude-key", Endpoint: srv.URL}, time.Second)
	if err != nil {
		t.Fatalf("NewLLMScorer returned error: %v", err)
	}
	got, err := s.Score(context.Background(), "MSFT slumped")
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if got.Polarity != -0.2 || got.Subjectivity != 0.9 {
		t.Errorf("Unexpected score %+v", got)
	}
}

func TestLLMScorer_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s, _ := NewLLMScorer(LLMConfig{Provider: "OPENAI", APIKey: "k", Endpoint: srv.URL, MaxAttempts: 1}, time.Second)
	if _, err := s.Score(context.Background(), "x"); err == nil {
		t.Fatal("Expected error for 429 response")
	}
}

func TestLLMScorer_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"polarity\":0.1,\"subjectivity\":0.1}"}}]}`))
	}))
	defer srv.Close()

	s, _ := NewLLMScorer(LLMConfig{Provider: "OPENAI", APIKey: "k", Endpoint: srv.URL, MaxAttempts: 2}, time.Second)
	if _, err := s.Score(context.Background(), "x"); err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected 2 calls, got %d", calls.Load())
	}
}

func TestNewLLMScorer_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewLLMScorer(LLMConfig{Provider: "OPENAI"}, time.Second); err == nil {
		t.Fatal("Expected error when API key is missing")
	}

	t.Setenv("ANTHROPIC_API_KEY", "from-env")
	s, err := NewLLMScorer(LLMConfig{Provider: "CLAUDE"}, time.Second)
	if err != nil {
		t.Fatalf("Expected key from environment, got error: %v", err)
	}
	if s.cfg.APIKey != "from-env" || s.cfg.Endpoint != claudeEndpoint {
		t.Errorf("Unexpected config %+v", s.cfg)
	}
}

func TestNew(t *testing.T) {
	if s, err := New(LLMConfig{}, time.Second); err != nil {
		t.Fatalf("New returned error: %v", err)
	} else if _, ok := s.(*LexiconScorer); !ok {
		t.Errorf("Expected lexicon scorer by default, got %T", s)
	}

	if s, _ := New(LLMConfig{Provider: "noop"}, time.Second); s == nil {
		t.Error("Expected noop scorer")
	} else if _, ok := s.(NoopScorer); !ok {
		t.Errorf("Expected NoopScorer, got %T", s)
	}

	if _, err := New(LLMConfig{Provider: "GEMINI", APIKey: "k"}, time.Second); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}
