package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDisabledByDefault(t *testing.T) {
	t.Setenv("LOG_TRACING_ENABLED", "")
	if err := Init(); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if Enabled() {
		t.Fatal("Expected tracing to be disabled")
	}

	ctx, span := StartSpan(context.Background(), "pipeline.Run")
	defer span.End()
	if _, _, ok := GetTraceFields(ctx); ok {
		t.Error("Expected no trace fields while disabled")
	}
}

func TestInitWithWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("InitWithWriter returned error: %v", err)
	}
	defer func() { enabled = false }()

	ctx, span := StartSpan(context.Background(), "article.Load")
	traceID, spanID, ok := GetTraceFields(ctx)
	if !ok || traceID == "" || spanID == "" {
		t.Errorf("Expected trace fields, got %q %q %v", traceID, spanID, ok)
	}
	span.End()

	if err := Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "article.Load") {
		t.Errorf("Expected exported span, got %s", buf.String())
	}
}
