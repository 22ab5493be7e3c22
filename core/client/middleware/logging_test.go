package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/extractor/providers/ai"
)

// testLogger creates an slog.Logger that writes to a *bytes.Buffer so tests
// can inspect emitted log lines without capturing os.Stderr.
func testLogger(buf *bytes.Buffer) *slog.Logger {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler)
}

func logContains(buf *bytes.Buffer, substr string) bool {
	return strings.Contains(buf.String(), substr)
}

func okSend(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	return &ai.ChatResponse{
		Model:        "qwen3:4b",
		Content:      `{"user":"张三"}`,
		FinishReason: "stop",
		Usage:        &ai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func TestLoggingMiddleware_Levels(t *testing.T) {
	request := ai.ChatRequest{Model: "qwen3:4b", Prompt: "待处理字符串：\"abc\""}

	tests := []struct {
		name      string
		level     LogLevel
		present   []string
		notExpect []string
	}{
		{
			name:      "minimal",
			level:     LogLevelMinimal,
			present:   []string{"qwen3:4b", "prompt_tokens=10", "total_tokens=15", "duration="},
			notExpect: []string{"prompt_length", "finish_reason", "response_content", "prompt="},
		},
		{
			name:      "standard",
			level:     LogLevelStandard,
			present:   []string{"prompt_length=", "finish_reason=stop"},
			notExpect: []string{"response_content", "prompt="},
		},
		{
			name:    "verbose",
			level:   LogLevelVerbose,
			present: []string{"prompt_length=", "finish_reason=stop", "response_content=", "prompt=", "张三"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			chain := NewLoggingMiddleware(testLogger(buf), tt.level)(okSend)

			if _, err := chain(context.Background(), request); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, s := range tt.present {
				if !logContains(buf, s) {
					t.Errorf("expected %q in log, got:\n%s", s, buf.String())
				}
			}
			for _, s := range tt.notExpect {
				if logContains(buf, s) {
					t.Errorf("did not expect %q in log, got:\n%s", s, buf.String())
				}
			}
			if !logContains(buf, "llm send completed") {
				t.Errorf("expected completion entry, got:\n%s", buf.String())
			}
		})
	}
}

func TestLoggingMiddleware_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	providerErr := errors.New("connection refused")

	chain := NewLoggingMiddleware(testLogger(buf), LogLevelStandard)(
		func(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
			return nil, providerErr
		},
	)

	resp, err := chain(context.Background(), ai.ChatRequest{Model: "qwen3:4b"})
	if !errors.Is(err, providerErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if resp != nil {
		t.Errorf("expected nil response, got %+v", resp)
	}
	if !logContains(buf, "llm send failed") || !logContains(buf, "connection refused") {
		t.Errorf("expected failure entry with error, got:\n%s", buf.String())
	}
	if !logContains(buf, "level=ERROR") {
		t.Errorf("expected ERROR level, got:\n%s", buf.String())
	}
	if logContains(buf, "llm send completed") {
		t.Errorf("did not expect completion entry, got:\n%s", buf.String())
	}
}

func TestLoggingMiddleware_NoUsage(t *testing.T) {
	buf := &bytes.Buffer{}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelMinimal)(
		func(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
			return &ai.ChatResponse{Model: "m", Content: "x"}, nil
		},
	)

	if _, err := chain(context.Background(), ai.ChatRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logContains(buf, "prompt_tokens") {
		t.Errorf("did not expect token counts without usage, got:\n%s", buf.String())
	}
}

func TestLoggingMiddleware_VerboseTruncates(t *testing.T) {
	buf := &bytes.Buffer{}
	long := strings.Repeat("a", truncateLen*2)
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelVerbose)(okSend)

	if _, err := chain(context.Background(), ai.ChatRequest{Prompt: long}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logContains(buf, long) {
		t.Error("expected prompt to be truncated in verbose output")
	}
	if !logContains(buf, "truncated") {
		t.Errorf("expected truncation marker, got:\n%s", buf.String())
	}
}

func TestLoggingMiddleware_NilLoggerUsesDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	previous := slog.Default()
	slog.SetDefault(testLogger(buf))
	t.Cleanup(func() { slog.SetDefault(previous) })

	chain := NewLoggingMiddleware(nil, LogLevelMinimal)(okSend)
	if _, err := chain(context.Background(), ai.ChatRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !logContains(buf, "llm send") {
		t.Errorf("expected default logger output, got:\n%s", buf.String())
	}
}
