package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/leofalp/extractor/internal/utils"
	"github.com/leofalp/extractor/providers/ai"
	"github.com/leofalp/extractor/providers/observability"
)

const (
	defaultBaseURL   = "http://localhost:11434"
	generateEndpoint = "/api/generate"
	providerName     = "ollama"
	userAgent        = "extractor-ollama"
)

// ErrModelRequired is returned when neither the request nor the provider names a model.
var ErrModelRequired = errors.New("ollama: model is required")

// OllamaProvider implements the ai.Provider interface for Ollama.
type OllamaProvider struct {
	apiKey       string
	baseURL      string
	defaultModel string
	headers      []utils.HeaderOption
	client       *http.Client
}

// New creates a provider pointed at OLLAMA_HOST, or http://localhost:11434
// when the variable is unset. A host without a scheme ("127.0.0.1:11434", as
// the ollama CLI accepts) gets http:// prepended.
func New() *OllamaProvider {
	return &OllamaProvider{
		baseURL: normalizeBaseURL(os.Getenv("OLLAMA_HOST")),
		headers: []utils.HeaderOption{{Key: "User-Agent", Value: userAgent}},
		client:  &http.Client{},
	}
}

// WithAPIKey sets a Bearer token, for servers running behind an authenticating proxy.
func (p *OllamaProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the server address.
func (p *OllamaProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = normalizeBaseURL(baseURL)
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *OllamaProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// WithDefaultModel sets the model used when a request leaves Model empty.
func (p *OllamaProvider) WithDefaultModel(model string) *OllamaProvider {
	p.defaultModel = model
	return p
}

// WithHeader adds a header sent with every request, replacing an earlier
// value for the same key. Useful behind proxies that route on custom headers.
func (p *OllamaProvider) WithHeader(key, value string) *OllamaProvider {
	for i, h := range p.headers {
		if http.CanonicalHeaderKey(h.Key) == http.CanonicalHeaderKey(key) {
			p.headers[i].Value = value
			return p
		}
	}
	p.headers = append(p.headers, utils.HeaderOption{Key: key, Value: value})
	return p
}

// BaseURL returns the configured server address.
func (p *OllamaProvider) BaseURL() string {
	return p.baseURL
}

// SendMessage implements the ai.Provider interface. Errors from the transport,
// non-2xx answers and undecodable bodies are returned unchanged in kind so
// callers can tell them apart with errors.As.
func (p *OllamaProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	span := observability.SpanFromContext(ctx)
	observer := observability.ObserverFromContext(ctx)

	model := request.Model
	if model == "" {
		model = p.defaultModel
	}
	if model == "" {
		return nil, ErrModelRequired
	}

	body := requestToOllama(model, request)

	if span != nil {
		span.AddEvent(observability.EventLLMRequestStart)
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, providerName),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, model),
		)
		defer span.AddEvent(observability.EventLLMRequestEnd)
	}

	if observer != nil {
		observer.Trace(ctx, "Ollama provider preparing request",
			observability.String(observability.AttrLLMProvider, providerName),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, model),
			observability.Int(observability.AttrRequestPromptLength, len(body.Prompt)),
		)
	}

	httpResponse, resp, err := utils.DoPostSync[generateResponse](ctx, p.client, p.baseURL+generateEndpoint, p.apiKey, body, p.headers...)
	if err != nil {
		return nil, fmt.Errorf("ollama generate: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("empty response from Ollama: %s", httpResponse.Status)
	}

	return responseToGeneric(resp), nil
}

// IsStopMessage reports whether generation finished with done_reason "stop".
// "length" (num_predict reached) and "unload" replies are truncated.
func (p *OllamaProvider) IsStopMessage(message *ai.ChatResponse) bool {
	if message == nil {
		return true
	}
	return message.FinishReason == "stop"
}

func requestToOllama(model string, request ai.ChatRequest) generateRequest {
	out := generateRequest{
		Model:  model,
		Prompt: request.PromptText(),
		System: request.SystemPrompt,
		Stream: false,
	}

	if request.ResponseFormat != nil && request.ResponseFormat.Type == "json_object" {
		out.Format = "json"
	}

	if cfg := request.GenerationConfig; cfg != nil {
		out.Think = cfg.Think
		out.Options = &requestOptions{
			Temperature:    cfg.Temperature,
			TopP:           cfg.TopP,
			Seed:           cfg.Seed,
			NumPredict:     cfg.MaxTokens,
			EnableThinking: cfg.Think,
		}
	}

	return out
}

func responseToGeneric(resp *generateResponse) *ai.ChatResponse {
	out := &ai.ChatResponse{
		Model:        resp.Model,
		Content:      resp.Response,
		Reasoning:    resp.Thinking,
		FinishReason: resp.DoneReason,
	}
	if out.FinishReason == "" && resp.Done {
		out.FinishReason = "stop"
	}
	if created, err := time.Parse(time.RFC3339Nano, resp.CreatedAt); err == nil {
		out.Created = created.Unix()
	}
	if resp.PromptEvalCount > 0 || resp.EvalCount > 0 {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		}
	}
	return out
}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}
