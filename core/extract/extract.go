package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/leofalp/extractor/core/memo"
	"github.com/leofalp/extractor/core/parse"
	"github.com/leofalp/extractor/internal/utils"
	"github.com/leofalp/extractor/providers/ai"
	"github.com/leofalp/extractor/providers/observability"
)

var (
	// ErrInference wraps every error returned while asking the model.
	ErrInference = errors.New("extract: inference failed")

	// ErrNilSender is returned by New without a Sender.
	ErrNilSender = errors.New("extract: sender is required")

	// ErrEmptyModel is returned by New when the model name is blank.
	ErrEmptyModel = errors.New("extract: model is required")
)

// Sender sends one request to a model. Both ai.Provider and client.Client
// satisfy it.
type Sender interface {
	SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)
}

// stopReporter is implemented by senders that can tell a finished reply
// from a truncated one, such as ai.Provider and client.Client.
type stopReporter interface {
	IsStopMessage(response *ai.ChatResponse) bool
}

// SenderFunc adapts a plain function to the Sender interface.
type SenderFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// SendMessage calls f.
func (f SenderFunc) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	return f(ctx, request)
}

// Extractor turns input strings into Results, remembering each outcome.
// It is safe for concurrent use.
type Extractor struct {
	sender   Sender
	opts     Options
	logger   *slog.Logger
	observer observability.Provider

	cache *memo.Cache[string, *Result]
	calls singleflight.Group
}

// New creates an Extractor that asks sender.
func New(sender Sender, opts ...Option) (*Extractor, error) {
	if sender == nil {
		return nil, ErrNilSender
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Model == "" {
		return nil, ErrEmptyModel
	}

	cache, err := memo.New[string, *Result](options.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("extract: cache: %w", err)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Extractor{
		sender:   sender,
		opts:     options,
		logger:   logger,
		observer: options.Observer,
		cache:    cache,
	}, nil
}

// Extract returns the Result for raw.
//
// A nil Result with a nil error means the model answered but its reply was
// not a JSON object; a diagnostic has been logged. A non-nil error wraps
// [ErrInference] and is never cached, so the next call retries.
//
// Concurrent calls for an uncached input share one model request, made with
// the context of the first caller.
func (e *Extractor) Extract(ctx context.Context, raw string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var span observability.Span
	if e.observer != nil {
		ctx, span = e.observer.StartSpan(ctx, observability.SpanExtract,
			observability.String(observability.AttrExtractInput, utils.TruncateString(raw, 100)),
			observability.String(observability.AttrLLMModel, e.opts.Model),
		)
		defer span.End()
	}

	if result, ok := e.cache.Get(raw); ok {
		e.count(ctx, observability.MetricExtractCacheHits)
		if span != nil {
			span.AddEvent(observability.EventCacheHit)
			span.SetAttributes(
				observability.Bool(observability.AttrExtractCacheHit, true),
				observability.String(observability.AttrExtractOutcome, outcome(result)),
			)
		}
		return result.clone(), nil
	}
	e.count(ctx, observability.MetricExtractCacheMisses)

	value, err, _ := e.calls.Do(raw, func() (any, error) {
		// A flight that finished between our Get and Do has already stored it.
		if result, ok := e.cache.Peek(raw); ok {
			return result, nil
		}
		return e.fetch(ctx, raw)
	})
	if err != nil {
		e.count(ctx, observability.MetricExtractInferenceErrors)
		if span != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "inference failed")
		}
		return nil, err
	}

	result := value.(*Result)
	if span != nil {
		span.SetAttributes(
			observability.Bool(observability.AttrExtractCacheHit, false),
			observability.String(observability.AttrExtractOutcome, outcome(result)),
			observability.Int(observability.AttrExtractCacheSize, e.cache.Len()),
		)
		span.SetStatus(observability.StatusOK, "")
	}
	return result.clone(), nil
}

// fetch asks the model about raw and caches the outcome.
func (e *Extractor) fetch(ctx context.Context, raw string) (*Result, error) {
	request := ai.ChatRequest{
		Model:  e.opts.Model,
		Prompt: BuildPrompt(raw),
		GenerationConfig: &ai.GenerationConfig{
			Temperature: utils.Ptr(float32(0)),
			Think:       utils.Ptr(false),
		},
	}
	if e.opts.JSONMode {
		request.ResponseFormat = &ai.ResponseFormat{Type: "json_object"}
	}

	response, err := e.sender.SendMessage(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: empty response", ErrInference)
	}
	if reporter, ok := e.sender.(stopReporter); ok && !reporter.IsStopMessage(response) {
		e.logger.WarnContext(ctx, "model reply did not finish",
			slog.String("input", raw),
			slog.String("finish_reason", response.FinishReason),
		)
	}

	content := parse.StripCodeFences(response.Content)
	result, err := parse.Object[Result](content, parse.WithRepair(e.opts.RepairJSON))
	if err != nil {
		e.logger.WarnContext(ctx, "extraction parse failed",
			slog.String("input", raw),
			slog.String("response", utils.TruncateString(response.Content, 200)),
			slog.String("error", err.Error()),
		)
		e.count(ctx, observability.MetricExtractParseFailures)
		if span := observability.SpanFromContext(ctx); span != nil {
			span.AddEvent(observability.EventParseFailed, observability.Error(err))
		}

		if e.opts.CacheFailures {
			e.cache.Add(raw, nil)
		}
		return nil, nil
	}

	e.cache.Add(raw, &result)
	return &result, nil
}

func (e *Extractor) count(ctx context.Context, metric string) {
	if e.observer != nil {
		e.observer.Counter(metric).Add(ctx, 1)
	}
}

func outcome(result *Result) string {
	if result == nil {
		return "absent"
	}
	return "ok"
}

// Stats returns the cache counters.
func (e *Extractor) Stats() memo.Stats {
	return e.cache.Stats()
}

// Len returns the number of inputs currently remembered.
func (e *Extractor) Len() int {
	return e.cache.Len()
}

// Cached reports whether raw has a remembered outcome.
func (e *Extractor) Cached(raw string) bool {
	return e.cache.Contains(raw)
}

// Model returns the model identifier sent with each request.
func (e *Extractor) Model() string {
	return e.opts.Model
}
