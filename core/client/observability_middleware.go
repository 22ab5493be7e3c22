package client

import (
	"context"
	"time"

	"github.com/leofalp/extractor/internal/utils"
	"github.com/leofalp/extractor/providers/ai"
	"github.com/leofalp/extractor/providers/observability"
)

// NewObservabilityMiddleware returns a Middleware that wraps each request in
// a span and records request count, duration and token metrics.
//
// The span and the observer are put into the context before calling next, so
// providers can reach them through [observability.SpanFromContext] and
// [observability.ObserverFromContext]. [New] installs it as the outermost
// wrapper when [WithObserver] is given, so it sees the final outcome after
// any timeout middleware.
//
// defaultModel labels span and metric attributes when the request's own
// Model field is empty.
func NewObservabilityMiddleware(observer observability.Provider, defaultModel string) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			model := effectiveModel(request.Model, defaultModel)

			ctx, span := observer.StartSpan(ctx, observability.SpanClientSendMessage,
				observability.String(observability.AttrLLMModel, model),
			)
			ctx = observability.ContextWithSpan(ctx, span)
			ctx = observability.ContextWithObserver(ctx, observer)

			observer.Debug(ctx, "llm send",
				observability.String(observability.AttrLLMModel, model),
				observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
				observability.Int(observability.AttrRequestPromptLength, len(request.PromptText())),
			)

			timer := utils.NewTimer()
			response, err := next(ctx, request)
			elapsed := timer.Stop()

			if err != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, "llm send failed")
				span.End()

				observer.Error(ctx, "llm send failed",
					observability.Error(err),
					observability.Duration(observability.AttrDuration, elapsed),
					observability.String(observability.AttrLLMModel, model),
				)

				observer.Counter(observability.MetricClientRequestCount).Add(ctx, 1,
					observability.String(observability.AttrStatus, "error"),
					observability.String(observability.AttrLLMModel, model),
				)

				return nil, err
			}

			recordObsSuccess(ctx, span, observer, response, elapsed, model)

			return response, nil
		}
	}
}

// recordObsSuccess writes the success-path metrics, span attributes and log
// entry, then ends the span.
func recordObsSuccess(
	ctx context.Context,
	span observability.Span,
	observer observability.Provider,
	response *ai.ChatResponse,
	elapsed time.Duration,
	model string,
) {
	observer.Histogram(observability.MetricClientRequestDuration).Record(ctx, elapsed.Seconds(),
		observability.String(observability.AttrLLMModel, model),
	)

	observer.Counter(observability.MetricClientRequestCount).Add(ctx, 1,
		observability.String(observability.AttrStatus, "success"),
		observability.String(observability.AttrLLMModel, model),
	)

	logAttrs := []observability.Attribute{
		observability.String(observability.AttrLLMModel, model),
		observability.String(observability.AttrLLMFinishReason, response.FinishReason),
		observability.Duration(observability.AttrDuration, elapsed),
	}

	if response.Usage != nil {
		observer.Counter(observability.MetricClientTokensTotal).Add(ctx, int64(response.Usage.TotalTokens),
			observability.String(observability.AttrLLMModel, model),
		)

		span.SetAttributes(
			observability.Int(observability.AttrLLMTokensTotal, response.Usage.TotalTokens),
			observability.Int(observability.AttrLLMTokensPrompt, response.Usage.PromptTokens),
			observability.Int(observability.AttrLLMTokensCompletion, response.Usage.CompletionTokens),
		)

		logAttrs = append(logAttrs,
			observability.Int(observability.AttrLLMTokensPrompt, response.Usage.PromptTokens),
			observability.Int(observability.AttrLLMTokensCompletion, response.Usage.CompletionTokens),
			observability.Int(observability.AttrLLMTokensTotal, response.Usage.TotalTokens),
		)
	}

	if response.Content != "" {
		logAttrs = append(logAttrs,
			observability.String(observability.AttrResponseContent, utils.TruncateString(response.Content, 100)),
		)
	}

	observer.Info(ctx, "llm send completed", logAttrs...)

	span.SetStatus(observability.StatusOK, "success")
	span.End()
}

// effectiveModel returns the request-level model when set, falling back to the
// client's configured default. Both being empty is valid.
func effectiveModel(requestModel, defaultModel string) string {
	if requestModel != "" {
		return requestModel
	}

	return defaultModel
}
