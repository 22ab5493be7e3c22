// Package observability defines the interfaces and semantic conventions used
// for tracing, metrics and structured logging across the extractor.
//
// [Provider] composes [Tracer], [Metrics] and [Logger] into a single
// injectable dependency. The active [Provider] and [Span] travel through a
// [context.Context] via [ContextWithObserver] and [ContextWithSpan] and are
// read back with [ObserverFromContext] and [SpanFromContext]; both return nil
// when absent, so every call site must nil-check.
//
// semconv.go holds the attribute keys, span names and metric names shared by
// the extraction service, the client middleware and the Ollama provider.
package observability
