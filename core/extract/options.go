package extract

import (
	"log/slog"

	"github.com/leofalp/extractor/core/memo"
	"github.com/leofalp/extractor/providers/observability"
)

// DefaultModel is the model asked when no other is configured.
const DefaultModel = "qwen3:4b"

// Options holds the Extractor settings changed by the With* functions.
type Options struct {
	Model         string
	CacheSize     int
	CacheFailures bool
	RepairJSON    bool
	JSONMode      bool
	Logger        *slog.Logger
	Observer      observability.Provider
}

// Option configures an Extractor.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Model:         DefaultModel,
		CacheSize:     memo.DefaultSize,
		CacheFailures: true,
	}
}

// WithModel sets the model identifier sent with every request.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithCacheSize sets how many distinct inputs are remembered.
func WithCacheSize(size int) Option {
	return func(o *Options) {
		o.CacheSize = size
	}
}

// WithCacheFailures controls whether an unparseable reply is remembered.
// When enabled (the default) a failed input keeps returning nil without
// asking the model again until it is evicted. When disabled the next call
// with the same input asks again.
func WithCacheFailures(enabled bool) Option {
	return func(o *Options) {
		o.CacheFailures = enabled
	}
}

// WithRepairJSON runs replies that fail strict decoding through jsonrepair
// before giving up on them.
func WithRepairJSON(enabled bool) Option {
	return func(o *Options) {
		o.RepairJSON = enabled
	}
}

// WithJSONMode asks the endpoint to constrain its reply to JSON, on top of
// the prompt instruction.
func WithJSONMode(enabled bool) Option {
	return func(o *Options) {
		o.JSONMode = enabled
	}
}

// WithLogger sets the logger used for parse diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithObserver enables a span per extraction plus cache and failure counters.
func WithObserver(observer observability.Provider) Option {
	return func(o *Options) {
		o.Observer = observer
	}
}
