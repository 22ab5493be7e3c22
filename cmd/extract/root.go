package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/leofalp/extractor/core/client"
	"github.com/leofalp/extractor/core/client/middleware"
	"github.com/leofalp/extractor/core/extract"
	"github.com/leofalp/extractor/internal/config"
	"github.com/leofalp/extractor/internal/utils"
	"github.com/leofalp/extractor/providers/ai/ollama"
	slogobs "github.com/leofalp/extractor/providers/observability/slog"
)

// sampleInputs run when no sentences are given. The first one is repeated to
// show a cache hit.
var sampleInputs = []string{
	"张三在昨天下午两点充值了500元",
	"李四在昨天下午两点充值了600元",
	"张三在昨天下午两点充值了500元",
}

type flags struct {
	configPath    string
	model         string
	host          string
	timeout       time.Duration
	cacheSize     int
	retryFailures bool
	repairJSON    bool
	jsonMode      bool
	logLevel      string
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "extract [text...]",
		Short: "Extract user, action and amount from sentences with a local model",
		Long: `extract sends each sentence to an Ollama model, asks for a
{"user", "action", "amount"} JSON object and prints what came back.
Answers are cached in memory, so repeating a sentence is instant.

Examples:
  # Run the built-in samples
  extract

  # Extract your own sentences
  extract "王五昨天转账了300元" "赵六今天消费了88元"

  # Use another model and a remote server
  extract --model gemma3:4b --host http://gpu-box:11434 "..."`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = sampleInputs
			}
			return run(cmd, cfg, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&f.model, "model", config.DefaultModel, "model identifier")
	fs.StringVar(&f.host, "host", "", "Ollama base URL (default $OLLAMA_HOST or "+config.DefaultHost+")")
	fs.DurationVar(&f.timeout, "timeout", config.DefaultTimeout, "per-request timeout, 0 disables it")
	fs.IntVar(&f.cacheSize, "cache-size", config.DefaultCacheSize, "number of sentences remembered")
	fs.BoolVar(&f.retryFailures, "retry-failures", false, "ask again for sentences whose reply could not be parsed")
	fs.BoolVar(&f.repairJSON, "repair-json", false, "try to repair malformed JSON replies")
	fs.BoolVar(&f.jsonMode, "json-mode", false, "ask the server to constrain replies to JSON")
	fs.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "trace, debug, info, warn or error")

	return cmd
}

// loadConfig reads the file and environment, then applies explicitly set flags.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("model") {
		cfg.Model = f.model
	}
	if changed("host") {
		cfg.Host = f.host
	}
	if changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if changed("cache-size") {
		cfg.CacheSize = f.cacheSize
	}
	if changed("retry-failures") {
		cfg.RetryFailures = f.retryFailures
	}
	if changed("repair-json") {
		cfg.RepairJSON = f.repairJSON
	}
	if changed("json-mode") {
		cfg.JSONMode = f.jsonMode
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func newExtractor(cfg *config.Config, logger *slog.Logger) (*extract.Extractor, error) {
	observer := slogobs.New(logger)

	provider := ollama.New().WithDefaultModel(cfg.Model).WithBaseURL(cfg.Host)

	c, err := client.New(provider,
		client.WithObserver(observer),
		client.WithDefaultModel(cfg.Model),
		client.WithMiddleware(
			middleware.NewTimeoutMiddleware(cfg.Timeout),
			middleware.NewLoggingMiddleware(logger, middleware.LogLevelStandard),
		),
	)
	if err != nil {
		return nil, err
	}

	return extract.New(c,
		extract.WithModel(cfg.Model),
		extract.WithCacheSize(cfg.CacheSize),
		extract.WithCacheFailures(!cfg.RetryFailures),
		extract.WithRepairJSON(cfg.RepairJSON),
		extract.WithJSONMode(cfg.JSONMode),
		extract.WithLogger(logger),
		extract.WithObserver(observer),
	)
}

func run(cmd *cobra.Command, cfg *config.Config, inputs []string) error {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: slogobs.ParseLogLevel(cfg.LogLevel),
	}))

	ext, err := newExtractor(cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "model %s at %s\n", cfg.Model, cfg.Host)

	firstCall := make(map[string]time.Duration, len(inputs))
	for i, input := range inputs {
		hit := ext.Cached(input)

		timer := utils.NewTimer()
		result, err := ext.Extract(cmd.Context(), input)
		elapsed := timer.Stop()
		if err != nil {
			return fmt.Errorf("extract %q: %w", input, err)
		}

		printResult(out, i+1, input, result, elapsed, hit)

		if baseline, seen := firstCall[input]; seen && hit {
			printSpeedup(out, baseline, elapsed)
		} else if !seen {
			firstCall[input] = elapsed
		}
	}

	stats := ext.Stats()
	fmt.Fprintf(out, "\ncache: %d/%d entries, %d hits, %d misses\n", stats.Len, stats.Capacity, stats.Hits, stats.Misses)
	return nil
}

func printResult(out io.Writer, n int, input string, result *extract.Result, elapsed time.Duration, hit bool) {
	source := "model"
	if hit {
		source = "cache"
	}

	rendered := "no result (reply was not a JSON object)"
	if result != nil {
		rendered = utils.JSONToString(result)
	}

	fmt.Fprintf(out, "\n[%d] %s\n    result:  %s\n    elapsed: %s (%s)\n", n, input, rendered, elapsed.Round(time.Microsecond), source)
}

func printSpeedup(out io.Writer, baseline, current time.Duration) {
	if factor, ok := utils.Speedup(baseline, current); ok {
		fmt.Fprintf(out, "    speed-up: %.0fx\n", factor)
		return
	}
	fmt.Fprintln(out, "    speed-up: cache hit, effectively instant")
}
