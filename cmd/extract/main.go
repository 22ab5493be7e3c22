// Command extract asks a local Ollama model to pull user, action and amount
// out of free-form sentences, caching each answer in memory.
//
// Usage:
//
//	extract                                  # run the built-in samples
//	extract "王五昨天转账了300元"               # extract the given sentences
//	extract --model gemma3:4b --timeout 30s "..."
package main

import (
	"context"
	"os"
	"os/signal"

	_ "github.com/joho/godotenv/autoload"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
