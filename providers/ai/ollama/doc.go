// Package ollama implements the [ai.Provider] interface for a locally hosted
// Ollama server, using the non-streaming /api/generate endpoint.
//
// [New] reads OLLAMA_HOST from the environment (default
// http://localhost:11434). Use [OllamaProvider.WithBaseURL] and
// [OllamaProvider.WithHttpClient] to override the endpoint and transport; any
// timeout policy belongs on the HTTP client or on the caller's context.
package ollama
