package ai

import (
	"context"
	"net/http"
)

// Provider is the interface every inference endpoint client satisfies. It
// covers a single request/response round trip; retries, pooling and routing
// are left to the implementation.
type Provider interface {
	// SendMessage sends a request to the endpoint and returns the completed
	// response. Transport failures, non-2xx answers and undecodable bodies
	// are returned as errors.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// IsStopMessage reports whether the model ended its reply on its own.
	// False means the reply was cut off (length limit, model unloaded) or is
	// still in progress, so its content may be incomplete.
	IsStopMessage(message *ChatResponse) bool

	// WithAPIKey sets the API key used for authenticating requests.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHttpClient sets the HTTP client used for outbound requests.
	WithHttpClient(httpClient *http.Client) Provider
}
