package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/leofalp/extractor/providers/ai"
	"github.com/leofalp/extractor/providers/observability"
)

// ErrNilProvider is returned by New when no provider is given.
var ErrNilProvider = errors.New("client: provider is required")

// ClientOptions collects the settings applied by the With* option functions.
type ClientOptions struct {
	// Middlewares run outermost first, after the observability middleware
	// when an observer is set.
	Middlewares []Middleware

	// Observer enables spans, metrics and logs for every request.
	Observer observability.Provider

	// DefaultModel labels telemetry for requests that leave Model empty.
	DefaultModel string
}

// WithMiddleware appends middlewares to the chain.
func WithMiddleware(middlewares ...Middleware) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Middlewares = append(o.Middlewares, middlewares...)
	}
}

// WithObserver installs the observability middleware as the outermost wrapper.
func WithObserver(observer observability.Provider) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Observer = observer
	}
}

// WithDefaultModel sets the model name used in telemetry when a request has none.
func WithDefaultModel(model string) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.DefaultModel = model
	}
}

// Client sends chat requests to a provider through a middleware chain.
type Client struct {
	provider ai.Provider
	observer observability.Provider
	send     SendFunc
}

// New builds a Client around provider.
func New(provider ai.Provider, opts ...func(*ClientOptions)) (*Client, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	options := ClientOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	middlewares := make([]Middleware, 0, len(options.Middlewares)+1)
	if options.Observer != nil {
		middlewares = append(middlewares, NewObservabilityMiddleware(options.Observer, options.DefaultModel))
	}
	for i, mw := range options.Middlewares {
		if mw == nil {
			return nil, fmt.Errorf("client: middleware at index %d is nil", i)
		}
		middlewares = append(middlewares, mw)
	}

	return &Client{
		provider: provider,
		observer: options.Observer,
		send:     buildSendChain(provider, middlewares),
	}, nil
}

// SendMessage runs request through the middleware chain and returns the
// provider's response.
func (c *Client) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.send(ctx, request)
}

// IsStopMessage reports whether the provider considers response complete.
func (c *Client) IsStopMessage(response *ai.ChatResponse) bool {
	return c.provider.IsStopMessage(response)
}

// Provider returns the underlying provider.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// Observer returns the configured observer, or nil.
func (c *Client) Observer() observability.Provider {
	return c.observer
}
