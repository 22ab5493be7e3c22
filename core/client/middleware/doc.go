// Package middleware provides built-in middlewares for the extractor client.
// Each constructor returns a [client.Middleware] ready to be passed to
// [client.WithMiddleware].
//
// # Available Middleware
//
//   - [NewTimeoutMiddleware]: adds a per-request deadline via
//     context.WithTimeout, so a stalled model call cannot block the caller
//     indefinitely.
//
//   - [NewLoggingMiddleware]: emits slog entries before and after every
//     provider call, at one of three verbosity levels.
//
// # Usage
//
//	c, err := client.New(provider,
//	    client.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(30*time.Second),
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	    ),
//	)
//
// Middlewares execute outermost first. In the example above a request travels
//
//	Timeout → Logging → Provider
//
// and the response travels back in reverse.
package middleware
