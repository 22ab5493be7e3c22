package middleware

import "errors"

// ErrRequestTimeout is returned by the timeout middleware when its own
// deadline, not the caller's, ended the request. The underlying context
// error is wrapped too, so errors.Is(err, context.DeadlineExceeded) holds.
var ErrRequestTimeout = errors.New("extractor: request timed out")
