// Package client sits between callers and an [ai.Provider]. It threads every
// request through an ordered middleware chain (timeouts, logging,
// observability) before the provider sees it.
//
// Build one with [New]:
//
//	c, err := client.New(provider,
//		client.WithObserver(observer),
//		client.WithMiddleware(middleware.NewTimeoutMiddleware(30*time.Second)),
//	)
//
// A Client is immutable after construction and safe for concurrent use.
package client
