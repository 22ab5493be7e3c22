// Package utils provides shared low-level helpers for the extractor
// internals: a synchronous JSON-over-HTTP helper for talking to inference
// endpoints, rune-safe string truncation for log output, a generic pointer
// helper and a small elapsed-time timer.
//
// Key entry points: [DoPostSync] for JSON round-trips, [Ptr] for converting
// values to pointers, [Timer] and [Speedup] for measuring latency.
package utils
