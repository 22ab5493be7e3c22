// Package memo provides a bounded, least-recently-used memoization cache.
//
// A [Cache] is constructed explicitly and owned by whoever needs it; there is
// no package-level state. It is safe for concurrent use and keeps hit, miss
// and eviction counts that can be read with [Cache.Stats].
package memo
