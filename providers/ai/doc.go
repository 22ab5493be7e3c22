// Package ai defines the provider-agnostic request and response types shared
// by inference endpoint clients, keeping callers such as the extraction
// service decoupled from any wire format.
//
// The central interface is [Provider]. Requests flow through [ChatRequest]
// (with decoding settings in [GenerationConfig]) and responses come back as
// [ChatResponse].
package ai
