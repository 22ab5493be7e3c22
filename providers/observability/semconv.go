package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the name of the LLM provider (e.g., "ollama")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier (e.g., "qwen3:4b")
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMFinishReason is the reason the generation finished
	AttrLLMFinishReason = "llm.finish_reason"

	// AttrLLMTemperature is the sampling temperature used
	AttrLLMTemperature = "llm.temperature"

	// AttrLLMThink reports whether extended thinking was requested
	AttrLLMThink = "llm.think"
)

// --- Token Usage Attributes ---

const (
	AttrLLMTokensPrompt     = "llm.tokens.prompt"     // #nosec G101 -- Not a credential, token refers to LLM tokens
	AttrLLMTokensCompletion = "llm.tokens.completion" // #nosec G101 -- Not a credential, token refers to LLM tokens
	AttrLLMTokensTotal      = "llm.tokens.total"      // #nosec G101 -- Not a credential, token refers to LLM tokens
)

// --- Request/Response Attributes ---

const (
	// AttrRequestMessagesCount is the number of messages in the request
	AttrRequestMessagesCount = "request.messages_count"

	// AttrRequestPromptLength is the prompt length in bytes
	AttrRequestPromptLength = "request.prompt_length"

	// AttrResponseContent is the (truncated) response content from the LLM
	AttrResponseContent = "response.content"
)

// --- HTTP Attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- Extraction Attributes ---

const (
	// AttrExtractInput is the raw input string (truncated)
	AttrExtractInput = "extract.input"

	// AttrExtractCacheHit reports whether the result came from the memo cache
	AttrExtractCacheHit = "extract.cache_hit"

	// AttrExtractOutcome is one of "ok", "absent" or "error"
	AttrExtractOutcome = "extract.outcome"

	// AttrExtractCacheSize is the number of entries held by the memo cache
	AttrExtractCacheSize = "extract.cache_size"
)

// --- General Attributes ---

const (
	AttrError             = "error"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanClientSendMessage is the span name for client message sending
	SpanClientSendMessage = "client.send_message"

	// SpanExtract is the span name for a single Extract call
	SpanExtract = "extract.run"
)

// --- Event Names ---

const (
	EventLLMRequestStart = "llm.request.start"
	EventLLMRequestEnd   = "llm.request.end"
	EventCacheHit        = "extract.cache.hit"
	EventParseFailed     = "extract.parse.failed"
)

// --- Metric Names ---

const (
	MetricClientRequestCount     = "extractor.client.request.count"
	MetricClientRequestDuration  = "extractor.client.request.duration"
	MetricClientTokensTotal      = "extractor.client.tokens.total"
	MetricExtractCacheHits       = "extractor.extract.cache.hits"
	MetricExtractCacheMisses     = "extractor.extract.cache.misses"
	MetricExtractParseFailures   = "extractor.extract.parse.failures"
	MetricExtractInferenceErrors = "extractor.extract.inference.errors"
)
