package ai

/*
	##### PROVIDER INPUT #####
*/

// ChatRequest is a single generation request. Prompt is the raw completion
// prompt; Messages is used by chat-style callers and folded into the prompt
// by providers that only expose a completion endpoint.
type ChatRequest struct {
	Model            string            `json:"model,omitempty"`
	Prompt           string            `json:"prompt,omitempty"`
	Messages         []Message         `json:"messages,omitempty"`
	SystemPrompt     string            `json:"system_prompt,omitempty"`
	ResponseFormat   *ResponseFormat   `json:"response_format,omitempty"`
	GenerationConfig *GenerationConfig `json:"generation_config,omitempty"`
}

// Message represents a single message in a conversation
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`
}

// GenerationConfig holds decoding settings. Pointer fields distinguish "not
// set" from an explicit zero: Temperature 0 means greedy decoding and must
// reach the endpoint rather than be dropped as an empty value.
type GenerationConfig struct {
	Temperature *float32 `json:"temperature,omitempty"` // Sampling temperature; 0 => deterministic.
	TopP        *float32 `json:"top_p,omitempty"`
	Seed        *int     `json:"seed,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Think       *bool    `json:"think,omitempty"` // Extended thinking / chain-of-thought; false disables it.
}

// ResponseFormat asks the endpoint to constrain its output.
type ResponseFormat struct {
	Type string `json:"type,omitempty"` // "text" or "json_object"
}

/*
	##### PROVIDER OUTPUT #####
*/

type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse represents the response from a completion
type ChatResponse struct {
	Id           string `json:"id,omitempty"`
	Model        string `json:"model"`
	Created      int64  `json:"created,omitempty"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`

	// Reasoning holds thinking output the model produced separately from Content.
	Reasoning string `json:"reasoning,omitempty"`
}

/*
	##### ENUMS #####
*/

// MessageRole represents the role of a message; compatible with string
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// PromptText returns the text to send to a completion-style endpoint: Prompt
// when set, otherwise the user messages joined by blank lines.
func (r ChatRequest) PromptText() string {
	if r.Prompt != "" {
		return r.Prompt
	}
	var out string
	for _, m := range r.Messages {
		if m.Role != RoleUser || m.Content == "" {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += m.Content
	}
	return out
}
