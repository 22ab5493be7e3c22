package ollama

// generateRequest is the body of POST /api/generate.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system,omitempty"`
	Format  string          `json:"format,omitempty"`
	Stream  bool            `json:"stream"`
	Think   *bool           `json:"think,omitempty"`
	Options *requestOptions `json:"options,omitempty"`
}

// requestOptions carries the model parameters. EnableThinking mirrors Think
// for model templates (Qwen3) that read the flag from the options object.
type requestOptions struct {
	Temperature    *float32 `json:"temperature,omitempty"`
	TopP           *float32 `json:"top_p,omitempty"`
	Seed           *int     `json:"seed,omitempty"`
	NumPredict     int      `json:"num_predict,omitempty"`
	EnableThinking *bool    `json:"enable_thinking,omitempty"`
}

// generateResponse is the single JSON object returned when stream is false.
type generateResponse struct {
	Model           string `json:"model"`
	CreatedAt       string `json:"created_at"`
	Response        string `json:"response"`
	Thinking        string `json:"thinking,omitempty"`
	Done            bool   `json:"done"`
	DoneReason      string `json:"done_reason,omitempty"`
	TotalDuration   int64  `json:"total_duration,omitempty"`
	PromptEvalCount int    `json:"prompt_eval_count,omitempty"`
	EvalCount       int    `json:"eval_count,omitempty"`
}
