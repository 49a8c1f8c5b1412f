package models

// PromptRequest is the body accepted by POST /generate. Prompt is a pointer so
// that a missing or null field fails binding while "" is still accepted.
type PromptRequest struct {
	Prompt *string `json:"prompt" binding:"required"`
}

// GenerateResponse is the body returned by POST /generate.
type GenerateResponse struct {
	Response string `json:"response"`
}

// PromptInput is the input half of a logged interaction.
type PromptInput struct {
	Prompt string `json:"prompt"`
}

// LogEntry is one line of the interaction log. Entries are append-only.
type LogEntry struct {
	Timestamp string           `json:"timestamp"`
	Input     PromptInput      `json:"input"`
	Output    GenerateResponse `json:"output"`
}
