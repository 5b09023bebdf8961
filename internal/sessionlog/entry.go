package sessionlog

import (
	"encoding/json"
	"time"
)

// Category identifies the kind of event an Entry records.
type Category string

const (
	CategoryCommand         Category = "command"
	CategoryPrompt          Category = "prompt"
	CategoryProcessedPrompt Category = "processed_prompt"
	CategoryResponse        Category = "response"
	CategoryInfo            Category = "info"
	CategoryError           Category = "error"
	CategoryCliError        Category = "cli_error"
)

// Entry is one immutable, timestamped session log record. Fields that do
// not apply to the entry's category are omitted from the encoded line.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	SessionID string    `json:"session_id"`
	Category  Category  `json:"category"`

	// Actor names the actor the entry relates to, when any.
	Actor string `json:"actor,omitempty"`

	// Model is the resolved model for response entries.
	Model string `json:"model,omitempty"`

	// Command is the raw command line for command entries.
	Command string `json:"command,omitempty"`

	// Text carries prompt, processed prompt, response, or info text.
	Text string `json:"text,omitempty"`

	// Detail carries error detail for error and cli_error entries.
	Detail string `json:"detail,omitempty"`
}

// encode renders the entry as one self-describing JSON line.
func (e Entry) encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
