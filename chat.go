package cerebras

import (
	"encoding/json"
	"fmt"
)

// Role identifies the author of a chat message.
type Role string

// Standard chat roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ChatMessage is one turn in a chat conversation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Name identifies the author for tool results or named participants.
	Name string `json:"name,omitempty"`

	// ToolCalls carries tool invocations on assistant messages.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID links a tool-role message to the call it answers.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// SystemMessage creates a system-role message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage creates a user-role message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// AssistantMessage creates an assistant-role message.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// ToolMessage creates a tool-role message answering the given tool call.
func ToolMessage(content, toolCallID string) ChatMessage {
	return ChatMessage{Role: RoleTool, Content: content, ToolCallID: toolCallID}
}

// ChatCompletionRequest is the payload for the /chat/completions endpoint.
type ChatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`

	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	Seed        *int64   `json:"seed,omitempty"`
	User        string   `json:"user,omitempty"`

	Stream bool          `json:"stream,omitempty"`
	Stop   StopSequences `json:"stop,omitempty"`

	ResponseFormat *ResponseFormat  `json:"response_format,omitempty"`
	Tools          []Tool           `json:"tools,omitempty"`
	ToolChoice     *ToolChoiceOption `json:"tool_choice,omitempty"`
}

// StopSequences holds up to four stop sequences. The wire format is a bare
// string when exactly one sequence is set, an array otherwise.
type StopSequences []string

// MarshalJSON emits a single sequence as a JSON string.
func (s StopSequences) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

// UnmarshalJSON accepts either a string or an array of strings.
func (s *StopSequences) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StopSequences{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("stop: expected string or array of strings: %w", err)
	}
	*s = StopSequences(many)
	return nil
}

// ResponseFormat requests structured model output.
type ResponseFormat struct {
	// Type is "text", "json_object" or "json_schema".
	Type string `json:"type"`

	JSONSchema *JSONSchemaFormat `json:"json_schema,omitempty"`
}

// JSONSchemaFormat constrains output to a named JSON schema.
type JSONSchemaFormat struct {
	Name   string          `json:"name,omitempty"`
	Schema json.RawMessage `json:"schema,omitempty"`
	Strict bool            `json:"strict,omitempty"`
}

// FinishReason reports why a chat completion stopped generating. The
// vocabulary is closed: decoding any other wire value fails.
type FinishReason string

// Chat finish reasons.
const (
	FinishStop          FinishReason = "stop"
	FinishLength        FinishReason = "length"
	FinishToolCalls     FinishReason = "tool_calls"
	FinishContentFilter FinishReason = "content_filter"
)

// UnmarshalJSON rejects values outside the closed vocabulary.
func (r *FinishReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch v := FinishReason(s); v {
	case FinishStop, FinishLength, FinishToolCalls, FinishContentFilter:
		*r = v
		return nil
	default:
		return fmt.Errorf("unknown finish_reason %q", s)
	}
}

// Text maps a chat finish reason onto the plain-text completion vocabulary.
// Tool invocation has no text-completion counterpart and reports an error.
func (r FinishReason) Text() (TextFinishReason, error) {
	switch r {
	case FinishStop:
		return TextFinishStop, nil
	case FinishLength:
		return TextFinishLength, nil
	case FinishContentFilter:
		return TextFinishContentFilter, nil
	case FinishToolCalls:
		return "", fmt.Errorf("finish_reason %q has no text-completion equivalent", r)
	default:
		return "", fmt.Errorf("unknown finish_reason %q", r)
	}
}

// ChatCompletion is the non-streaming chat completion response, either
// returned directly by the API or folded from a stream by Collect.
type ChatCompletion struct {
	ID                string       `json:"id"`
	Object            string       `json:"object"` // "chat.completion"
	Created           int64        `json:"created"`
	Model             string       `json:"model"`
	SystemFingerprint string       `json:"system_fingerprint,omitempty"`
	Choices           []ChatChoice `json:"choices"`
	Usage             *Usage       `json:"usage,omitempty"`
	TimeInfo          *TimeInfo    `json:"time_info,omitempty"`
}

// ChatChoice is one generated alternative in a chat completion.
type ChatChoice struct {
	Index        int          `json:"index"`
	Message      ChatMessage  `json:"message"`
	FinishReason FinishReason `json:"finish_reason,omitempty"`
}

// Content returns the text of the first choice, or "" when absent.
func (c *ChatCompletion) Content() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Message.Content
}

// Usage tracks token consumption for one request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// TimeInfo reports Cerebras server-side timing, all durations in seconds.
type TimeInfo struct {
	QueueTime      float64 `json:"queue_time,omitempty"`
	PromptTime     float64 `json:"prompt_time,omitempty"`
	CompletionTime float64 `json:"completion_time,omitempty"`
	TotalTime      float64 `json:"total_time,omitempty"`
	Created        int64   `json:"created,omitempty"`
}
