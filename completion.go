package cerebras

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt is the input text for a plain completion. The wire format accepts a
// bare string or an array of strings; multiple prompts are joined with
// newlines, matching the request builder behavior.
type Prompt string

// UnmarshalJSON accepts either a string or an array of strings.
func (p *Prompt) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*p = Prompt(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("prompt: expected string or array of strings: %w", err)
	}
	*p = Prompt(strings.Join(many, "\n"))
	return nil
}

// CompletionRequest is the payload for the /completions endpoint.
type CompletionRequest struct {
	Model  string `json:"model"`
	Prompt Prompt `json:"prompt"`

	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`

	Stream bool          `json:"stream,omitempty"`
	Stop   StopSequences `json:"stop,omitempty"`

	// Echo includes the prompt in the completion text.
	Echo bool `json:"echo,omitempty"`

	// ReturnRawTokens returns raw token ids instead of text.
	ReturnRawTokens bool `json:"return_raw_tokens,omitempty"`
}

// TextFinishReason reports why a plain completion stopped generating. Text
// completions cannot invoke tools, so the vocabulary is one variant narrower
// than the chat vocabulary. Like FinishReason it is closed: unknown wire
// values are decode errors.
type TextFinishReason string

// Text completion finish reasons.
const (
	TextFinishStop          TextFinishReason = "stop"
	TextFinishLength        TextFinishReason = "length"
	TextFinishContentFilter TextFinishReason = "content_filter"
)

// UnmarshalJSON rejects values outside the closed vocabulary.
func (r *TextFinishReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch v := TextFinishReason(s); v {
	case TextFinishStop, TextFinishLength, TextFinishContentFilter:
		*r = v
		return nil
	default:
		return fmt.Errorf("unknown finish_reason %q", s)
	}
}

// Chat maps a text finish reason onto the chat vocabulary. The mapping is
// total: every text variant has a chat counterpart.
func (r TextFinishReason) Chat() FinishReason {
	switch r {
	case TextFinishLength:
		return FinishLength
	case TextFinishContentFilter:
		return FinishContentFilter
	default:
		return FinishStop
	}
}

// Completion is the non-streaming text completion response, either returned
// directly by the API or folded from a stream by Collect.
type Completion struct {
	ID                string             `json:"id"`
	Object            string             `json:"object"` // "text_completion"
	Created           int64              `json:"created"`
	Model             string             `json:"model"`
	SystemFingerprint string             `json:"system_fingerprint,omitempty"`
	Choices           []CompletionChoice `json:"choices"`
	Usage             *Usage             `json:"usage,omitempty"`
	TimeInfo          *TimeInfo          `json:"time_info,omitempty"`
}

// CompletionChoice is one generated alternative in a text completion.
type CompletionChoice struct {
	Index        int              `json:"index"`
	Text         string           `json:"text"`
	FinishReason TextFinishReason `json:"finish_reason,omitempty"`
}

// Text returns the text of the first choice, or "" when absent.
func (c *Completion) Text() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Text
}
