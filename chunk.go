package cerebras

// Streaming chunk shapes. One chunk arrives per server-sent event; every field
// except the choice list is optional on the wire, and an absent field means
// "no new information", not "no value". Delta content is therefore a *string
// so an empty fragment can be told apart from a missing one.

// ChatCompletionChunk is one incremental unit of a streamed chat completion.
type ChatCompletionChunk struct {
	ID                string        `json:"id,omitempty"`
	Object            string        `json:"object,omitempty"` // "chat.completion.chunk"
	Created           int64         `json:"created,omitempty"`
	Model             string        `json:"model,omitempty"`
	SystemFingerprint string        `json:"system_fingerprint,omitempty"`
	Choices           []ChunkChoice `json:"choices,omitempty"`
	Usage             *Usage        `json:"usage,omitempty"`
}

// ChunkChoice is one slot's delta within a chat chunk. FinishReason is nil on
// intermediate chunks and set exactly once, on the slot's final chunk.
type ChunkChoice struct {
	Index        int           `json:"index"`
	Delta        ChunkDelta    `json:"delta"`
	FinishReason *FinishReason `json:"finish_reason,omitempty"`
}

// ChunkDelta is the incremental content of one chat chunk choice.
type ChunkDelta struct {
	Role      Role       `json:"role,omitempty"`
	Content   *string    `json:"content,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

func (c *ChatCompletionChunk) header() (id string, created int64, model string) {
	return c.ID, c.Created, c.Model
}

func (c *ChatCompletionChunk) tokenUsage() *Usage {
	return c.Usage
}

func (c *ChatCompletionChunk) fragments() []fragment {
	frags := make([]fragment, 0, len(c.Choices))
	for _, ch := range c.Choices {
		frags = append(frags, fragment{
			index:  ch.Index,
			text:   ch.Delta.Content,
			finish: ch.FinishReason,
		})
	}
	return frags
}

// CompletionChunk is one incremental unit of a streamed text completion.
type CompletionChunk struct {
	ID      string                  `json:"id,omitempty"`
	Object  string                  `json:"object,omitempty"` // "text_completion"
	Created int64                   `json:"created,omitempty"`
	Model   string                  `json:"model,omitempty"`
	Choices []CompletionChunkChoice `json:"choices,omitempty"`
	Usage   *Usage                  `json:"usage,omitempty"`
}

// CompletionChunkChoice is one slot's delta within a text completion chunk.
type CompletionChunkChoice struct {
	Index        int               `json:"index"`
	Text         *string           `json:"text,omitempty"`
	FinishReason *TextFinishReason `json:"finish_reason,omitempty"`
}

func (c *CompletionChunk) header() (id string, created int64, model string) {
	return c.ID, c.Created, c.Model
}

func (c *CompletionChunk) tokenUsage() *Usage {
	return c.Usage
}

func (c *CompletionChunk) fragments() []fragment {
	frags := make([]fragment, 0, len(c.Choices))
	for _, ch := range c.Choices {
		f := fragment{index: ch.Index, text: ch.Text}
		if ch.FinishReason != nil {
			r := ch.FinishReason.Chat()
			f.finish = &r
		}
		frags = append(frags, f)
	}
	return frags
}
