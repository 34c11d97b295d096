package cerebras

import (
	"encoding/json"
	"strings"
)

// ChatCompletionBuilder assembles a ChatCompletionRequest fluently.
//
//	req := cerebras.NewChatCompletion(cerebras.ModelLlama3_1_8B).
//		SystemMessage("You are a helpful assistant").
//		UserMessage("What is the capital of France?").
//		Temperature(0.7).
//		MaxTokens(100).
//		Build()
type ChatCompletionBuilder struct {
	req ChatCompletionRequest
}

// NewChatCompletion starts a chat completion request for the given model.
func NewChatCompletion(model string) *ChatCompletionBuilder {
	return &ChatCompletionBuilder{req: ChatCompletionRequest{Model: model}}
}

// Message appends a message to the conversation.
func (b *ChatCompletionBuilder) Message(m ChatMessage) *ChatCompletionBuilder {
	b.req.Messages = append(b.req.Messages, m)
	return b
}

// Messages appends multiple messages to the conversation.
func (b *ChatCompletionBuilder) Messages(ms ...ChatMessage) *ChatCompletionBuilder {
	b.req.Messages = append(b.req.Messages, ms...)
	return b
}

// SystemMessage appends a system message.
func (b *ChatCompletionBuilder) SystemMessage(content string) *ChatCompletionBuilder {
	return b.Message(SystemMessage(content))
}

// UserMessage appends a user message.
func (b *ChatCompletionBuilder) UserMessage(content string) *ChatCompletionBuilder {
	return b.Message(UserMessage(content))
}

// AssistantMessage appends an assistant message.
func (b *ChatCompletionBuilder) AssistantMessage(content string) *ChatCompletionBuilder {
	return b.Message(AssistantMessage(content))
}

// MaxTokens caps the response length.
func (b *ChatCompletionBuilder) MaxTokens(n int) *ChatCompletionBuilder {
	b.req.MaxTokens = n
	return b
}

// Temperature sets the sampling temperature (0.0 to 2.0).
func (b *ChatCompletionBuilder) Temperature(t float64) *ChatCompletionBuilder {
	b.req.Temperature = &t
	return b
}

// TopP sets the nucleus sampling parameter (0.0 to 1.0).
func (b *ChatCompletionBuilder) TopP(p float64) *ChatCompletionBuilder {
	b.req.TopP = &p
	return b
}

// Seed fixes the sampling seed for reproducible output.
func (b *ChatCompletionBuilder) Seed(s int64) *ChatCompletionBuilder {
	b.req.Seed = &s
	return b
}

// User tags the request with an end-user identifier.
func (b *ChatCompletionBuilder) User(id string) *ChatCompletionBuilder {
	b.req.User = id
	return b
}

// Stream enables or disables streaming.
func (b *ChatCompletionBuilder) Stream(on bool) *ChatCompletionBuilder {
	b.req.Stream = on
	return b
}

// Stop replaces the stop sequences.
func (b *ChatCompletionBuilder) Stop(sequences ...string) *ChatCompletionBuilder {
	b.req.Stop = sequences
	return b
}

// StopSequence appends a single stop sequence.
func (b *ChatCompletionBuilder) StopSequence(s string) *ChatCompletionBuilder {
	b.req.Stop = append(b.req.Stop, s)
	return b
}

// ResponseFormat sets the response format.
func (b *ChatCompletionBuilder) ResponseFormat(f ResponseFormat) *ChatCompletionBuilder {
	b.req.ResponseFormat = &f
	return b
}

// JSONSchema constrains output to the named JSON schema.
func (b *ChatCompletionBuilder) JSONSchema(name string, schema json.RawMessage, strict bool) *ChatCompletionBuilder {
	b.req.ResponseFormat = &ResponseFormat{
		Type: "json_schema",
		JSONSchema: &JSONSchemaFormat{
			Name:   name,
			Schema: schema,
			Strict: strict,
		},
	}
	return b
}

// Tools replaces the available tool set.
func (b *ChatCompletionBuilder) Tools(tools ...Tool) *ChatCompletionBuilder {
	b.req.Tools = tools
	return b
}

// Tool appends a single tool.
func (b *ChatCompletionBuilder) Tool(t Tool) *ChatCompletionBuilder {
	b.req.Tools = append(b.req.Tools, t)
	return b
}

// ToolChoice steers tool selection.
func (b *ChatCompletionBuilder) ToolChoice(choice ToolChoiceOption) *ChatCompletionBuilder {
	b.req.ToolChoice = &choice
	return b
}

// Build returns the assembled request.
func (b *ChatCompletionBuilder) Build() ChatCompletionRequest {
	return b.req
}

// CompletionBuilder assembles a CompletionRequest fluently.
type CompletionBuilder struct {
	req CompletionRequest
}

// NewCompletion starts a text completion request for the given model.
func NewCompletion(model string) *CompletionBuilder {
	return &CompletionBuilder{req: CompletionRequest{Model: model}}
}

// Prompt sets the prompt text.
func (b *CompletionBuilder) Prompt(p string) *CompletionBuilder {
	b.req.Prompt = Prompt(p)
	return b
}

// Prompts joins multiple prompts with newlines.
func (b *CompletionBuilder) Prompts(ps ...string) *CompletionBuilder {
	b.req.Prompt = Prompt(strings.Join(ps, "\n"))
	return b
}

// MaxTokens caps the response length.
func (b *CompletionBuilder) MaxTokens(n int) *CompletionBuilder {
	b.req.MaxTokens = n
	return b
}

// Temperature sets the sampling temperature (0.0 to 2.0).
func (b *CompletionBuilder) Temperature(t float64) *CompletionBuilder {
	b.req.Temperature = &t
	return b
}

// TopP sets the nucleus sampling parameter (0.0 to 1.0).
func (b *CompletionBuilder) TopP(p float64) *CompletionBuilder {
	b.req.TopP = &p
	return b
}

// Stream enables or disables streaming.
func (b *CompletionBuilder) Stream(on bool) *CompletionBuilder {
	b.req.Stream = on
	return b
}

// Stop replaces the stop sequences.
func (b *CompletionBuilder) Stop(sequences ...string) *CompletionBuilder {
	b.req.Stop = sequences
	return b
}

// StopSequence appends a single stop sequence.
func (b *CompletionBuilder) StopSequence(s string) *CompletionBuilder {
	b.req.Stop = append(b.req.Stop, s)
	return b
}

// Echo includes the prompt in the completion text.
func (b *CompletionBuilder) Echo(on bool) *CompletionBuilder {
	b.req.Echo = on
	return b
}

// ReturnRawTokens returns raw token ids instead of text.
func (b *CompletionBuilder) ReturnRawTokens(on bool) *CompletionBuilder {
	b.req.ReturnRawTokens = on
	return b
}

// Build returns the assembled request.
func (b *CompletionBuilder) Build() CompletionRequest {
	return b.req
}
