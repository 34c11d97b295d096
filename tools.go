package cerebras

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Tool declares a function the model may invoke.
type Tool struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes a callable function. Parameters is a JSON
// Schema for the function's argument object.
type FunctionDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"` // "function"
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the invoked function name and its JSON-encoded
// arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Tool choice modes.
const (
	ToolChoiceNone     = "none"
	ToolChoiceAuto     = "auto"
	ToolChoiceRequired = "required"
)

// ToolChoiceOption steers tool selection. Set Mode to one of the ToolChoice*
// constants, or Function to force a specific function; Function takes
// precedence. The wire format is a bare string for modes and an object for a
// forced function.
type ToolChoiceOption struct {
	Mode     string
	Function string
}

// MarshalJSON emits the mode string or the forced-function object.
func (t ToolChoiceOption) MarshalJSON() ([]byte, error) {
	if t.Function != "" {
		return json.Marshal(map[string]any{
			"type":     "function",
			"function": map[string]string{"name": t.Function},
		})
	}
	if t.Mode == "" {
		return json.Marshal(ToolChoiceAuto)
	}
	return json.Marshal(t.Mode)
}

// UnmarshalJSON accepts either form.
func (t *ToolChoiceOption) UnmarshalJSON(data []byte) error {
	var mode string
	if err := json.Unmarshal(data, &mode); err == nil {
		*t = ToolChoiceOption{Mode: mode}
		return nil
	}
	var obj struct {
		Function struct {
			Name string `json:"name"`
		} `json:"function"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("tool_choice: expected string or object: %w", err)
	}
	*t = ToolChoiceOption{Function: obj.Function.Name}
	return nil
}

// SchemaFor reflects a Go value into a JSON Schema suitable for
// FunctionDefinition.Parameters. Field names and constraints follow the
// value's json and jsonschema struct tags.
func SchemaFor(v any) (json.RawMessage, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema, err := json.Marshal(r.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("reflect schema: %w", err)
	}
	return schema, nil
}

// NewFunctionTool builds a function tool whose parameter schema is reflected
// from params. Pass a pointer to the argument struct the function expects.
func NewFunctionTool(name, description string, params any) (Tool, error) {
	tool := Tool{
		Type: "function",
		Function: FunctionDefinition{
			Name:        name,
			Description: description,
		},
	}
	if params != nil {
		schema, err := SchemaFor(params)
		if err != nil {
			return Tool{}, err
		}
		tool.Function.Parameters = schema
	}
	return tool, nil
}
