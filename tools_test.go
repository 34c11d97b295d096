package cerebras_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerebras "github.com/waferscale/cerebras-go"
)

func TestToolChoiceOption_MarshalModes(t *testing.T) {
	auto, err := json.Marshal(cerebras.ToolChoiceOption{Mode: cerebras.ToolChoiceAuto})
	require.NoError(t, err)
	assert.JSONEq(t, `"auto"`, string(auto))

	none, err := json.Marshal(cerebras.ToolChoiceOption{Mode: cerebras.ToolChoiceNone})
	require.NoError(t, err)
	assert.JSONEq(t, `"none"`, string(none))

	// Zero value defaults to auto.
	zero, err := json.Marshal(cerebras.ToolChoiceOption{})
	require.NoError(t, err)
	assert.JSONEq(t, `"auto"`, string(zero))
}

func TestToolChoiceOption_MarshalForcedFunction(t *testing.T) {
	forced, err := json.Marshal(cerebras.ToolChoiceOption{Function: "get_weather"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"function","function":{"name":"get_weather"}}`, string(forced))
}

func TestToolChoiceOption_Unmarshal(t *testing.T) {
	var c cerebras.ToolChoiceOption
	require.NoError(t, json.Unmarshal([]byte(`"required"`), &c))
	assert.Equal(t, cerebras.ToolChoiceRequired, c.Mode)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"function","function":{"name":"lookup"}}`), &c))
	assert.Equal(t, "lookup", c.Function)

	assert.Error(t, json.Unmarshal([]byte(`7`), &c))
}

type weatherArgs struct {
	City string `json:"city" jsonschema:"required,description=City name"`
	Unit string `json:"unit,omitempty" jsonschema:"enum=celsius,enum=fahrenheit"`
}

func TestSchemaFor(t *testing.T) {
	raw, err := cerebras.SchemaFor(&weatherArgs{})
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "city")
	assert.Contains(t, props, "unit")
}

func TestNewFunctionTool(t *testing.T) {
	tool, err := cerebras.NewFunctionTool("get_weather", "Current weather for a city", &weatherArgs{})
	require.NoError(t, err)

	assert.Equal(t, "function", tool.Type)
	assert.Equal(t, "get_weather", tool.Function.Name)
	assert.Equal(t, "Current weather for a city", tool.Function.Description)
	assert.NotEmpty(t, tool.Function.Parameters)

	noParams, err := cerebras.NewFunctionTool("ping", "Liveness probe", nil)
	require.NoError(t, err)
	assert.Empty(t, noParams.Function.Parameters)
}

func TestToolCall_Decode(t *testing.T) {
	payload := `{
		"id": "call_1",
		"type": "function",
		"function": {"name": "get_weather", "arguments": "{\"city\":\"Paris\"}"}
	}`

	var call cerebras.ToolCall
	require.NoError(t, json.Unmarshal([]byte(payload), &call))
	assert.Equal(t, "call_1", call.ID)
	assert.Equal(t, "get_weather", call.Function.Name)

	var args weatherArgs
	require.NoError(t, json.Unmarshal([]byte(call.Function.Arguments), &args))
	assert.Equal(t, "Paris", args.City)
}
