package translate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    string
	}{
		{description: "bare json", input: `{"tool_name":"x"}`, expected: `{"tool_name":"x"}`},
		{description: "json fence", input: "```json\n{\"tool_name\":\"x\"}\n```", expected: `{"tool_name":"x"}`},
		{description: "fence with surrounding space", input: "  ```json   {\"a\":1}   ```  \n", expected: `{"a":1}`},
		{description: "plain fence closer only", input: "{\"a\":1}\n```", expected: `{"a":1}`},
		{description: "untagged opener keeps nothing before json", input: "```\n{\"a\":1}\n```", expected: `{"a":1}`},
		{description: "prose untouched", input: "I cannot help", expected: "I cannot help"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripCodeFence(tc.input))
		})
	}
}

func TestParseAction(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    *Action
		invalidRaw  string
	}{
		{
			description: "tool with parameters",
			input:       "```json\n{\"tool_name\": \"github_search_repositories\", \"parameters\": {\"query\": \"user:@me fork:true\"}}\n```",
			expected: &Action{
				ToolName:   "github_search_repositories",
				Parameters: map[string]interface{}{"query": "user:@me fork:true"},
			},
		},
		{
			description: "missing parameters default to empty",
			input:       `{"tool_name":"github_get_me"}`,
			expected:    &Action{ToolName: "github_get_me", Parameters: map[string]interface{}{}},
		},
		{
			description: "null tool with reason",
			input:       `{"tool_name": null, "reason": "weather is not a GitHub operation"}`,
			expected:    &Action{Parameters: map[string]interface{}{}, Reason: "weather is not a GitHub operation"},
		},
		{
			description: "numeric tool name kept for lookup",
			input:       `{"tool_name": 7}`,
			expected:    &Action{ToolName: "7", Parameters: map[string]interface{}{}},
		},
		{
			description: "empty object tool name means no tool",
			input:       `{"tool_name": {}, "reason": "not a GitHub task"}`,
			expected:    &Action{Parameters: map[string]interface{}{}, Reason: "not a GitHub task"},
		},
		{
			description: "empty list tool name means no tool",
			input:       `{"tool_name": []}`,
			expected:    &Action{Parameters: map[string]interface{}{}},
		},
		{
			description: "zero tool name means no tool",
			input:       `{"tool_name": 0}`,
			expected:    &Action{Parameters: map[string]interface{}{}},
		},
		{
			description: "false tool name means no tool",
			input:       `{"tool_name": false}`,
			expected:    &Action{Parameters: map[string]interface{}{}},
		},
		{
			description: "blank string name means no tool",
			input:       `{"tool_name": "  "}`,
			expected:    &Action{Parameters: map[string]interface{}{}},
		},
		{
			description: "non-empty list name kept for lookup",
			input:       `{"tool_name": ["github_get_me"]}`,
			expected:    &Action{ToolName: `["github_get_me"]`, Parameters: map[string]interface{}{}},
		},
		{
			description: "prose answer",
			input:       "Sure! Here is the call.",
			invalidRaw:  "Sure! Here is the call.",
		},
		{
			description: "array answer",
			input:       `[1,2]`,
			invalidRaw:  `[1,2]`,
		},
		{
			description: "parameters not an object",
			input:       `{"tool_name":"x","parameters":"q"}`,
			invalidRaw:  `{"tool_name":"x","parameters":"q"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := ParseAction(tc.input)
			if tc.invalidRaw != "" {
				var invalid *InvalidJSONError
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, tc.invalidRaw, invalid.Raw)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.expected, actual)
			assert.Equal(t, tc.expected.ToolName != "", actual.HasTool())
		})
	}
}
