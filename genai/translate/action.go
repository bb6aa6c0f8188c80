package translate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Action is the tool call a model proposed for a command.
type Action struct {
	ToolName   string                 `json:"tool_name"`
	Parameters map[string]interface{} `json:"parameters"`
	// Reason explains why no tool was chosen.
	Reason string `json:"reason,omitempty"`
}

// HasTool reports whether the model picked a tool.
func (a *Action) HasTool() bool {
	return a != nil && a.ToolName != ""
}

// InvalidJSONError reports a model answer that is not a JSON object.
type InvalidJSONError struct {
	// Raw is the answer as the model returned it.
	Raw string
	Err error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("invalid JSON answer: %v", e.Err)
}

func (e *InvalidJSONError) Unwrap() error { return e.Err }

var codeFence = regexp.MustCompile("```json\\s*|\\s*```")

// StripCodeFence removes ```json openers and ``` closers with their adjacent whitespace, then trims.
// Leading whitespace is trimmed first so an indented opener still loses its tag.
func StripCodeFence(text string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(strings.TrimSpace(text), ""))
}

// ParseAction strips code fences from a model answer and decodes the action.
func ParseAction(answer string) (*Action, error) {
	cleaned := StripCodeFence(answer)
	var data interface{}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, &InvalidJSONError{Raw: answer, Err: err}
	}
	object, ok := data.(map[string]interface{})
	if !ok {
		return nil, &InvalidJSONError{Raw: answer, Err: fmt.Errorf("expected object, got %T", data)}
	}

	action := &Action{Parameters: map[string]interface{}{}}
	action.ToolName = toolName(object["tool_name"])
	if reason, ok := object["reason"].(string); ok {
		action.Reason = reason
	}
	switch params := object["parameters"].(type) {
	case nil:
	case map[string]interface{}:
		action.Parameters = params
	default:
		return nil, &InvalidJSONError{Raw: answer, Err: fmt.Errorf("parameters: expected object, got %T", params)}
	}
	return action, nil
}

// toolName normalizes the proposed name. Empty values (null, false, 0, "",
// [] and {}) mean no tool; other non-string names fail catalog lookup and
// get reported as invalid tools.
func toolName(value interface{}) string {
	switch actual := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(actual)
	case bool:
		if actual {
			return "true"
		}
		return ""
	case float64:
		if actual == 0 {
			return ""
		}
		return fmt.Sprint(actual)
	case []interface{}:
		if len(actual) == 0 {
			return ""
		}
	case map[string]interface{}:
		if len(actual) == 0 {
			return ""
		}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(data)
}
