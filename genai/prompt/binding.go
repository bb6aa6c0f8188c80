package prompt

import "strings"

// Binding carries the values a translation prompt is rendered with.
type Binding struct {
	// Command is the raw user command.
	Command string `yaml:"command" json:"command"`
	// Tools lists catalog keys in catalog order.
	Tools []string `yaml:"tools" json:"tools"`
}

// Data returns template variables: Command and Tools (comma separated).
func (b *Binding) Data() map[string]interface{} {
	if b == nil {
		b = &Binding{}
	}
	return map[string]interface{}{
		"Command": b.Command,
		"Tools":   strings.Join(b.Tools, ", "),
	}
}
