package llm

// ContentType defines the supported asset types.
type ContentType string

const (
	ContentTypeText ContentType = "text"
)

// ContentItem is a single content asset in a message.
type ContentItem struct {
	// Type indicates the type of the content.
	Type ContentType `json:"type"`

	Text string `json:"text,omitempty"`

	// Metadata is optional provider metadata (e.g. model version, citations).
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// MessageRole represents the role of the message sender.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

func (m MessageRole) String() string {
	return string(m)
}

// Message is a generic chat message.
type Message struct {
	// Role of the sender (user, assistant, system)
	Role MessageRole `json:"role"`

	// Items contains the message content assets.
	Items []ContentItem `json:"items,omitempty"`

	// Content is the flattened text of all text items.
	Content string `json:"content,omitempty"`
}

// GenerateRequest represents a request to a chat-based LLM.
type GenerateRequest struct {
	// Messages is the list of messages in the conversation.
	Messages []Message `json:"messages"`

	// Options contains additional options for the request.
	Options *Options `json:"options,omitempty"`
}

// GenerateResponse represents a response from a chat-based LLM.
type GenerateResponse struct {
	// Choices contains the generated responses.
	Choices []Choice `json:"choices"`

	// Usage contains token usage information.
	Usage *Usage `json:"usage,omitempty"`
	Model string `json:"model,omitempty"`
}

// Text returns the content of the first choice or an empty string.
func (r *GenerateResponse) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// Choice represents a single response choice from a chat-based LLM.
type Choice struct {
	// Index is the index of the choice.
	Index int `json:"index"`

	// Message is the generated message.
	Message Message `json:"message"`

	// FinishReason is the reason why the generation stopped.
	FinishReason string `json:"finish_reason,omitempty"`
}

// Usage contains token usage information.
type Usage struct {
	// PromptTokens is the number of tokens used in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens used in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens used.
	TotalTokens int `json:"total_tokens"`
}

// NewUserMessage creates a new message with the "user" role.
func NewUserMessage(content string) Message {
	return NewTextMessage(RoleUser, content)
}

// NewSystemMessage creates a new message with the "system" role.
func NewSystemMessage(content string) Message {
	return NewTextMessage(RoleSystem, content)
}

// NewTextContent creates a text content item.
func NewTextContent(text string) ContentItem {
	return ContentItem{Type: ContentTypeText, Text: text}
}

// NewTextMessage creates a message with a single text item.
func NewTextMessage(role MessageRole, content string) Message {
	return Message{
		Role:    role,
		Items:   []ContentItem{NewTextContent(content)},
		Content: content,
	}
}
