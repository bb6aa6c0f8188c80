package gemini

import (
	"fmt"
	"strings"

	"github.com/viant/agno/genai/llm"
)

// ToRequest converts a generic request into a Gemini request.
// System messages are merged into systemInstruction, assistant turns use the "model" role.
func ToRequest(request *llm.GenerateRequest) (*Request, error) {
	if request == nil {
		return nil, fmt.Errorf("request was nil")
	}
	req := &Request{Contents: make([]Content, 0, len(request.Messages))}

	if opts := request.Options; opts != nil {
		cfg := &GenerationConfig{
			Temperature:      opts.Temperature,
			MaxOutputTokens:  opts.MaxTokens,
			TopP:             opts.TopP,
			TopK:             opts.TopK,
			ResponseMIMEType: opts.ResponseMIMEType,
		}
		if *cfg != (GenerationConfig{}) {
			req.GenerationConfig = cfg
		}
	}

	for _, msg := range request.Messages {
		parts := toParts(msg)
		if len(parts) == 0 {
			continue
		}
		switch msg.Role {
		case llm.RoleSystem:
			if req.SystemInstruction == nil {
				req.SystemInstruction = &SystemInstruction{Role: string(llm.RoleSystem)}
			}
			req.SystemInstruction.Parts = append(req.SystemInstruction.Parts, parts...)
		case llm.RoleAssistant:
			req.Contents = append(req.Contents, Content{Role: roleModel, Parts: parts})
		default:
			req.Contents = append(req.Contents, Content{Role: string(llm.RoleUser), Parts: parts})
		}
	}
	if len(req.Contents) == 0 {
		return nil, fmt.Errorf("request has no user content")
	}
	return req, nil
}

func toParts(msg llm.Message) []Part {
	var parts []Part
	for _, item := range msg.Items {
		if item.Type == llm.ContentTypeText && item.Text != "" {
			parts = append(parts, Part{Text: item.Text})
		}
	}
	if len(parts) == 0 && msg.Content != "" {
		parts = append(parts, Part{Text: msg.Content})
	}
	return parts
}

// ToLLMSResponse converts a Gemini response into a generic response.
func ToLLMSResponse(resp *Response) *llm.GenerateResponse {
	result := &llm.GenerateResponse{
		Choices: make([]llm.Choice, 0, len(resp.Candidates)),
		Model:   resp.ModelVersion,
	}
	for i, candidate := range resp.Candidates {
		message := llm.Message{Role: llm.RoleAssistant}
		var texts []string
		for _, part := range candidate.Content.Parts {
			if part.Text == "" {
				continue
			}
			texts = append(texts, part.Text)
			item := llm.NewTextContent(part.Text)
			if resp.ModelVersion != "" {
				item.Metadata = map[string]interface{}{"modelVersion": resp.ModelVersion}
			}
			message.Items = append(message.Items, item)
		}
		message.Content = strings.Join(texts, "\n")
		result.Choices = append(result.Choices, llm.Choice{
			Index:        i,
			Message:      message,
			FinishReason: candidate.FinishReason,
		})
	}
	if resp.UsageMetadata != nil {
		result.Usage = &llm.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}
	return result
}
