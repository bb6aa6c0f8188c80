package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/viant/agno/genai/llm"
)

// Generate generates a response using the Gemini API
func (c *Client) Generate(ctx context.Context, request *llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if c.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	req, err := ToRequest(c.withDefaults(request))
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", c.BaseURL, c.Model, url.QueryEscape(c.APIKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr ErrorResponse
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("gemini API error (status %d, %s): %s", resp.StatusCode, apiErr.Error.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, respBytes)
	}

	var apiResp Response
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(apiResp.Candidates) == 0 && apiResp.PromptFeedback != nil && apiResp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("gemini blocked the prompt: %s", apiResp.PromptFeedback.BlockReason)
	}

	llmsResp := ToLLMSResponse(&apiResp)
	if llmsResp.Model == "" {
		llmsResp.Model = c.Model
	}
	if c.UsageListener != nil && llmsResp.Usage != nil && llmsResp.Usage.TotalTokens > 0 {
		c.UsageListener.OnUsage(c.Model, llmsResp.Usage)
	}
	return llmsResp, nil
}

// withDefaults fills unset generation options from the client configuration.
func (c *Client) withDefaults(request *llm.GenerateRequest) *llm.GenerateRequest {
	if request == nil || (c.Temperature == nil && c.MaxTokens == 0) {
		return request
	}
	cloned := *request
	opts := llm.Options{}
	if request.Options != nil {
		opts = *request.Options
	}
	if opts.Temperature == 0 && c.Temperature != nil {
		opts.Temperature = *c.Temperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = c.MaxTokens
	}
	cloned.Options = &opts
	return &cloned
}
