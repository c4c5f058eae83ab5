package gen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// OpenAI calls a chat-completions compatible endpoint with JSON response
// mode forced on.
type OpenAI struct {
	endpoint string
	key      string
	model    string
	hc       *http.Client
}

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	body := openAIRequest{
		Model:    o.model,
		Messages: []openAIMessage{{Role: "system", Content: prompt}},
	}
	body.ResponseFormat.Type = "json_object"

	var resp openAIResponse
	headers := map[string]string{"Authorization": "Bearer " + o.key}
	if err := postJSON(ctx, o.hc, o.endpoint, headers, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: empty choices")
	}
	return firstArray([]byte(resp.Choices[0].Message.Content))
}
