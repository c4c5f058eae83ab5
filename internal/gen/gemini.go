package gen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Gemini calls the generateContent endpoint with a JSON response mime type.
type Gemini struct {
	baseURL string
	key     string
	model   string
	hc      *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"response_mime_type"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	body.GenerationConfig.ResponseMimeType = "application/json"

	url := g.baseURL + g.model + ":generateContent?key=" + g.key

	var resp geminiResponse
	if err := postJSON(ctx, g.hc, url, nil, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini: empty candidates")
	}
	return firstArray([]byte(resp.Candidates[0].Content.Parts[0].Text))
}
