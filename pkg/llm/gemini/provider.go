package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-billing-be/pkg/llm"
)

const classifyPromptTemplate = `You are an intent classifier for a financial billing assistant.
Classify the user message into ONE of these intents:
- create_boleto: User wants to create a new boleto/billing
- cancel_boleto: User wants to cancel an existing boleto
- check_status: User wants to check the status of a boleto
- send_message: User wants to send a message/reminder
- list_boletos: User wants to list their boletos
- general_question: User has a general question
- unknown: Cannot determine intent

Return ONLY a JSON object with this exact structure:
{"intent": "<intent>", "confidence": <0.0-1.0>}

User message: %s`

const extractPromptTemplate = `You are an entity extractor for a financial billing assistant.
Extract entities from the user message based on the intent: %s

For create_boleto, extract:
- contact_name: Name of the person to bill
- amount_cents: Amount in cents (e.g., "R$ 100,00" = 10000)
- due_date: Due date in YYYY-MM-DD format

For cancel_boleto or check_status, extract:
- boleto_id: The boleto identifier (UUID)

For send_message, extract:
- contact_name: Name of the recipient
- message_content: Message to send

Return ONLY a JSON object with extracted fields. Use null for missing fields.
Example: {"contact_name": "João", "amount_cents": 10000, "due_date": "2026-02-15"}

User message: %s`

// GeminiProvider calls the Google generative language API and parses the
// JSON-only replies demanded by the prompts.
type GeminiProvider struct {
	ApiKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

var _ llm.Provider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}
	return &GeminiProvider{
		ApiKey:    apiKey,
		ModelName: modelName,
		BaseURL:   "https://generativelanguage.googleapis.com/v1beta",
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

func (p *GeminiProvider) ClassifyIntent(ctx context.Context, text string) (*llm.ClassificationResult, error) {
	raw, err := p.generate(ctx, fmt.Sprintf(classifyPromptTemplate, text))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return nil, llm.NewProviderError(llm.ErrCodeParseError, "classification response is not valid JSON: %v", err)
	}
	if payload.Intent == "" {
		payload.Intent = "unknown"
	}

	return &llm.ClassificationResult{
		Intent:     payload.Intent,
		Confidence: payload.Confidence,
	}, nil
}

func (p *GeminiProvider) ExtractEntities(ctx context.Context, text string, intent string) (*llm.ExtractionResult, error) {
	raw, err := p.generate(ctx, fmt.Sprintf(extractPromptTemplate, intent, text))
	if err != nil {
		return nil, err
	}

	var payload struct {
		ContactName    *string  `json:"contact_name"`
		ContactPhone   *string  `json:"contact_phone"`
		AmountCents    *float64 `json:"amount_cents"`
		DueDate        *string  `json:"due_date"`
		BoletoId       *string  `json:"boleto_id"`
		MessageContent *string  `json:"message_content"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return nil, llm.NewProviderError(llm.ErrCodeParseError, "extraction response is not valid JSON: %v", err)
	}

	result := &llm.ExtractionResult{
		ContactName:    payload.ContactName,
		ContactPhone:   payload.ContactPhone,
		DueDate:        payload.DueDate,
		BoletoId:       payload.BoletoId,
		MessageContent: payload.MessageContent,
	}
	if payload.AmountCents != nil {
		cents := int64(*payload.AmountCents)
		result.AmountCents = &cents
	}

	return result, nil
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}, Role: "user"},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.BaseURL, p.ModelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", llm.NewProviderError(llm.ErrCodeTimeout, "gemini request timed out")
		}
		return "", llm.NewProviderError(llm.ErrCodeAPIError, "gemini request failed: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", llm.NewProviderError(llm.ErrCodeAPIError, "failed to read gemini response: %v", err)
	}

	if res.StatusCode == http.StatusTooManyRequests {
		return "", llm.NewProviderError(llm.ErrCodeRateLimited, "gemini rate limit hit")
	}
	if res.StatusCode != http.StatusOK {
		return "", llm.NewProviderError(llm.ErrCodeAPIError, "gemini status %d: %s", res.StatusCode, string(resBody))
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", llm.NewProviderError(llm.ErrCodeParseError, "failed to decode gemini envelope: %v", err)
	}
	if len(geminiRes.Candidates) == 0 || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", llm.NewProviderError(llm.ErrCodeAPIError, "empty response from gemini")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences removes ```json fences some models wrap around structured
// output despite the prompt asking for bare JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
