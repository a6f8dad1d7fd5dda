package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-billing-be/pkg/llm"
)

// OllamaProvider talks to a local Ollama server using /api/chat with
// format=json so the model is forced into structured output.
type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.Provider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

const classifySystemPrompt = `You classify billing assistant messages. Reply with JSON only:
{"intent": "create_boleto"|"cancel_boleto"|"check_status"|"send_message"|"list_boletos"|"general_question"|"unknown", "confidence": 0.0-1.0}`

const extractSystemPrompt = `You extract entities for a billing assistant. The user intent is %q.
Reply with JSON only, using null for fields absent from the message:
{"contact_name": string|null, "contact_phone": string|null, "amount_cents": integer|null, "due_date": "YYYY-MM-DD"|null, "boleto_id": string|null, "message_content": string|null}`

func (o *OllamaProvider) ClassifyIntent(ctx context.Context, text string) (*llm.ClassificationResult, error) {
	raw, err := o.chat(ctx, classifySystemPrompt, text)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, llm.NewProviderError(llm.ErrCodeParseError, "classification response is not valid JSON: %v", err)
	}
	if payload.Intent == "" {
		payload.Intent = "unknown"
	}

	return &llm.ClassificationResult{Intent: payload.Intent, Confidence: payload.Confidence}, nil
}

func (o *OllamaProvider) ExtractEntities(ctx context.Context, text string, intent string) (*llm.ExtractionResult, error) {
	raw, err := o.chat(ctx, fmt.Sprintf(extractSystemPrompt, intent), text)
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
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
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

func (o *OllamaProvider) chat(ctx context.Context, system, user string) (string, error) {
	reqPayload := ollamaChatRequest{
		Model: o.ModelName,
		Messages: []ollamaMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: false,
		Format: "json",
		Options: &ollamaOptions{
			Temperature: 0.0,
		},
	}

	jsonData, err := json.Marshal(reqPayload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/api/chat", o.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", llm.NewProviderError(llm.ErrCodeTimeout, "ollama request timed out")
		}
		return "", llm.NewProviderError(llm.ErrCodeAPIError, "ollama request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", llm.NewProviderError(llm.ErrCodeAPIError, "failed to read ollama response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", llm.NewProviderError(llm.ErrCodeAPIError, "ollama status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ollamaChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", llm.NewProviderError(llm.ErrCodeParseError, "failed to decode ollama envelope: %v", err)
	}

	return chatResp.Message.Content, nil
}
