package dto

// AssistantMessageRequest is an inbound chat turn. An empty
// ConversationId starts a new conversation.
type AssistantMessageRequest struct {
	ConversationId string `json:"conversation_id,omitempty"`
	TenantId       string `json:"tenant_id" validate:"required"`
	UserId         string `json:"user_id,omitempty"`
	Text           string `json:"text" validate:"required"`
}

type AssistantMessageResponse struct {
	ConversationId       string `json:"conversation_id"`
	Response             string `json:"response"`
	RequiresConfirmation bool   `json:"requires_confirmation"`
	SuggestedAction      string `json:"suggested_action,omitempty"`
	Intent               string `json:"intent,omitempty"`
}

// AssistantConfirmRequest resolves a pending confirmation. Confirmed=false
// cancels the pending action.
type AssistantConfirmRequest struct {
	ConversationId string `json:"conversation_id" validate:"required"`
	TenantId       string `json:"tenant_id" validate:"required"`
	Confirmed      bool   `json:"confirmed"`
}

type AssistantConfirmResponse struct {
	ConversationId string         `json:"conversation_id"`
	Response       string         `json:"response"`
	ActionExecuted bool           `json:"action_executed"`
	Result         map[string]any `json:"result,omitempty"`
}
