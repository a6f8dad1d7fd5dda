package service

import "errors"

// Sentinel errors the HTTP layer maps onto status codes.
var (
	ErrConversationNotFound = errors.New("conversa não encontrada")
	ErrConfirmationExpired  = errors.New("confirmação expirada, tente novamente")
	ErrTenantMismatch       = errors.New("confirmação pertence a outro tenant")

	ErrTenantNotFound = errors.New("tenant não encontrado")

	ErrContactNotFound = errors.New("contato não encontrado")
	ErrContactOptedOut = errors.New("contato optou por não receber mensagens")

	ErrBoletoNotFound         = errors.New("boleto não encontrado")
	ErrBoletoAlreadyPaid      = errors.New("boleto já está pago")
	ErrBoletoAlreadyCancelled = errors.New("boleto já está cancelado")
	ErrNotConfirmed           = errors.New("operação monetária requer confirmação explícita")

	ErrEmailTaken         = errors.New("email já cadastrado")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
)
