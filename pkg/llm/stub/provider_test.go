package stub

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	p := NewStubProvider()
	ctx := context.Background()

	tests := []struct {
		text       string
		wantIntent string
	}{
		{"quero criar um boleto de 150 reais", "create_boleto"},
		{"gerar cobrança para a maria", "create_boleto"},
		{"cancelar o boleto do joão", "cancel_boleto"},
		{"qual o status do boleto?", "check_status"},
		{"enviar um lembrete para o cliente", "send_message"},
		{"listar meus boletos", "list_boletos"},
		{"bom dia", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			result, err := p.ClassifyIntent(ctx, tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantIntent, result.Intent)
			if tt.wantIntent == "unknown" {
				assert.Less(t, result.Confidence, 0.7)
			} else {
				assert.GreaterOrEqual(t, result.Confidence, 0.7)
			}
		})
	}
}

func TestExtractAmount(t *testing.T) {
	p := NewStubProvider()
	ctx := context.Background()

	tests := []struct {
		text      string
		wantCents int64
	}{
		{"criar boleto de r$ 1.500,50 para maria", 150050},
		{"cobrar 150 reais do joão", 15000},
		{"boleto no valor de 99,90", 9990},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			result, err := p.ExtractEntities(ctx, tt.text, "create_boleto")
			assert.NoError(t, err)
			assert.NotNil(t, result.AmountCents)
			assert.Equal(t, tt.wantCents, *result.AmountCents)
		})
	}
}

func TestExtractDueDate(t *testing.T) {
	p := NewStubProvider()
	ctx := context.Background()

	result, err := p.ExtractEntities(ctx, "vencimento 15/03/2099", "create_boleto")
	assert.NoError(t, err)
	assert.NotNil(t, result.DueDate)
	assert.Equal(t, "2099-03-15", *result.DueDate)

	result, err = p.ExtractEntities(ctx, "para amanhã", "create_boleto")
	assert.NoError(t, err)
	assert.NotNil(t, result.DueDate)
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	assert.Equal(t, tomorrow, *result.DueDate)
}

func TestExtractContactName(t *testing.T) {
	p := NewStubProvider()

	result, err := p.ExtractEntities(context.Background(), "criar boleto para maria silva", "create_boleto")
	assert.NoError(t, err)
	assert.NotNil(t, result.ContactName)
	assert.Equal(t, "Maria Silva", *result.ContactName)
}

func TestExtractBoletoId(t *testing.T) {
	p := NewStubProvider()

	id := "A1B2C3D4-0000-4000-8000-1234567890AB"
	result, err := p.ExtractEntities(context.Background(), fmt.Sprintf("cancelar boleto %s", id), "cancel_boleto")
	assert.NoError(t, err)
	assert.NotNil(t, result.BoletoId)
	assert.Equal(t, "a1b2c3d4-0000-4000-8000-1234567890ab", *result.BoletoId)
}

func TestExtractFullCreateUtterance(t *testing.T) {
	p := NewStubProvider()

	text := "quero criar um boleto de r$ 150,00 para maria venc 10/03"

	classification, err := p.ClassifyIntent(context.Background(), text)
	assert.NoError(t, err)
	assert.Equal(t, "create_boleto", classification.Intent)
	assert.Equal(t, 0.85, classification.Confidence)

	result, err := p.ExtractEntities(context.Background(), text, "create_boleto")
	assert.NoError(t, err)
	assert.NotNil(t, result.ContactName)
	assert.Equal(t, "Maria", *result.ContactName)
	assert.NotNil(t, result.AmountCents)
	assert.Equal(t, int64(15000), *result.AmountCents)
	assert.NotNil(t, result.DueDate)
	assert.Equal(t, fmt.Sprintf("%d-03-10", time.Now().Year()), *result.DueDate)
}

func TestExtractNothing(t *testing.T) {
	p := NewStubProvider()

	result, err := p.ExtractEntities(context.Background(), "bom dia", "unknown")
	assert.NoError(t, err)
	assert.Nil(t, result.ContactName)
	assert.Nil(t, result.AmountCents)
	assert.Nil(t, result.DueDate)
	assert.Nil(t, result.BoletoId)
}
