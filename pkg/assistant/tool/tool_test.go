package tool

import (
	"context"
	"errors"
	"testing"

	"ai-billing-be/internal/dto"
	"ai-billing-be/pkg/assistant/state"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeBilling struct {
	createReq  *dto.CreateBoletoRequest
	cancelReq  *dto.CancelBoletoRequest
	boleto     *dto.BoletoResponse
	list       *dto.ListBoletosResponse
	err        error
}

func (f *fakeBilling) CreateBoleto(ctx context.Context, req *dto.CreateBoletoRequest) (*dto.BoletoResponse, error) {
	f.createReq = req
	return f.boleto, f.err
}

func (f *fakeBilling) CancelBoleto(ctx context.Context, req *dto.CancelBoletoRequest) (*dto.BoletoResponse, error) {
	f.cancelReq = req
	return f.boleto, f.err
}

func (f *fakeBilling) GetBoleto(ctx context.Context, tenantId, boletoId uuid.UUID) (*dto.BoletoResponse, error) {
	return f.boleto, f.err
}

func (f *fakeBilling) ListBoletos(ctx context.Context, tenantId uuid.UUID) (*dto.ListBoletosResponse, error) {
	return f.list, f.err
}

type fakeContacts struct {
	contact *dto.ContactResponse
	err     error
}

func (f *fakeContacts) ResolveByName(ctx context.Context, tenantId uuid.UUID, name string, phone *string) (*dto.ContactResponse, error) {
	return f.contact, f.err
}

type fakeMessaging struct {
	req  *dto.QueueMessageRequest
	item *dto.OutboxItemResponse
	err  error
}

func (f *fakeMessaging) QueueMessage(ctx context.Context, req *dto.QueueMessageRequest) (*dto.OutboxItemResponse, error) {
	f.req = req
	return f.item, f.err
}

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

func createInput(tenantId string) Input {
	return Input{
		TenantId:       tenantId,
		ConversationId: "c1",
		IdempotencyKey: "c1:abcd1234",
		Entities: state.Entities{
			ContactName: strPtr("maria silva"),
			AmountCents: i64Ptr(150050),
			DueDate:     strPtr("2099-12-01"),
		},
	}
}

func TestRegistryResolve(t *testing.T) {
	billing := &fakeBilling{}
	r := NewRegistry().
		Register(state.IntentListBoletos, NewListBoletosTool(billing)).
		Register(state.IntentCheckStatus, NewBoletoStatusTool(billing))

	tt, ok := r.Resolve(state.IntentListBoletos)
	assert.True(t, ok)
	assert.Equal(t, "list_boletos", tt.Name())

	_, ok = r.Resolve(state.IntentCreateBoleto)
	assert.False(t, ok)
}

func TestCreateBoletoToolExecute(t *testing.T) {
	tenantId := uuid.New()
	contactId := uuid.New()
	boletoId := uuid.New()
	ref := "prov-ref-1"

	contacts := &fakeContacts{contact: &dto.ContactResponse{Id: contactId, Name: "Maria Silva"}}
	billing := &fakeBilling{boleto: &dto.BoletoResponse{
		Id:                boletoId,
		AmountCents:       150050,
		DueDate:           "2099-12-01",
		Status:            "created",
		ProviderReference: &ref,
	}}

	tool := NewCreateBoletoTool(billing, contacts)
	assert.True(t, tool.RequiresConfirmation())

	result := tool.Execute(context.Background(), createInput(tenantId.String()))

	assert.True(t, result.Success)
	assert.Equal(t, boletoId.String(), result.Data["boleto_id"])
	assert.Equal(t, "created", result.Data["status"])
	assert.Equal(t, "Maria Silva", result.Data["contact_name"])
	assert.Equal(t, ref, result.Data["provider_reference"])

	// The use case only accepts pre-confirmed monetary requests.
	assert.True(t, billing.createReq.Confirmed)
	assert.Equal(t, contactId, billing.createReq.ContactId)
	assert.Equal(t, "c1:abcd1234", billing.createReq.IdempotencyKey)
}

func TestCreateBoletoToolValidatesInput(t *testing.T) {
	tool := NewCreateBoletoTool(&fakeBilling{}, &fakeContacts{})

	result := tool.Execute(context.Background(), Input{})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "tenant_id is required")
	assert.Contains(t, result.Error, "contact_name is required")
	assert.Contains(t, result.Error, "amount_cents is required")
	assert.Contains(t, result.Error, "due_date is required")
	assert.Contains(t, result.Error, "idempotency_key is required")
}

func TestCreateBoletoToolRejectsBadTenantId(t *testing.T) {
	tool := NewCreateBoletoTool(&fakeBilling{}, &fakeContacts{})

	result := tool.Execute(context.Background(), createInput("not-a-uuid"))

	assert.False(t, result.Success)
	assert.Equal(t, "tenant_id is not a valid id", result.Error)
}

func TestCreateBoletoToolFoldsUseCaseError(t *testing.T) {
	contacts := &fakeContacts{contact: &dto.ContactResponse{Id: uuid.New()}}
	billing := &fakeBilling{err: errors.New("contato não encontrado")}
	tool := NewCreateBoletoTool(billing, contacts)

	result := tool.Execute(context.Background(), createInput(uuid.NewString()))

	assert.False(t, result.Success)
	assert.Equal(t, "contato não encontrado", result.Error)
}

func TestCancelBoletoToolExecute(t *testing.T) {
	boletoId := uuid.New()
	billing := &fakeBilling{boleto: &dto.BoletoResponse{Id: boletoId, Status: "cancelled"}}
	tool := NewCancelBoletoTool(billing)
	assert.True(t, tool.RequiresConfirmation())

	bid := boletoId.String()
	result := tool.Execute(context.Background(), Input{
		TenantId: uuid.NewString(),
		Entities: state.Entities{BoletoId: &bid},
	})

	assert.True(t, result.Success)
	assert.Equal(t, "cancelled", result.Data["status"])
	assert.True(t, billing.cancelReq.Confirmed)
	assert.NotNil(t, billing.cancelReq.Reason)
}

func TestCancelBoletoToolRejectsBadBoletoId(t *testing.T) {
	tool := NewCancelBoletoTool(&fakeBilling{})

	bid := "boleto-do-aluguel"
	result := tool.Execute(context.Background(), Input{
		TenantId: uuid.NewString(),
		Entities: state.Entities{BoletoId: &bid},
	})

	assert.False(t, result.Success)
	assert.Equal(t, "boleto_id is not a valid id", result.Error)
}

func TestBoletoStatusToolExecute(t *testing.T) {
	boletoId := uuid.New()
	billing := &fakeBilling{boleto: &dto.BoletoResponse{Id: boletoId, Status: "paid"}}
	tool := NewBoletoStatusTool(billing)
	assert.False(t, tool.RequiresConfirmation())

	bid := boletoId.String()
	result := tool.Execute(context.Background(), Input{
		TenantId: uuid.NewString(),
		Entities: state.Entities{BoletoId: &bid},
	})

	assert.True(t, result.Success)
	assert.Equal(t, "paid", result.Data["status"])
}

func TestListBoletosToolExecute(t *testing.T) {
	billing := &fakeBilling{list: &dto.ListBoletosResponse{
		Boletos: []*dto.BoletoResponse{
			{Id: uuid.New(), Status: "created", AmountCents: 1000, DueDate: "2099-01-01"},
			{Id: uuid.New(), Status: "paid", AmountCents: 2000, DueDate: "2099-02-01"},
		},
		Count: 2,
	}}
	tool := NewListBoletosTool(billing)

	result := tool.Execute(context.Background(), Input{TenantId: uuid.NewString()})

	assert.True(t, result.Success)
	assert.Equal(t, int64(2), result.Data["count"])
	boletos := result.Data["boletos"].([]map[string]any)
	assert.Len(t, boletos, 2)
	assert.Equal(t, "created", boletos[0]["status"])
}

func TestQueueMessageToolExecute(t *testing.T) {
	itemId := uuid.New()
	contactId := uuid.New()
	contacts := &fakeContacts{contact: &dto.ContactResponse{Id: contactId, Name: "João"}}
	messaging := &fakeMessaging{item: &dto.OutboxItemResponse{Id: itemId, Status: "queued"}}
	tool := NewQueueMessageTool(messaging, contacts)
	assert.False(t, tool.RequiresConfirmation())

	result := tool.Execute(context.Background(), Input{
		TenantId:       uuid.NewString(),
		IdempotencyKey: "c1:abcd1234",
		Entities: state.Entities{
			ContactName:    strPtr("joão"),
			MessageContent: strPtr("seu boleto vence amanhã"),
		},
	})

	assert.True(t, result.Success)
	assert.Equal(t, itemId.String(), result.Data["message_id"])
	assert.Equal(t, "queued", result.Data["status"])
	assert.Equal(t, "freeform", messaging.req.MessageType)
	assert.Equal(t, contactId, messaging.req.ContactId)
	assert.Equal(t, "seu boleto vence amanhã", messaging.req.Content)
}

func TestQueueMessageToolRequiresContent(t *testing.T) {
	tool := NewQueueMessageTool(&fakeMessaging{}, &fakeContacts{})

	empty := ""
	result := tool.Execute(context.Background(), Input{
		TenantId: uuid.NewString(),
		Entities: state.Entities{
			ContactName:    strPtr("joão"),
			MessageContent: &empty,
		},
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "message_content is required")
}
