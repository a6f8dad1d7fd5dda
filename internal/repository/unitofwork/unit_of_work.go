package unitofwork

import (
	"context"

	"ai-billing-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TenantRepository() contract.TenantRepository
	UserRepository() contract.UserRepository
	ContactRepository() contract.ContactRepository
	BoletoRepository() contract.BoletoRepository
	OutboxRepository() contract.OutboxRepository
}
