package service

import (
	"context"
	"time"

	"ai-billing-be/internal/dto"
	"ai-billing-be/internal/entity"
	"ai-billing-be/internal/repository/specification"
	"ai-billing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IContactService interface {
	Create(ctx context.Context, req *dto.CreateContactRequest) (*dto.ContactResponse, error)
	Update(ctx context.Context, tenantId uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, error)
	Delete(ctx context.Context, tenantId, id uuid.UUID) error
	Show(ctx context.Context, tenantId, id uuid.UUID) (*dto.ContactResponse, error)
	List(ctx context.Context, tenantId uuid.UUID) ([]*dto.ContactResponse, error)
	ResolveByName(ctx context.Context, tenantId uuid.UUID, name string, phone *string) (*dto.ContactResponse, error)
	OptOut(ctx context.Context, tenantId, id uuid.UUID) error
}

type contactService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewContactService(uowFactory unitofwork.RepositoryFactory) IContactService {
	return &contactService{
		uowFactory: uowFactory,
	}
}

func (c *contactService) Create(ctx context.Context, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	contact := entity.Contact{
		Id:        uuid.New(),
		TenantId:  req.TenantId,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}

	if err := uow.ContactRepository().Create(ctx, &contact); err != nil {
		return nil, err
	}

	return toContactResponse(&contact), nil
}

func (c *contactService) Update(ctx context.Context, tenantId uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByTenantID{TenantID: tenantId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Phone != nil {
		contact.Phone = req.Phone
	}
	if req.Email != nil {
		contact.Email = req.Email
	}

	if err := uow.ContactRepository().Update(ctx, contact); err != nil {
		return nil, err
	}

	return toContactResponse(contact), nil
}

func (c *contactService) Delete(ctx context.Context, tenantId, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByTenantID{TenantID: tenantId},
	)
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrContactNotFound
	}

	return uow.ContactRepository().Delete(ctx, id)
}

func (c *contactService) Show(ctx context.Context, tenantId, id uuid.UUID) (*dto.ContactResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByTenantID{TenantID: tenantId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}

	return toContactResponse(contact), nil
}

func (c *contactService) List(ctx context.Context, tenantId uuid.UUID) ([]*dto.ContactResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	contacts, err := uow.ContactRepository().FindAll(ctx,
		specification.ByTenantID{TenantID: tenantId},
		specification.OrderBy{Field: "name"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ContactResponse, len(contacts))
	for i, contact := range contacts {
		res[i] = toContactResponse(contact)
	}
	return res, nil
}

// ResolveByName finds a tenant's contact by display name, registering a
// new one when the name is unknown. The assistant depends on this so a
// user can say "cobra a Maria" without ever touching contact ids.
func (c *contactService) ResolveByName(ctx context.Context, tenantId uuid.UUID, name string, phone *string) (*dto.ContactResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByTenantID{TenantID: tenantId},
		specification.ByNameInsensitive{Name: name},
	)
	if err != nil {
		return nil, err
	}
	if contact != nil {
		return toContactResponse(contact), nil
	}

	created := entity.Contact{
		Id:        uuid.New(),
		TenantId:  tenantId,
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
	if err := uow.ContactRepository().Create(ctx, &created); err != nil {
		return nil, err
	}

	return toContactResponse(&created), nil
}

func (c *contactService) OptOut(ctx context.Context, tenantId, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByTenantID{TenantID: tenantId},
	)
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrContactNotFound
	}

	contact.OptedOut = true
	return uow.ContactRepository().Update(ctx, contact)
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		Id:        c.Id,
		TenantId:  c.TenantId,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		OptedOut:  c.OptedOut,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
