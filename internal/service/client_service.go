package service

import (
	"context"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/payload"
	"go-inventory-ledger/internal/repository"

	"gorm.io/gorm"
)

type ClientService interface {
	ListClients(ctx context.Context) ([]model.ClientResponse, error)
	GetClient(ctx context.Context, id uint) (*model.ClientResponse, error)
	CreateClient(ctx context.Context, f payload.Fields) (*model.ClientResponse, error)
	UpdateClient(ctx context.Context, id uint, f payload.Fields) (*model.ClientResponse, error)
	DeleteClient(ctx context.Context, id uint) error
}

type clientInput struct {
	Name               string  `json:"name" validate:"required,notblank,max=255"`
	ContactPhone       *string `json:"contact_phone" validate:"omitempty,max=20"`
	ContactEmail       *string `json:"contact_email" validate:"omitempty,max=120"`
	CurrentMonthStatus *string `json:"current_month_status" validate:"omitempty,oneof=PAID PENDING"`
}

type clientService struct {
	db         *gorm.DB
	clientRepo repository.ClientRepository
	saleRepo   repository.SaleRepository
}

func NewClientService(db *gorm.DB, clientRepo repository.ClientRepository, saleRepo repository.SaleRepository) ClientService {
	return &clientService{db: db, clientRepo: clientRepo, saleRepo: saleRepo}
}

func applyClient(c *model.Client, f payload.Fields) error {
	if err := applyAll(
		setString(f, "name", &c.Name),
		setOptionalString(f, "contact_phone", &c.ContactPhone),
		setOptionalString(f, "contact_email", &c.ContactEmail),
		setOptionalString(f, "address", &c.Address),
		setBool(f, "is_credit_client", &c.IsCreditClient),
		setNullDecimal(f, "credit_limit", &c.CreditLimit),
		setOptionalString(f, "current_month_status", &c.CurrentMonthStatus),
	); err != nil {
		return err
	}
	return validateInput(&clientInput{
		Name:               c.Name,
		ContactPhone:       c.ContactPhone,
		ContactEmail:       c.ContactEmail,
		CurrentMonthStatus: c.CurrentMonthStatus,
	})
}

func (s *clientService) ListClients(ctx context.Context) ([]model.ClientResponse, error) {
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := make([]model.ClientResponse, 0, len(clients))
	for i := range clients {
		res = append(res, clients[i].ToResponse())
	}
	return res, nil
}

func (s *clientService) GetClient(ctx context.Context, id uint) (*model.ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Client not found")
	}
	res := client.ToResponse()
	return &res, nil
}

func (s *clientService) CreateClient(ctx context.Context, f payload.Fields) (*model.ClientResponse, error) {
	if err := requireFields(f, "Client name is required", "name"); err != nil {
		return nil, err
	}
	client := &model.Client{}
	if err := applyClient(client, f); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.clientRepo.WithTx(tx).Create(ctx, client)
	})
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := client.ToResponse()
	return &res, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id uint, f payload.Fields) (*model.ClientResponse, error) {
	var updated *model.Client
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clients := s.clientRepo.WithTx(tx)
		client, err := clients.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, "Client not found")
		}
		if err := applyClient(client, f); err != nil {
			return err
		}
		if err := clients.Update(ctx, client); err != nil {
			return err
		}
		updated = client
		return nil
	})
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := updated.ToResponse()
	return &res, nil
}

// DeleteClient refuses to remove a client that still has sales on record.
func (s *clientService) DeleteClient(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clients := s.clientRepo.WithTx(tx)
		if _, err := clients.FindByID(ctx, id); err != nil {
			return lookupError(err, "Client not found")
		}
		sales, err := s.saleRepo.WithTx(tx).FindByClientID(ctx, id)
		if err != nil {
			return err
		}
		if len(sales) > 0 {
			return Conflict("Client has recorded sales and cannot be deleted.")
		}
		return clients.Delete(ctx, id)
	})
	if err != nil {
		return Persistence(err, "")
	}
	return nil
}
