// Package clients manages the customer registry ops files are operated for.
package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/rmartelo/freightops-backend/pkg/db"
	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/enums"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
)

// CreateClientInput carries the creation payload.
type CreateClientInput struct {
	Name         string  `json:"name" validate:"required"`
	TaxID        *string `json:"tax_id"`
	Address      *string `json:"address"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	ContactEmail *string `json:"contact_email"`
}

// UpdateClientInput is exclude-unset: only present fields are applied.
type UpdateClientInput struct {
	Name         *string `json:"name"`
	TaxID        *string `json:"tax_id"`
	Address      *string `json:"address"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	ContactEmail *string `json:"contact_email"`
	Disabled     *bool   `json:"disabled"`
}

// ClientView is the public client shape.
type ClientView struct {
	ClientID     uuid.UUID `json:"client_id"`
	Name         string    `json:"name"`
	TaxID        *string   `json:"tax_id,omitempty"`
	Address      *string   `json:"address,omitempty"`
	ContactName  *string   `json:"contact_name,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	Disabled     bool      `json:"disabled"`
}

// Repository persists clients.
type Repository interface {
	Create(ctx context.Context, client *models.Client) error
	Find(ctx context.Context, clientID uuid.UUID) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	Update(ctx context.Context, clientID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, clientID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a clients repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, client *models.Client) error {
	if client.ClientID == uuid.Nil {
		client.ClientID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *repository) Find(ctx context.Context, clientID uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repository) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *repository) Update(ctx context.Context, clientID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("client_id = ?", clientID).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, clientID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&models.Client{}).Error
}

// Service exposes client CRUD with typed errors.
type Service interface {
	Create(ctx context.Context, input CreateClientInput) (*ClientView, error)
	Get(ctx context.Context, clientID uuid.UUID) (*ClientView, error)
	List(ctx context.Context) ([]ClientView, error)
	Update(ctx context.Context, clientID uuid.UUID, input UpdateClientInput) (*ClientView, error)
	Delete(ctx context.Context, clientID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the clients service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("clients repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateClientInput) (*ClientView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.Validation("name", "is required")
	}

	client := &models.Client{
		Name:         name,
		TaxID:        input.TaxID,
		Address:      input.Address,
		ContactName:  input.ContactName,
		ContactPhone: input.ContactPhone,
		ContactEmail: input.ContactEmail,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "client name or tax id already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create client")
	}
	return project(client), nil
}

func (s *service) Get(ctx context.Context, clientID uuid.UUID) (*ClientView, error) {
	client, err := s.load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return project(client), nil
}

func (s *service) List(ctx context.Context) ([]ClientView, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clients")
	}
	views := make([]ClientView, 0, len(clients))
	for i := range clients {
		views = append(views, *project(&clients[i]))
	}
	return views, nil
}

func (s *service) Update(ctx context.Context, clientID uuid.UUID, input UpdateClientInput) (*ClientView, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.Validation("name", "must not be empty")
	}
	if _, err := s.load(ctx, clientID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.TaxID != nil {
		updates["tax_id"] = *input.TaxID
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.ContactName != nil {
		updates["contact_name"] = *input.ContactName
	}
	if input.ContactPhone != nil {
		updates["contact_phone"] = *input.ContactPhone
	}
	if input.ContactEmail != nil {
		updates["contact_email"] = *input.ContactEmail
	}
	if input.Disabled != nil {
		updates["disabled"] = *input.Disabled
	}
	if err := s.repo.Update(ctx, clientID, updates); err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "client name or tax id already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update client")
	}
	return s.Get(ctx, clientID)
}

func (s *service) Delete(ctx context.Context, clientID uuid.UUID) error {
	if _, err := s.load(ctx, clientID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, clientID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete client")
	}
	return nil
}

func (s *service) load(ctx context.Context, clientID uuid.UUID) (*models.Client, error) {
	client, err := s.repo.Find(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityClient, clientID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}
	return client, nil
}

func project(client *models.Client) *ClientView {
	return &ClientView{
		ClientID:     client.ClientID,
		Name:         client.Name,
		TaxID:        client.TaxID,
		Address:      client.Address,
		ContactName:  client.ContactName,
		ContactPhone: client.ContactPhone,
		ContactEmail: client.ContactEmail,
		Disabled:     client.Disabled,
	}
}
