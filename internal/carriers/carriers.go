// Package carriers manages the transport providers referenced by ops files.
package carriers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/enums"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
)

// CreateCarrierInput carries the creation payload.
type CreateCarrierInput struct {
	Name         string  `json:"name" validate:"required"`
	Type         string  `json:"type" validate:"required"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	ContactEmail *string `json:"contact_email"`
}

// UpdateCarrierInput is exclude-unset.
type UpdateCarrierInput struct {
	Name         *string `json:"name"`
	Type         *string `json:"type"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	ContactEmail *string `json:"contact_email"`
}

// CarrierView is the public carrier shape.
type CarrierView struct {
	CarrierID    uuid.UUID `json:"carrier_id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	ContactName  *string   `json:"contact_name,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
}

// Repository persists carriers.
type Repository interface {
	Create(ctx context.Context, carrier *models.Carrier) error
	Find(ctx context.Context, carrierID uuid.UUID) (*models.Carrier, error)
	List(ctx context.Context) ([]models.Carrier, error)
	Update(ctx context.Context, carrierID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, carrierID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a carriers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, carrier *models.Carrier) error {
	if carrier.CarrierID == uuid.Nil {
		carrier.CarrierID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(carrier).Error
}

func (r *repository) Find(ctx context.Context, carrierID uuid.UUID) (*models.Carrier, error) {
	var carrier models.Carrier
	err := r.db.WithContext(ctx).Where("carrier_id = ?", carrierID).First(&carrier).Error
	if err != nil {
		return nil, err
	}
	return &carrier, nil
}

func (r *repository) List(ctx context.Context) ([]models.Carrier, error) {
	var carriers []models.Carrier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&carriers).Error
	return carriers, err
}

func (r *repository) Update(ctx context.Context, carrierID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Carrier{}).
		Where("carrier_id = ?", carrierID).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, carrierID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("carrier_id = ?", carrierID).
		Delete(&models.Carrier{}).Error
}

// Service exposes carrier CRUD with typed errors.
type Service interface {
	Create(ctx context.Context, input CreateCarrierInput) (*CarrierView, error)
	Get(ctx context.Context, carrierID uuid.UUID) (*CarrierView, error)
	List(ctx context.Context) ([]CarrierView, error)
	Update(ctx context.Context, carrierID uuid.UUID, input UpdateCarrierInput) (*CarrierView, error)
	Delete(ctx context.Context, carrierID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the carriers service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("carriers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateCarrierInput) (*CarrierView, error) {
	name := strings.TrimSpace(input.Name)
	carrierType := strings.TrimSpace(input.Type)
	if name == "" {
		return nil, pkgerrors.Validation("name", "is required")
	}
	if carrierType == "" {
		return nil, pkgerrors.Validation("type", "is required")
	}

	carrier := &models.Carrier{
		Name:         name,
		Type:         carrierType,
		ContactName:  input.ContactName,
		ContactPhone: input.ContactPhone,
		ContactEmail: input.ContactEmail,
	}
	if err := s.repo.Create(ctx, carrier); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create carrier")
	}
	return project(carrier), nil
}

func (s *service) Get(ctx context.Context, carrierID uuid.UUID) (*CarrierView, error) {
	carrier, err := s.load(ctx, carrierID)
	if err != nil {
		return nil, err
	}
	return project(carrier), nil
}

func (s *service) List(ctx context.Context) ([]CarrierView, error) {
	carriers, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list carriers")
	}
	views := make([]CarrierView, 0, len(carriers))
	for i := range carriers {
		views = append(views, *project(&carriers[i]))
	}
	return views, nil
}

func (s *service) Update(ctx context.Context, carrierID uuid.UUID, input UpdateCarrierInput) (*CarrierView, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.Validation("name", "must not be empty")
	}
	if input.Type != nil && strings.TrimSpace(*input.Type) == "" {
		return nil, pkgerrors.Validation("type", "must not be empty")
	}
	if _, err := s.load(ctx, carrierID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		updates["type"] = strings.TrimSpace(*input.Type)
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
	if err := s.repo.Update(ctx, carrierID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update carrier")
	}
	return s.Get(ctx, carrierID)
}

func (s *service) Delete(ctx context.Context, carrierID uuid.UUID) error {
	if _, err := s.load(ctx, carrierID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, carrierID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete carrier")
	}
	return nil
}

func (s *service) load(ctx context.Context, carrierID uuid.UUID) (*models.Carrier, error) {
	carrier, err := s.repo.Find(ctx, carrierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityCarrier, carrierID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load carrier")
	}
	return carrier, nil
}

func project(carrier *models.Carrier) *CarrierView {
	return &CarrierView{
		CarrierID:    carrier.CarrierID,
		Name:         carrier.Name,
		Type:         carrier.Type,
		ContactName:  carrier.ContactName,
		ContactPhone: carrier.ContactPhone,
		ContactEmail: carrier.ContactEmail,
	}
}
