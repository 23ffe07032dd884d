// Package agents manages the international agent offices ops files can link.
package agents

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

// CreateAgentInput carries the creation payload.
type CreateAgentInput struct {
	Name         string  `json:"name" validate:"required"`
	TaxID        *string `json:"tax_id"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	ContactEmail *string `json:"contact_email"`
}

// UpdateAgentInput is exclude-unset.
type UpdateAgentInput struct {
	Name         *string `json:"name"`
	TaxID        *string `json:"tax_id"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	ContactEmail *string `json:"contact_email"`
}

// AgentView is the public agent shape.
type AgentView struct {
	AgentID      uuid.UUID `json:"agent_id"`
	Name         string    `json:"name"`
	TaxID        *string   `json:"tax_id,omitempty"`
	ContactName  *string   `json:"contact_name,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
}

// Repository persists international agents.
type Repository interface {
	Create(ctx context.Context, agent *models.InternationalAgent) error
	Find(ctx context.Context, agentID uuid.UUID) (*models.InternationalAgent, error)
	List(ctx context.Context) ([]models.InternationalAgent, error)
	Update(ctx context.Context, agentID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, agentID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an agents repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, agent *models.InternationalAgent) error {
	if agent.AgentID == uuid.Nil {
		agent.AgentID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(agent).Error
}

func (r *repository) Find(ctx context.Context, agentID uuid.UUID) (*models.InternationalAgent, error) {
	var agent models.InternationalAgent
	err := r.db.WithContext(ctx).Where("agent_id = ?", agentID).First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *repository) List(ctx context.Context) ([]models.InternationalAgent, error) {
	var agents []models.InternationalAgent
	err := r.db.WithContext(ctx).Order("name ASC").Find(&agents).Error
	return agents, err
}

func (r *repository) Update(ctx context.Context, agentID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.InternationalAgent{}).
		Where("agent_id = ?", agentID).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, agentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Delete(&models.InternationalAgent{}).Error
}

// Service exposes agent CRUD with typed errors.
type Service interface {
	Create(ctx context.Context, input CreateAgentInput) (*AgentView, error)
	Get(ctx context.Context, agentID uuid.UUID) (*AgentView, error)
	List(ctx context.Context) ([]AgentView, error)
	Update(ctx context.Context, agentID uuid.UUID, input UpdateAgentInput) (*AgentView, error)
	Delete(ctx context.Context, agentID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the agents service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("agents repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateAgentInput) (*AgentView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.Validation("name", "is required")
	}

	agent := &models.InternationalAgent{
		Name:         name,
		TaxID:        input.TaxID,
		ContactName:  input.ContactName,
		ContactPhone: input.ContactPhone,
		ContactEmail: input.ContactEmail,
	}
	if err := s.repo.Create(ctx, agent); err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "agent name or tax id already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create agent")
	}
	return project(agent), nil
}

func (s *service) Get(ctx context.Context, agentID uuid.UUID) (*AgentView, error) {
	agent, err := s.load(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return project(agent), nil
}

func (s *service) List(ctx context.Context) ([]AgentView, error) {
	agents, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list agents")
	}
	views := make([]AgentView, 0, len(agents))
	for i := range agents {
		views = append(views, *project(&agents[i]))
	}
	return views, nil
}

func (s *service) Update(ctx context.Context, agentID uuid.UUID, input UpdateAgentInput) (*AgentView, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.Validation("name", "must not be empty")
	}
	if _, err := s.load(ctx, agentID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.TaxID != nil {
		updates["tax_id"] = *input.TaxID
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
	if err := s.repo.Update(ctx, agentID, updates); err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "agent name or tax id already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update agent")
	}
	return s.Get(ctx, agentID)
}

func (s *service) Delete(ctx context.Context, agentID uuid.UUID) error {
	if _, err := s.load(ctx, agentID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, agentID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete agent")
	}
	return nil
}

func (s *service) load(ctx context.Context, agentID uuid.UUID) (*models.InternationalAgent, error) {
	agent, err := s.repo.Find(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityAgent, agentID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent")
	}
	return agent, nil
}

func project(agent *models.InternationalAgent) *AgentView {
	return &AgentView{
		AgentID:      agent.AgentID,
		Name:         agent.Name,
		TaxID:        agent.TaxID,
		ContactName:  agent.ContactName,
		ContactPhone: agent.ContactPhone,
		ContactEmail: agent.ContactEmail,
	}
}
