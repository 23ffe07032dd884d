package stats

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rmartelo/freightops-backend/pkg/config"
	"github.com/rmartelo/freightops-backend/pkg/db/models"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
)

// Snapshot aggregates the dashboard counters in a single shape.
type Snapshot struct {
	Clients      int64 `json:"clients"`
	Partners     int64 `json:"partners"`
	Carriers     int64 `json:"carriers"`
	Agents       int64 `json:"agents"`
	OpsFiles     int64 `json:"ops_files"`
	OpenOpsFiles int64 `json:"open_ops_files"`
	ClosedFiles  int64 `json:"closed_ops_files"`
}

// Repository runs the aggregate count queries backing the snapshot.
type Repository interface {
	CountClients(ctx context.Context) (int64, error)
	CountPartners(ctx context.Context) (int64, error)
	CountCarriers(ctx context.Context) (int64, error)
	CountAgents(ctx context.Context) (int64, error)
	CountOpsFiles(ctx context.Context) (int64, error)
	CountOpsFilesByStatus(ctx context.Context, statusID int) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a stats repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) count(ctx context.Context, model any) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Count(&count).Error
	return count, err
}

func (r *repository) CountClients(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Client{})
}

func (r *repository) CountPartners(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Partner{})
}

func (r *repository) CountCarriers(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Carrier{})
}

func (r *repository) CountAgents(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.InternationalAgent{})
}

func (r *repository) CountOpsFiles(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.OpsFile{})
}

func (r *repository) CountOpsFilesByStatus(ctx context.Context, statusID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OpsFile{}).
		Where("status_id = ?", statusID).
		Count(&count).Error
	return count, err
}

// Service produces the statistics snapshot.
type Service interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type service struct {
	repo Repository
	ops  config.OpsConfig
}

// NewService builds the stats service.
func NewService(repo Repository, ops config.OpsConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stats repository required")
	}
	return &service{repo: repo, ops: ops}, nil
}

func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{}
	steps := []struct {
		name string
		run  func(context.Context) (int64, error)
		dest *int64
	}{
		{"clients", s.repo.CountClients, &snapshot.Clients},
		{"partners", s.repo.CountPartners, &snapshot.Partners},
		{"carriers", s.repo.CountCarriers, &snapshot.Carriers},
		{"agents", s.repo.CountAgents, &snapshot.Agents},
		{"ops files", s.repo.CountOpsFiles, &snapshot.OpsFiles},
	}
	for _, step := range steps {
		count, err := step.run(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count "+step.name)
		}
		*step.dest = count
	}

	// With no closed status configured, every file counts as open.
	if s.ops.ClosedStatusID != 0 {
		closed, err := s.repo.CountOpsFilesByStatus(ctx, s.ops.ClosedStatusID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count closed ops files")
		}
		snapshot.ClosedFiles = closed
	}
	snapshot.OpenOpsFiles = snapshot.OpsFiles - snapshot.ClosedFiles

	return snapshot, nil
}
