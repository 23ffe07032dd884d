package opsfiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/pagination"
)

// Repository defines persistence operations for the ops-file aggregate and
// its owned children. FindOpsFile loads the full relation graph; the mutating
// methods touch exactly the rows named and leave transactional composition to
// the caller via WithTx.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOpsFile(ctx context.Context, file *models.OpsFile) error
	FindOpsFile(ctx context.Context, opID uuid.UUID) (*models.OpsFile, error)
	OpsFileExists(ctx context.Context, opID uuid.UUID) (bool, error)
	ListOpsFiles(ctx context.Context, params pagination.Params) ([]models.OpsFile, string, error)
	UpdateOpsFile(ctx context.Context, opID uuid.UUID, updates map[string]any) error
	DeleteOpsFile(ctx context.Context, opID uuid.UUID) error

	ReplacePartnerLinks(ctx context.Context, opID uuid.UUID, partnerIDs []uuid.UUID) error
	ReplaceAgentLinks(ctx context.Context, opID uuid.UUID, agentIDs []uuid.UUID) error
	ReplacePackages(ctx context.Context, opID uuid.UUID, packages []models.CargoPackage) error
	CreatePackages(ctx context.Context, packages []models.CargoPackage) error

	CreateComment(ctx context.Context, comment *models.OpsFileComment) error
	FindComment(ctx context.Context, commentID uuid.UUID) (*models.OpsFileComment, error)
	UpdateComment(ctx context.Context, commentID uuid.UUID, updates map[string]any) error
	DeleteComment(ctx context.Context, commentID uuid.UUID) error

	CreatePackage(ctx context.Context, pkg *models.CargoPackage) error
	FindPackage(ctx context.Context, packageID int64) (*models.CargoPackage, error)
	UpdatePackage(ctx context.Context, packageID int64, updates map[string]any) error
	DeletePackage(ctx context.Context, packageID int64) error

	ListStatuses(ctx context.Context) ([]models.OpsStatus, error)
	FindStatus(ctx context.Context, statusID int) (*models.OpsStatus, error)
}
