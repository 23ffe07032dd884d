package opsfiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an ops-file repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOpsFile(ctx context.Context, file *models.OpsFile) error {
	if file.OpID == uuid.Nil {
		file.OpID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(file).Error
}

func (r *repository) FindOpsFile(ctx context.Context, opID uuid.UUID) (*models.OpsFile, error) {
	var file models.OpsFile
	err := r.preloadAggregate(r.db.WithContext(ctx)).
		Where("op_id = ?", opID).
		First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *repository) OpsFileExists(ctx context.Context, opID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OpsFile{}).
		Where("op_id = ?", opID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ListOpsFiles(ctx context.Context, params pagination.Params) ([]models.OpsFile, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.preloadAggregate(r.db.WithContext(ctx))
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND op_id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var files []models.OpsFile
	err = query.
		Order("created_at DESC").
		Order("op_id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&files).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(files) > limit {
		files = files[:limit]
		last := files[len(files)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.OpID,
		})
	}
	return files, nextCursor, nil
}

func (r *repository) UpdateOpsFile(ctx context.Context, opID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.OpsFile{}).
		Where("op_id = ?", opID).
		Updates(updates).Error
}

// DeleteOpsFile removes the aggregate root and everything it owns. The
// cascade is an explicit ordered sequence so it stays inside the ops
// namespace; referenced rows in other namespaces are never touched.
func (r *repository) DeleteOpsFile(ctx context.Context, opID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("op_id = ?", opID).Delete(&models.OpsFileComment{}).Error; err != nil {
		return err
	}
	if err := db.Where("op_id = ?", opID).Delete(&models.CargoPackage{}).Error; err != nil {
		return err
	}
	if err := db.Where("op_id = ?", opID).Delete(&models.OpsFilePartnerLink{}).Error; err != nil {
		return err
	}
	if err := db.Where("op_id = ?", opID).Delete(&models.OpsFileAgentLink{}).Error; err != nil {
		return err
	}
	return db.Where("op_id = ?", opID).Delete(&models.OpsFile{}).Error
}

func (r *repository) ReplacePartnerLinks(ctx context.Context, opID uuid.UUID, partnerIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("op_id = ?", opID).Delete(&models.OpsFilePartnerLink{}).Error; err != nil {
		return err
	}
	if len(partnerIDs) == 0 {
		return nil
	}
	links := make([]models.OpsFilePartnerLink, 0, len(partnerIDs))
	for _, partnerID := range partnerIDs {
		links = append(links, models.OpsFilePartnerLink{OpID: opID, PartnerID: partnerID})
	}
	return db.Create(&links).Error
}

func (r *repository) ReplaceAgentLinks(ctx context.Context, opID uuid.UUID, agentIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("op_id = ?", opID).Delete(&models.OpsFileAgentLink{}).Error; err != nil {
		return err
	}
	if len(agentIDs) == 0 {
		return nil
	}
	links := make([]models.OpsFileAgentLink, 0, len(agentIDs))
	for _, agentID := range agentIDs {
		links = append(links, models.OpsFileAgentLink{OpID: opID, AgentID: agentID})
	}
	return db.Create(&links).Error
}

// ReplacePackages clears the packaging set and recreates it. Surviving lines
// get new package ids; the set is the unit of replacement, not the row.
func (r *repository) ReplacePackages(ctx context.Context, opID uuid.UUID, packages []models.CargoPackage) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("op_id = ?", opID).Delete(&models.CargoPackage{}).Error; err != nil {
		return err
	}
	if len(packages) == 0 {
		return nil
	}
	return db.Create(&packages).Error
}

func (r *repository) CreatePackages(ctx context.Context, packages []models.CargoPackage) error {
	if len(packages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&packages).Error
}

func (r *repository) CreateComment(ctx context.Context, comment *models.OpsFileComment) error {
	if comment.CommentID == uuid.Nil {
		comment.CommentID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(comment).Error
}

func (r *repository) FindComment(ctx context.Context, commentID uuid.UUID) (*models.OpsFileComment, error) {
	var comment models.OpsFileComment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("comment_id = ?", commentID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *repository) UpdateComment(ctx context.Context, commentID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.OpsFileComment{}).
		Where("comment_id = ?", commentID).
		Updates(updates).Error
}

func (r *repository) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Delete(&models.OpsFileComment{}).Error
}

func (r *repository) CreatePackage(ctx context.Context, pkg *models.CargoPackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *repository) FindPackage(ctx context.Context, packageID int64) (*models.CargoPackage, error) {
	var pkg models.CargoPackage
	err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID).
		First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) UpdatePackage(ctx context.Context, packageID int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.CargoPackage{}).
		Where("package_id = ?", packageID).
		Updates(updates).Error
}

func (r *repository) DeletePackage(ctx context.Context, packageID int64) error {
	return r.db.WithContext(ctx).
		Where("package_id = ?", packageID).
		Delete(&models.CargoPackage{}).Error
}

func (r *repository) ListStatuses(ctx context.Context) ([]models.OpsStatus, error) {
	var statuses []models.OpsStatus
	err := r.db.WithContext(ctx).
		Order("status_id ASC").
		Find(&statuses).Error
	return statuses, err
}

func (r *repository) FindStatus(ctx context.Context, statusID int) (*models.OpsStatus, error) {
	var status models.OpsStatus
	err := r.db.WithContext(ctx).
		Where("status_id = ?", statusID).
		First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *repository) preloadAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Client").
		Preload("Status").
		Preload("Carrier").
		Preload("Creator").
		Preload("Assignee").
		Preload("OriginCountry").
		Preload("DestinationCountry").
		Preload("Partners").
		Preload("Agents").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author").
		Preload("Packages", func(db *gorm.DB) *gorm.DB {
			return db.Order("package_id ASC")
		})
}
