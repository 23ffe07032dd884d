package partners

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/pagination"
)

// Repository persists partners, their types and their contacts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateType(ctx context.Context, partnerType *models.PartnerType) error
	FindType(ctx context.Context, partnerTypeID string) (*models.PartnerType, error)
	ListTypes(ctx context.Context) ([]models.PartnerType, error)

	CreatePartner(ctx context.Context, partner *models.Partner) error
	FindPartner(ctx context.Context, partnerID uuid.UUID) (*models.Partner, error)
	ListPartners(ctx context.Context, params pagination.Params) ([]models.Partner, string, error)
	UpdatePartner(ctx context.Context, partnerID uuid.UUID, updates map[string]any) error
	DeletePartner(ctx context.Context, partnerID uuid.UUID) error

	CreateContacts(ctx context.Context, contacts []models.PartnerContact) error
	FindContact(ctx context.Context, contactID uuid.UUID) (*models.PartnerContact, error)
	UpdateContact(ctx context.Context, contactID uuid.UUID, updates map[string]any) error
	DeleteContact(ctx context.Context, contactID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a partners repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateType(ctx context.Context, partnerType *models.PartnerType) error {
	return r.db.WithContext(ctx).Create(partnerType).Error
}

func (r *repository) FindType(ctx context.Context, partnerTypeID string) (*models.PartnerType, error) {
	var partnerType models.PartnerType
	err := r.db.WithContext(ctx).
		Where("partner_type_id = ?", partnerTypeID).
		First(&partnerType).Error
	if err != nil {
		return nil, err
	}
	return &partnerType, nil
}

func (r *repository) ListTypes(ctx context.Context) ([]models.PartnerType, error) {
	var types []models.PartnerType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) CreatePartner(ctx context.Context, partner *models.Partner) error {
	if partner.PartnerID == uuid.Nil {
		partner.PartnerID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Omit("PartnerType", "Country", "Contacts").
		Create(partner).Error
}

func (r *repository) FindPartner(ctx context.Context, partnerID uuid.UUID) (*models.Partner, error) {
	var partner models.Partner
	err := r.db.WithContext(ctx).
		Preload("PartnerType").
		Preload("Contacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("partner_id = ?", partnerID).
		First(&partner).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *repository) ListPartners(ctx context.Context, params pagination.Params) ([]models.Partner, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Preload("PartnerType").
		Preload("Contacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND partner_id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var partners []models.Partner
	err = query.
		Order("created_at DESC").
		Order("partner_id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&partners).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(partners) > limit {
		partners = partners[:limit]
		last := partners[len(partners)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.PartnerID,
		})
	}
	return partners, nextCursor, nil
}

func (r *repository) UpdatePartner(ctx context.Context, partnerID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Partner{}).
		Where("partner_id = ?", partnerID).
		Updates(updates).Error
}

// DeletePartner removes the partner and its contacts. Association links from
// ops files are cleared too so no dangling references remain.
func (r *repository) DeletePartner(ctx context.Context, partnerID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("partner_id = ?", partnerID).Delete(&models.PartnerContact{}).Error; err != nil {
		return err
	}
	if err := db.Where("partner_id = ?", partnerID).Delete(&models.OpsFilePartnerLink{}).Error; err != nil {
		return err
	}
	return db.Where("partner_id = ?", partnerID).Delete(&models.Partner{}).Error
}

func (r *repository) CreateContacts(ctx context.Context, contacts []models.PartnerContact) error {
	if len(contacts) == 0 {
		return nil
	}
	for i := range contacts {
		if contacts[i].PartnerContactID == uuid.Nil {
			contacts[i].PartnerContactID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&contacts).Error
}

func (r *repository) FindContact(ctx context.Context, contactID uuid.UUID) (*models.PartnerContact, error) {
	var contact models.PartnerContact
	err := r.db.WithContext(ctx).
		Where("partner_contact_id = ?", contactID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *repository) UpdateContact(ctx context.Context, contactID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.PartnerContact{}).
		Where("partner_contact_id = ?", contactID).
		Updates(updates).Error
}

func (r *repository) DeleteContact(ctx context.Context, contactID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("partner_contact_id = ?", contactID).
		Delete(&models.PartnerContact{}).Error
}
