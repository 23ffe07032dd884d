package refs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/enums"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
)

// Store is the read-only lookup used to validate foreign references before
// any aggregate write. Every getter resolves the row or fails with a
// REFERENCE_NOT_FOUND error naming the kind and id.
type Store interface {
	WithTx(tx *gorm.DB) Store
	GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetCarrier(ctx context.Context, id uuid.UUID) (*models.Carrier, error)
	GetPartner(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	GetAgent(ctx context.Context, id uuid.UUID) (*models.InternationalAgent, error)
	GetCountry(ctx context.Context, id int) (*models.Country, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetStatus(ctx context.Context, id int) (*models.OpsStatus, error)
}

type store struct {
	db *gorm.DB
}

// NewStore builds a reference store bound to the provided DB.
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) WithTx(tx *gorm.DB) Store {
	if tx == nil {
		return s
	}
	return &store{db: tx}
}

func lookup[T any](ctx context.Context, db *gorm.DB, kind enums.EntityKind, column string, id any) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where(column+" = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ReferenceNotFound(kind, id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup "+string(kind))
	}
	return &row, nil
}

func (s *store) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return lookup[models.Client](ctx, s.db, enums.EntityClient, "client_id", id)
}

func (s *store) GetCarrier(ctx context.Context, id uuid.UUID) (*models.Carrier, error) {
	return lookup[models.Carrier](ctx, s.db, enums.EntityCarrier, "carrier_id", id)
}

func (s *store) GetPartner(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	return lookup[models.Partner](ctx, s.db, enums.EntityPartner, "partner_id", id)
}

func (s *store) GetAgent(ctx context.Context, id uuid.UUID) (*models.InternationalAgent, error) {
	return lookup[models.InternationalAgent](ctx, s.db, enums.EntityAgent, "agent_id", id)
}

func (s *store) GetCountry(ctx context.Context, id int) (*models.Country, error) {
	return lookup[models.Country](ctx, s.db, enums.EntityCountry, "country_id", id)
}

func (s *store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return lookup[models.User](ctx, s.db, enums.EntityUser, "user_id", id)
}

func (s *store) GetStatus(ctx context.Context, id int) (*models.OpsStatus, error) {
	return lookup[models.OpsStatus](ctx, s.db, enums.EntityStatus, "status_id", id)
}
