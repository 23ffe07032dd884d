package partners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartelo/freightops-backend/internal/refs"
	dbpkg "github.com/rmartelo/freightops-backend/pkg/db"
	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/enums"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
	"github.com/rmartelo/freightops-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes partner, partner type and partner contact operations.
type Service interface {
	CreateType(ctx context.Context, input CreatePartnerTypeInput) (*PartnerTypeView, error)
	GetType(ctx context.Context, partnerTypeID string) (*PartnerTypeView, error)
	ListTypes(ctx context.Context) ([]PartnerTypeView, error)

	Create(ctx context.Context, input CreatePartnerInput) (*PartnerView, error)
	Get(ctx context.Context, partnerID uuid.UUID) (*PartnerView, error)
	List(ctx context.Context, params pagination.Params) (*PartnerList, error)
	Update(ctx context.Context, partnerID uuid.UUID, input UpdatePartnerInput) (*PartnerView, error)
	Delete(ctx context.Context, partnerID uuid.UUID) error

	CreateContact(ctx context.Context, partnerID uuid.UUID, input ContactInput) (*ContactView, error)
	UpdateContact(ctx context.Context, contactID uuid.UUID, input UpdateContactInput) (*ContactView, error)
	DeleteContact(ctx context.Context, contactID uuid.UUID) error
}

type service struct {
	repo Repository
	refs refs.Store
	tx   txRunner
}

// NewService builds the partners service.
func NewService(repo Repository, store refs.Store, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("partners repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("reference store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, refs: store, tx: tx}, nil
}

func (s *service) CreateType(ctx context.Context, input CreatePartnerTypeInput) (*PartnerTypeView, error) {
	id := strings.TrimSpace(input.PartnerTypeID)
	name := strings.TrimSpace(input.Name)
	if id == "" {
		return nil, pkgerrors.Validation("partner_type_id", "is required")
	}
	if name == "" {
		return nil, pkgerrors.Validation("name", "is required")
	}

	partnerType := &models.PartnerType{
		PartnerTypeID: id,
		Name:          name,
		Description:   input.Description,
	}
	if err := s.repo.CreateType(ctx, partnerType); err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "partner type already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create partner type")
	}
	view := projectType(partnerType)
	return &view, nil
}

func (s *service) GetType(ctx context.Context, partnerTypeID string) (*PartnerTypeView, error) {
	partnerType, err := s.repo.FindType(ctx, partnerTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityPartnerType, partnerTypeID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner type")
	}
	view := projectType(partnerType)
	return &view, nil
}

func (s *service) ListTypes(ctx context.Context) ([]PartnerTypeView, error) {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partner types")
	}
	views := make([]PartnerTypeView, 0, len(types))
	for i := range types {
		views = append(views, projectType(&types[i]))
	}
	return views, nil
}

func (s *service) Create(ctx context.Context, input CreatePartnerInput) (*PartnerView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.Validation("name", "is required")
	}
	if strings.TrimSpace(input.PartnerTypeID) == "" {
		return nil, pkgerrors.Validation("partner_type_id", "is required")
	}
	for i, contact := range input.Contacts {
		if strings.TrimSpace(contact.Name) == "" {
			return nil, pkgerrors.Validation(fmt.Sprintf("contacts[%d].name", i), "is required")
		}
	}

	partner := &models.Partner{
		Name:          name,
		TaxID:         input.TaxID,
		Webpage:       input.Webpage,
		PartnerTypeID: strings.TrimSpace(input.PartnerTypeID),
		CountryID:     input.CountryID,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		store := s.refs.WithTx(tx)

		if _, err := repo.FindType(ctx, partner.PartnerTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.ReferenceNotFound(enums.EntityPartnerType, partner.PartnerTypeID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner type")
		}
		if input.CountryID != nil {
			if _, err := store.GetCountry(ctx, *input.CountryID); err != nil {
				return err
			}
		}

		if err := repo.CreatePartner(ctx, partner); err != nil {
			if dbpkg.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "partner name or tax id already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create partner")
		}

		contacts := make([]models.PartnerContact, 0, len(input.Contacts))
		for _, contact := range input.Contacts {
			contacts = append(contacts, models.PartnerContact{
				PartnerID: partner.PartnerID,
				Name:      strings.TrimSpace(contact.Name),
				Position:  contact.Position,
				Email:     contact.Email,
				Mobile:    contact.Mobile,
				Phone:     contact.Phone,
			})
		}
		if err := repo.CreateContacts(ctx, contacts); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create partner contacts")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, partner.PartnerID)
}

func (s *service) Get(ctx context.Context, partnerID uuid.UUID) (*PartnerView, error) {
	partner, err := s.repo.FindPartner(ctx, partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityPartner, partnerID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}
	view := projectPartner(partner)
	return &view, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*PartnerList, error) {
	if strings.TrimSpace(params.Cursor) != "" {
		if _, err := pagination.ParseCursor(params.Cursor); err != nil {
			return nil, pkgerrors.Validation("cursor", "is not a valid cursor")
		}
	}

	partners, nextCursor, err := s.repo.ListPartners(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partners")
	}
	views := make([]PartnerView, 0, len(partners))
	for i := range partners {
		views = append(views, projectPartner(&partners[i]))
	}
	return &PartnerList{Partners: views, NextCursor: nextCursor}, nil
}

func (s *service) Update(ctx context.Context, partnerID uuid.UUID, input UpdatePartnerInput) (*PartnerView, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.Validation("name", "must not be empty")
	}
	if input.PartnerTypeID != nil && strings.TrimSpace(*input.PartnerTypeID) == "" {
		return nil, pkgerrors.Validation("partner_type_id", "must not be empty")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		store := s.refs.WithTx(tx)

		if _, err := repo.FindPartner(ctx, partnerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NotFound(enums.EntityPartner, partnerID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
		}
		if input.PartnerTypeID != nil {
			if _, err := repo.FindType(ctx, strings.TrimSpace(*input.PartnerTypeID)); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.ReferenceNotFound(enums.EntityPartnerType, *input.PartnerTypeID)
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner type")
			}
		}
		if input.CountryID != nil {
			if _, err := store.GetCountry(ctx, *input.CountryID); err != nil {
				return err
			}
		}

		updates := map[string]any{}
		if input.Name != nil {
			updates["name"] = strings.TrimSpace(*input.Name)
		}
		if input.TaxID != nil {
			updates["tax_id"] = *input.TaxID
		}
		if input.Webpage != nil {
			updates["webpage"] = *input.Webpage
		}
		if input.PartnerTypeID != nil {
			updates["partner_type_id"] = strings.TrimSpace(*input.PartnerTypeID)
		}
		if input.CountryID != nil {
			updates["country_id"] = *input.CountryID
		}
		if input.Disabled != nil {
			updates["disabled"] = *input.Disabled
		}
		if err := repo.UpdatePartner(ctx, partnerID, updates); err != nil {
			if dbpkg.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "partner name or tax id already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update partner")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, partnerID)
}

func (s *service) Delete(ctx context.Context, partnerID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindPartner(ctx, partnerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NotFound(enums.EntityPartner, partnerID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
		}
		if err := repo.DeletePartner(ctx, partnerID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete partner")
		}
		return nil
	})
}

func (s *service) CreateContact(ctx context.Context, partnerID uuid.UUID, input ContactInput) (*ContactView, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.Validation("name", "is required")
	}

	contact := models.PartnerContact{
		PartnerID: partnerID,
		Name:      strings.TrimSpace(input.Name),
		Position:  input.Position,
		Email:     input.Email,
		Mobile:    input.Mobile,
		Phone:     input.Phone,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindPartner(ctx, partnerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NotFound(enums.EntityPartner, partnerID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
		}
		contacts := []models.PartnerContact{contact}
		if err := repo.CreateContacts(ctx, contacts); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contact")
		}
		contact = contacts[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := projectContact(&contact)
	return &view, nil
}

func (s *service) UpdateContact(ctx context.Context, contactID uuid.UUID, input UpdateContactInput) (*ContactView, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.Validation("name", "must not be empty")
	}
	if _, err := s.loadContact(ctx, contactID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Position != nil {
		updates["position"] = *input.Position
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Mobile != nil {
		updates["mobile"] = *input.Mobile
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Disabled != nil {
		updates["disabled"] = *input.Disabled
	}
	if err := s.repo.UpdateContact(ctx, contactID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contact")
	}

	contact, err := s.loadContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	view := projectContact(contact)
	return &view, nil
}

func (s *service) DeleteContact(ctx context.Context, contactID uuid.UUID) error {
	if _, err := s.loadContact(ctx, contactID); err != nil {
		return err
	}
	if err := s.repo.DeleteContact(ctx, contactID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contact")
	}
	return nil
}

func (s *service) loadContact(ctx context.Context, contactID uuid.UUID) (*models.PartnerContact, error) {
	contact, err := s.repo.FindContact(ctx, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityContact, contactID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contact")
	}
	return contact, nil
}

func projectType(partnerType *models.PartnerType) PartnerTypeView {
	return PartnerTypeView{
		PartnerTypeID: partnerType.PartnerTypeID,
		Name:          partnerType.Name,
		Description:   partnerType.Description,
	}
}

func projectPartner(partner *models.Partner) PartnerView {
	view := PartnerView{
		PartnerID:   partner.PartnerID,
		Name:        partner.Name,
		TaxID:       partner.TaxID,
		Webpage:     partner.Webpage,
		Disabled:    partner.Disabled,
		PartnerType: projectType(&partner.PartnerType),
		CountryID:   partner.CountryID,
		Contacts:    make([]ContactView, 0, len(partner.Contacts)),
		CreatedAt:   partner.CreatedAt,
		UpdatedAt:   partner.UpdatedAt,
	}
	for i := range partner.Contacts {
		view.Contacts = append(view.Contacts, projectContact(&partner.Contacts[i]))
	}
	return view
}

func projectContact(contact *models.PartnerContact) ContactView {
	return ContactView{
		PartnerContactID: contact.PartnerContactID,
		PartnerID:        contact.PartnerID,
		Name:             contact.Name,
		Position:         contact.Position,
		Email:            contact.Email,
		Mobile:           contact.Mobile,
		Phone:            contact.Phone,
		Disabled:         contact.Disabled,
	}
}
