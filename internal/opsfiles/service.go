package opsfiles

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/rmartelo/freightops-backend/internal/refs"
	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/enums"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
	"github.com/rmartelo/freightops-backend/pkg/outbox"
	"github.com/rmartelo/freightops-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service exposes the ops-file aggregate operations: creation, partial
// reconciliation, projection, deletion, and the independent comment and
// packaging managers. Every mutation validates its foreign references before
// writing and runs as one transaction.
type Service interface {
	Create(ctx context.Context, input CreateOpsFileInput) (*OpsFileView, error)
	Get(ctx context.Context, opID uuid.UUID) (*OpsFileView, error)
	List(ctx context.Context, params pagination.Params) (*OpsFileList, error)
	Update(ctx context.Context, opID uuid.UUID, input UpdateOpsFileInput) (*OpsFileView, error)
	Delete(ctx context.Context, opID uuid.UUID) error

	CreateComment(ctx context.Context, input CreateCommentInput) (*CommentView, error)
	GetComment(ctx context.Context, commentID uuid.UUID) (*CommentView, error)
	UpdateComment(ctx context.Context, commentID uuid.UUID, input UpdateCommentInput) (*CommentView, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error

	CreatePackage(ctx context.Context, input CreatePackageInput) (*PackageView, error)
	GetPackage(ctx context.Context, packageID int64) (*PackageView, error)
	UpdatePackage(ctx context.Context, packageID int64, input UpdatePackageInput) (*PackageView, error)
	DeletePackage(ctx context.Context, packageID int64) error

	ListStatuses(ctx context.Context) ([]StatusView, error)
	GetStatus(ctx context.Context, statusID int) (*StatusView, error)
}

type service struct {
	repo   Repository
	refs   refs.Store
	tx     txRunner
	outbox outboxPublisher
}

// OpsFileCreatedEvent is emitted when a new ops file lands.
type OpsFileCreatedEvent struct {
	OpID     uuid.UUID `json:"op_id"`
	ClientID uuid.UUID `json:"client_id"`
	StatusID int       `json:"status_id"`
}

// OpsFileUpdatedEvent names the fields an update touched.
type OpsFileUpdatedEvent struct {
	OpID   uuid.UUID `json:"op_id"`
	Fields []string  `json:"fields"`
}

// OpsFileDeletedEvent is emitted when an ops file and its children are removed.
type OpsFileDeletedEvent struct {
	OpID uuid.UUID `json:"op_id"`
}

// NewService builds the ops-file service with the required dependencies.
func NewService(repo Repository, store refs.Store, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ops files repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("reference store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		repo:   repo,
		refs:   store,
		tx:     tx,
		outbox: outbox,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOpsFileInput) (*OpsFileView, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	partnerIDs := dedupeIDs(input.PartnerIDs)
	agentIDs := dedupeIDs(input.AgentIDs)
	opID := uuid.New()

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		store := s.refs.WithTx(tx)
		repo := s.repo.WithTx(tx)

		if err := validateCreateRefs(ctx, store, input, partnerIDs, agentIDs); err != nil {
			return err
		}

		file := buildOpsFile(opID, input)
		if err := repo.CreateOpsFile(ctx, file); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ops file")
		}
		if err := repo.ReplacePartnerLinks(ctx, opID, partnerIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link partners")
		}
		if err := repo.ReplaceAgentLinks(ctx, opID, agentIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link agents")
		}
		if len(input.Packages) > 0 {
			if err := repo.CreatePackages(ctx, buildPackages(opID, input.Packages)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create packaging")
			}
		}
		if input.Comment != nil {
			comment := &models.OpsFileComment{
				OpID:         opID,
				AuthorUserID: input.CreatorUserID,
				Content:      strings.TrimSpace(*input.Comment),
			}
			if err := repo.CreateComment(ctx, comment); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create initial comment")
			}
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOpsFileCreated,
			AggregateType: enums.AggregateOpsFile,
			AggregateID:   opID,
			Version:       1,
			Actor:         actorFrom(input.CreatorUserID),
			Data: OpsFileCreatedEvent{
				OpID:     opID,
				ClientID: input.ClientID,
				StatusID: input.StatusID,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return s.loadView(ctx, opID)
}

func (s *service) Get(ctx context.Context, opID uuid.UUID) (*OpsFileView, error) {
	return s.loadView(ctx, opID)
}

func (s *service) List(ctx context.Context, params pagination.Params) (*OpsFileList, error) {
	if strings.TrimSpace(params.Cursor) != "" {
		if _, err := pagination.ParseCursor(params.Cursor); err != nil {
			return nil, pkgerrors.Validation("cursor", "is not a valid cursor")
		}
	}

	files, nextCursor, err := s.repo.ListOpsFiles(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ops files")
	}

	views := make([]OpsFileView, 0, len(files))
	for i := range files {
		views = append(views, ProjectOpsFile(&files[i]))
	}
	return &OpsFileList{OpsFiles: views, NextCursor: nextCursor}, nil
}

func (s *service) Update(ctx context.Context, opID uuid.UUID, input UpdateOpsFileInput) (*OpsFileView, error) {
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		store := s.refs.WithTx(tx)
		repo := s.repo.WithTx(tx)

		if err := s.requireOpsFile(ctx, repo, opID); err != nil {
			return err
		}
		if err := validateUpdateRefs(ctx, store, input); err != nil {
			return err
		}

		updates, fields := buildUpdates(input)
		if err := repo.UpdateOpsFile(ctx, opID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ops file")
		}
		if input.PartnerIDs != nil {
			if err := repo.ReplacePartnerLinks(ctx, opID, dedupeIDs(*input.PartnerIDs)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace partners")
			}
			fields = append(fields, "partners")
		}
		if input.AgentIDs != nil {
			if err := repo.ReplaceAgentLinks(ctx, opID, dedupeIDs(*input.AgentIDs)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace agents")
			}
			fields = append(fields, "agents")
		}
		if input.Packages != nil {
			if err := repo.ReplacePackages(ctx, opID, buildPackages(opID, *input.Packages)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace packaging")
			}
			fields = append(fields, "packaging")
		}

		sort.Strings(fields)
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOpsFileUpdated,
			AggregateType: enums.AggregateOpsFile,
			AggregateID:   opID,
			Version:       1,
			Data:          OpsFileUpdatedEvent{OpID: opID, Fields: fields},
		})
	})
	if err != nil {
		return nil, err
	}

	return s.loadView(ctx, opID)
}

func (s *service) Delete(ctx context.Context, opID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := s.requireOpsFile(ctx, repo, opID); err != nil {
			return err
		}
		if err := repo.DeleteOpsFile(ctx, opID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete ops file")
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOpsFileDeleted,
			AggregateType: enums.AggregateOpsFile,
			AggregateID:   opID,
			Version:       1,
			Data:          OpsFileDeletedEvent{OpID: opID},
		})
	})
}

func (s *service) CreateComment(ctx context.Context, input CreateCommentInput) (*CommentView, error) {
	if input.OpID == uuid.Nil {
		return nil, pkgerrors.Validation("op_id", "is required")
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, pkgerrors.Validation("content", "must not be empty")
	}

	comment := &models.OpsFileComment{
		OpID:         input.OpID,
		AuthorUserID: input.AuthorUserID,
		Content:      content,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		store := s.refs.WithTx(tx)
		repo := s.repo.WithTx(tx)

		if err := s.requireOpsFile(ctx, repo, input.OpID); err != nil {
			return err
		}
		if input.AuthorUserID != nil {
			if _, err := store.GetUser(ctx, *input.AuthorUserID); err != nil {
				return err
			}
		}
		if err := repo.CreateComment(ctx, comment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create comment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadComment(ctx, comment.CommentID)
}

func (s *service) GetComment(ctx context.Context, commentID uuid.UUID) (*CommentView, error) {
	return s.loadComment(ctx, commentID)
}

func (s *service) UpdateComment(ctx context.Context, commentID uuid.UUID, input UpdateCommentInput) (*CommentView, error) {
	if input.Content != nil && strings.TrimSpace(*input.Content) == "" {
		return nil, pkgerrors.Validation("content", "must not be empty")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindComment(ctx, commentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NotFound(enums.EntityComment, commentID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comment")
		}
		if input.Content == nil {
			return nil
		}
		updates := map[string]any{"content": strings.TrimSpace(*input.Content)}
		if err := repo.UpdateComment(ctx, commentID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update comment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadComment(ctx, commentID)
}

func (s *service) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindComment(ctx, commentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NotFound(enums.EntityComment, commentID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comment")
		}
		if err := repo.DeleteComment(ctx, commentID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete comment")
		}
		return nil
	})
}

func (s *service) CreatePackage(ctx context.Context, input CreatePackageInput) (*PackageView, error) {
	if input.OpID == uuid.Nil {
		return nil, pkgerrors.Validation("op_id", "is required")
	}
	units := strings.TrimSpace(input.Units)
	if units == "" {
		return nil, pkgerrors.Validation("units", "is required")
	}

	pkg := &models.CargoPackage{
		OpID:     input.OpID,
		Quantity: input.Quantity,
		Units:    units,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := s.requireOpsFile(ctx, repo, input.OpID); err != nil {
			return err
		}
		if err := repo.CreatePackage(ctx, pkg); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create package")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := ProjectPackage(pkg)
	return &view, nil
}

func (s *service) GetPackage(ctx context.Context, packageID int64) (*PackageView, error) {
	return s.loadPackage(ctx, packageID)
}

func (s *service) UpdatePackage(ctx context.Context, packageID int64, input UpdatePackageInput) (*PackageView, error) {
	if input.Units != nil && strings.TrimSpace(*input.Units) == "" {
		return nil, pkgerrors.Validation("units", "must not be empty")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindPackage(ctx, packageID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NotFound(enums.EntityPackage, packageID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
		}

		updates := map[string]any{}
		if input.Quantity != nil {
			updates["quantity"] = *input.Quantity
		}
		if input.Units != nil {
			updates["units"] = strings.TrimSpace(*input.Units)
		}
		if len(updates) == 0 {
			return nil
		}
		updates["updated_at"] = time.Now()
		if err := repo.UpdatePackage(ctx, packageID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update package")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadPackage(ctx, packageID)
}

func (s *service) DeletePackage(ctx context.Context, packageID int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindPackage(ctx, packageID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.NotFound(enums.EntityPackage, packageID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
		}
		if err := repo.DeletePackage(ctx, packageID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete package")
		}
		return nil
	})
}

func (s *service) ListStatuses(ctx context.Context) ([]StatusView, error) {
	statuses, err := s.repo.ListStatuses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list statuses")
	}
	views := make([]StatusView, 0, len(statuses))
	for i := range statuses {
		views = append(views, ProjectStatus(&statuses[i]))
	}
	return views, nil
}

func (s *service) GetStatus(ctx context.Context, statusID int) (*StatusView, error) {
	status, err := s.repo.FindStatus(ctx, statusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityStatus, statusID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load status")
	}
	view := ProjectStatus(status)
	return &view, nil
}

func (s *service) loadView(ctx context.Context, opID uuid.UUID) (*OpsFileView, error) {
	file, err := s.repo.FindOpsFile(ctx, opID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityOpsFile, opID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ops file")
	}
	view := ProjectOpsFile(file)
	return &view, nil
}

func (s *service) loadComment(ctx context.Context, commentID uuid.UUID) (*CommentView, error) {
	comment, err := s.repo.FindComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityComment, commentID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comment")
	}
	view := ProjectComment(comment)
	return &view, nil
}

func (s *service) loadPackage(ctx context.Context, packageID int64) (*PackageView, error) {
	pkg, err := s.repo.FindPackage(ctx, packageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityPackage, packageID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
	}
	view := ProjectPackage(pkg)
	return &view, nil
}

func (s *service) requireOpsFile(ctx context.Context, repo Repository, opID uuid.UUID) error {
	exists, err := repo.OpsFileExists(ctx, opID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check ops file")
	}
	if !exists {
		return pkgerrors.NotFound(enums.EntityOpsFile, opID)
	}
	return nil
}

func validateCreateInput(input CreateOpsFileInput) error {
	var errs error
	if input.ClientID == uuid.Nil {
		errs = multierr.Append(errs, pkgerrors.Validation("client_id", "is required"))
	}
	if input.StatusID == 0 {
		errs = multierr.Append(errs, pkgerrors.Validation("status_id", "is required"))
	}
	if input.OpType != nil && !input.OpType.Valid() {
		errs = multierr.Append(errs, pkgerrors.Validation("op_type", "must be one of maritime, air, road, train, other"))
	}
	if input.Comment != nil && strings.TrimSpace(*input.Comment) == "" {
		errs = multierr.Append(errs, pkgerrors.Validation("comment", "must not be empty when present"))
	}
	errs = multierr.Append(errs, validatePackageInputs(input.Packages))
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid ops file payload")
	}
	return nil
}

func validateUpdateInput(input UpdateOpsFileInput) error {
	var errs error
	if input.ClientID != nil && *input.ClientID == uuid.Nil {
		errs = multierr.Append(errs, pkgerrors.Validation("client_id", "must not be null"))
	}
	if input.StatusID != nil && *input.StatusID == 0 {
		errs = multierr.Append(errs, pkgerrors.Validation("status_id", "must not be null"))
	}
	if input.OpType != nil && !input.OpType.Valid() {
		errs = multierr.Append(errs, pkgerrors.Validation("op_type", "must be one of maritime, air, road, train, other"))
	}
	if input.Packages != nil {
		errs = multierr.Append(errs, validatePackageInputs(*input.Packages))
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid ops file payload")
	}
	return nil
}

func validatePackageInputs(packages []PackageInput) error {
	var errs error
	for i, pkg := range packages {
		if strings.TrimSpace(pkg.Units) == "" {
			errs = multierr.Append(errs, pkgerrors.Validation(fmt.Sprintf("packages[%d].units", i), "is required"))
		}
	}
	return errs
}

// validateCreateRefs resolves every supplied foreign id before any row is
// written, so a miss aborts the transaction with nothing persisted.
func validateCreateRefs(ctx context.Context, store refs.Store, input CreateOpsFileInput, partnerIDs, agentIDs []uuid.UUID) error {
	if _, err := store.GetClient(ctx, input.ClientID); err != nil {
		return err
	}
	if _, err := store.GetStatus(ctx, input.StatusID); err != nil {
		return err
	}
	if input.CarrierID != nil {
		if _, err := store.GetCarrier(ctx, *input.CarrierID); err != nil {
			return err
		}
	}
	if input.CreatorUserID != nil {
		if _, err := store.GetUser(ctx, *input.CreatorUserID); err != nil {
			return err
		}
	}
	if input.AssigneeUserID != nil {
		if _, err := store.GetUser(ctx, *input.AssigneeUserID); err != nil {
			return err
		}
	}
	if input.OriginCountryID != nil {
		if _, err := store.GetCountry(ctx, *input.OriginCountryID); err != nil {
			return err
		}
	}
	if input.DestinationCountryID != nil {
		if _, err := store.GetCountry(ctx, *input.DestinationCountryID); err != nil {
			return err
		}
	}
	for _, partnerID := range partnerIDs {
		if _, err := store.GetPartner(ctx, partnerID); err != nil {
			return err
		}
	}
	for _, agentID := range agentIDs {
		if _, err := store.GetAgent(ctx, agentID); err != nil {
			return err
		}
	}
	return nil
}

func validateUpdateRefs(ctx context.Context, store refs.Store, input UpdateOpsFileInput) error {
	if input.ClientID != nil {
		if _, err := store.GetClient(ctx, *input.ClientID); err != nil {
			return err
		}
	}
	if input.StatusID != nil {
		if _, err := store.GetStatus(ctx, *input.StatusID); err != nil {
			return err
		}
	}
	if input.CarrierID.Valid && input.CarrierID.Value != nil {
		if _, err := store.GetCarrier(ctx, *input.CarrierID.Value); err != nil {
			return err
		}
	}
	if input.CreatorUserID.Valid && input.CreatorUserID.Value != nil {
		if _, err := store.GetUser(ctx, *input.CreatorUserID.Value); err != nil {
			return err
		}
	}
	if input.AssigneeUserID.Valid && input.AssigneeUserID.Value != nil {
		if _, err := store.GetUser(ctx, *input.AssigneeUserID.Value); err != nil {
			return err
		}
	}
	if input.OriginCountryID.Valid && input.OriginCountryID.Value != nil {
		if _, err := store.GetCountry(ctx, *input.OriginCountryID.Value); err != nil {
			return err
		}
	}
	if input.DestinationCountryID.Valid && input.DestinationCountryID.Value != nil {
		if _, err := store.GetCountry(ctx, *input.DestinationCountryID.Value); err != nil {
			return err
		}
	}
	if input.PartnerIDs != nil {
		for _, partnerID := range dedupeIDs(*input.PartnerIDs) {
			if _, err := store.GetPartner(ctx, partnerID); err != nil {
				return err
			}
		}
	}
	if input.AgentIDs != nil {
		for _, agentID := range dedupeIDs(*input.AgentIDs) {
			if _, err := store.GetAgent(ctx, agentID); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildOpsFile(opID uuid.UUID, input CreateOpsFileInput) *models.OpsFile {
	return &models.OpsFile{
		OpID:     opID,
		ClientID: input.ClientID,
		StatusID: input.StatusID,

		CarrierID:            input.CarrierID,
		CreatorUserID:        input.CreatorUserID,
		AssigneeUserID:       input.AssigneeUserID,
		OriginCountryID:      input.OriginCountryID,
		DestinationCountryID: input.DestinationCountryID,

		OpType:              input.OpType,
		OriginLocation:      input.OriginLocation,
		DestinationLocation: input.DestinationLocation,

		EstimatedTimeDeparture: input.EstimatedTimeDeparture,
		ActualTimeDeparture:    input.ActualTimeDeparture,
		EstimatedTimeArrival:   input.EstimatedTimeArrival,
		ActualTimeArrival:      input.ActualTimeArrival,

		CargoDescription: input.CargoDescription,
		GrossWeightValue: input.GrossWeightValue,
		GrossWeightUnit:  input.GrossWeightUnit,
		VolumeValue:      input.VolumeValue,
		VolumeUnit:       input.VolumeUnit,

		MasterTransportDoc: input.MasterTransportDoc,
		HouseTransportDoc:  input.HouseTransportDoc,
		Incoterm:           input.Incoterm,
		Modality:           input.Modality,
		Voyage:             input.Voyage,
	}
}

func buildPackages(opID uuid.UUID, inputs []PackageInput) []models.CargoPackage {
	packages := make([]models.CargoPackage, 0, len(inputs))
	for _, input := range inputs {
		packages = append(packages, models.CargoPackage{
			OpID:     opID,
			Quantity: input.Quantity,
			Units:    strings.TrimSpace(input.Units),
		})
	}
	return packages
}

// buildUpdates maps only the fields present in the input to column updates.
// updated_at is always refreshed so the aggregate records the mutation even
// when only a collection was replaced.
func buildUpdates(input UpdateOpsFileInput) (map[string]any, []string) {
	updates := map[string]any{"updated_at": time.Now()}
	fields := make([]string, 0)

	set := func(column string, value any) {
		updates[column] = value
		fields = append(fields, column)
	}

	if input.ClientID != nil {
		set("client_id", *input.ClientID)
	}
	if input.StatusID != nil {
		set("status_id", *input.StatusID)
	}
	if input.CarrierID.Valid {
		set("carrier_id", input.CarrierID.Value)
	}
	if input.CreatorUserID.Valid {
		set("creator_user_id", input.CreatorUserID.Value)
	}
	if input.AssigneeUserID.Valid {
		set("assignee_user_id", input.AssigneeUserID.Value)
	}
	if input.OriginCountryID.Valid {
		set("origin_country_id", input.OriginCountryID.Value)
	}
	if input.DestinationCountryID.Valid {
		set("destination_country_id", input.DestinationCountryID.Value)
	}
	if input.OpType != nil {
		set("op_type", *input.OpType)
	}
	if input.OriginLocation != nil {
		set("origin_location", *input.OriginLocation)
	}
	if input.DestinationLocation != nil {
		set("destination_location", *input.DestinationLocation)
	}
	if input.EstimatedTimeDeparture != nil {
		set("estimated_time_departure", *input.EstimatedTimeDeparture)
	}
	if input.ActualTimeDeparture != nil {
		set("actual_time_departure", *input.ActualTimeDeparture)
	}
	if input.EstimatedTimeArrival != nil {
		set("estimated_time_arrival", *input.EstimatedTimeArrival)
	}
	if input.ActualTimeArrival != nil {
		set("actual_time_arrival", *input.ActualTimeArrival)
	}
	if input.CargoDescription != nil {
		set("cargo_description", *input.CargoDescription)
	}
	if input.GrossWeightValue != nil {
		set("gross_weight_value", *input.GrossWeightValue)
	}
	if input.GrossWeightUnit != nil {
		set("gross_weight_unit", *input.GrossWeightUnit)
	}
	if input.VolumeValue != nil {
		set("volume_value", *input.VolumeValue)
	}
	if input.VolumeUnit != nil {
		set("volume_unit", *input.VolumeUnit)
	}
	if input.MasterTransportDoc != nil {
		set("master_transport_doc", *input.MasterTransportDoc)
	}
	if input.HouseTransportDoc != nil {
		set("house_transport_doc", *input.HouseTransportDoc)
	}
	if input.Incoterm != nil {
		set("incoterm", *input.Incoterm)
	}
	if input.Modality != nil {
		set("modality", *input.Modality)
	}
	if input.Voyage != nil {
		set("voyage", *input.Voyage)
	}

	return updates, fields
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func actorFrom(userID *uuid.UUID) *outbox.ActorRef {
	if userID == nil {
		return nil
	}
	return &outbox.ActorRef{UserID: userID.String()}
}
