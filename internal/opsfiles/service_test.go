package opsfiles

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rmartelo/freightops-backend/internal/refs"
	"github.com/rmartelo/freightops-backend/internal/testdb"
	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/enums"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
	"github.com/rmartelo/freightops-backend/pkg/outbox"
	"github.com/rmartelo/freightops-backend/pkg/pagination"
	"github.com/rmartelo/freightops-backend/pkg/types"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type recordingOutbox struct {
	events []outbox.DomainEvent
}

func (r *recordingOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	r.events = append(r.events, event)
	return nil
}

type serviceFixture struct {
	db     *gorm.DB
	svc    Service
	outbox *recordingOutbox
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db := testdb.New(t)
	events := &recordingOutbox{}
	svc, err := NewService(NewRepository(db), refs.NewStore(db), gormTxRunner{db: db}, events)
	require.NoError(t, err)
	return &serviceFixture{db: db, svc: svc, outbox: events}
}

func TestServiceCreate_buildsAggregate(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Acme Imports")
	status := seedStatus(t, f.db, 1, "open")
	p1 := seedPartner(t, f.db, "Partner One")
	p2 := seedPartner(t, f.db, "Partner Two")
	creator := seedUser(t, f.db, "Ana Op", "ana@example.com")

	qty := decimal.NewFromInt(5)
	comment := "booking received"
	view, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID:      client.ClientID,
		StatusID:      status.StatusID,
		CreatorUserID: &creator.UserID,
		PartnerIDs:    []uuid.UUID{p1.PartnerID, p2.PartnerID},
		Comment:       &comment,
		Packages:      []PackageInput{{Quantity: &qty, Units: "boxes"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Imports", view.Client.Name)
	assert.Equal(t, "open", view.Status.StatusName)
	require.Len(t, view.Partners, 2)
	got := map[uuid.UUID]bool{}
	for _, p := range view.Partners {
		got[p.PartnerID] = true
	}
	assert.True(t, got[p1.PartnerID])
	assert.True(t, got[p2.PartnerID])
	require.Len(t, view.Packaging, 1)
	assert.Equal(t, "boxes", view.Packaging[0].Units)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "booking received", view.Comments[0].Content)
	require.NotNil(t, view.Comments[0].Author)
	assert.Equal(t, creator.UserID, view.Comments[0].Author.UserID)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, enums.EventOpsFileCreated, f.outbox.events[0].EventType)
	assert.Equal(t, view.OpID, f.outbox.events[0].AggregateID)
}

func TestServiceCreate_unknownReferenceIsAtomic(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Atomic Client")
	status := seedStatus(t, f.db, 1, "open")
	missingCarrier := uuid.New()

	_, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID:  client.ClientID,
		StatusID:  status.StatusID,
		CarrierID: &missingCarrier,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeReferenceNotFound))

	var count int64
	require.NoError(t, f.db.Model(&models.OpsFile{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, f.outbox.events)

	list, err := f.svc.List(ctx, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, list.OpsFiles)
}

func TestServiceCreate_unknownPartnerRollsBackEverything(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Partner Client")
	status := seedStatus(t, f.db, 1, "open")
	known := seedPartner(t, f.db, "Known Partner")

	_, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID:   client.ClientID,
		StatusID:   status.StatusID,
		PartnerIDs: []uuid.UUID{known.PartnerID, uuid.New()},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeReferenceNotFound))

	var files, links int64
	require.NoError(t, f.db.Model(&models.OpsFile{}).Count(&files).Error)
	require.NoError(t, f.db.Model(&models.OpsFilePartnerLink{}).Count(&links).Error)
	assert.Zero(t, files)
	assert.Zero(t, links)
}

func TestServiceCreate_invalidInput(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	badType := enums.OpType("teleport")
	_, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID: uuid.New(),
		StatusID: 1,
		OpType:   &badType,
		Packages: []PackageInput{{Units: "  "}},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestServiceUpdate_excludeUnsetLeavesPackagingAlone(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Update Client")
	status := seedStatus(t, f.db, 1, "open")

	qty := decimal.NewFromInt(3)
	created, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID: client.ClientID,
		StatusID: status.StatusID,
		Packages: []PackageInput{{Quantity: &qty, Units: "pallets"}},
	})
	require.NoError(t, err)
	require.Len(t, created.Packaging, 1)
	originalPackageID := created.Packaging[0].PackageID

	description := "coffee beans"
	updated, err := f.svc.Update(ctx, created.OpID, UpdateOpsFileInput{
		CargoDescription: &description,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.CargoDescription)
	assert.Equal(t, "coffee beans", *updated.CargoDescription)
	require.Len(t, updated.Packaging, 1)
	assert.Equal(t, originalPackageID, updated.Packaging[0].PackageID)
	assert.Equal(t, "pallets", updated.Packaging[0].Units)
}

func TestServiceUpdate_emptyPackagingListClears(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Clear Client")
	status := seedStatus(t, f.db, 1, "open")

	created, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID: client.ClientID,
		StatusID: status.StatusID,
		Packages: []PackageInput{{Units: "drums"}, {Units: "sacks"}},
	})
	require.NoError(t, err)
	require.Len(t, created.Packaging, 2)

	empty := []PackageInput{}
	updated, err := f.svc.Update(ctx, created.OpID, UpdateOpsFileInput{Packages: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Packaging)
}

func TestServiceUpdate_partnerSetReplacement(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Partner Flow Client")
	status := seedStatus(t, f.db, 1, "open")
	p1 := seedPartner(t, f.db, "Flow One")
	p2 := seedPartner(t, f.db, "Flow Two")
	p3 := seedPartner(t, f.db, "Flow Three")

	created, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID:   client.ClientID,
		StatusID:   status.StatusID,
		PartnerIDs: []uuid.UUID{p1.PartnerID, p2.PartnerID},
	})
	require.NoError(t, err)
	require.Len(t, created.Partners, 2)

	newSet := []uuid.UUID{p2.PartnerID, p3.PartnerID}
	updated, err := f.svc.Update(ctx, created.OpID, UpdateOpsFileInput{PartnerIDs: &newSet})
	require.NoError(t, err)
	require.Len(t, updated.Partners, 2)
	got := map[uuid.UUID]bool{}
	for _, p := range updated.Partners {
		got[p.PartnerID] = true
	}
	assert.False(t, got[p1.PartnerID])
	assert.True(t, got[p2.PartnerID])
	assert.True(t, got[p3.PartnerID])

	// No partners_id key at all: the set stays as it was.
	description := "untouched partners"
	after, err := f.svc.Update(ctx, created.OpID, UpdateOpsFileInput{CargoDescription: &description})
	require.NoError(t, err)
	require.Len(t, after.Partners, 2)
	got = map[uuid.UUID]bool{}
	for _, p := range after.Partners {
		got[p.PartnerID] = true
	}
	assert.True(t, got[p2.PartnerID])
	assert.True(t, got[p3.PartnerID])
}

func TestServiceUpdate_idempotent(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Idempotent Client")
	status := seedStatus(t, f.db, 1, "open")
	partner := seedPartner(t, f.db, "Idempotent Partner")

	created, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID: client.ClientID,
		StatusID: status.StatusID,
	})
	require.NoError(t, err)

	voyage := "VY-102"
	set := []uuid.UUID{partner.PartnerID}
	input := UpdateOpsFileInput{Voyage: &voyage, PartnerIDs: &set}

	once, err := f.svc.Update(ctx, created.OpID, input)
	require.NoError(t, err)
	twice, err := f.svc.Update(ctx, created.OpID, input)
	require.NoError(t, err)

	require.NotNil(t, twice.Voyage)
	assert.Equal(t, *once.Voyage, *twice.Voyage)
	require.Len(t, twice.Partners, 1)
	assert.Equal(t, partner.PartnerID, twice.Partners[0].PartnerID)
}

func TestServiceUpdate_clearCarrierWithNull(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Carrier Client")
	status := seedStatus(t, f.db, 1, "open")
	carrier := seedCarrier(t, f.db, "CMA CGM")

	created, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID:  client.ClientID,
		StatusID:  status.StatusID,
		CarrierID: &carrier.CarrierID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Carrier)

	updated, err := f.svc.Update(ctx, created.OpID, UpdateOpsFileInput{
		CarrierID: types.NullableUUID{Valid: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Carrier)

	// Absent key leaves the carrier alone.
	reassigned, err := f.svc.Update(ctx, created.OpID, UpdateOpsFileInput{
		CarrierID: types.NullableUUID{Valid: true, Value: &carrier.CarrierID},
	})
	require.NoError(t, err)
	require.NotNil(t, reassigned.Carrier)

	voyage := "VY-7"
	after, err := f.svc.Update(ctx, created.OpID, UpdateOpsFileInput{Voyage: &voyage})
	require.NoError(t, err)
	require.NotNil(t, after.Carrier)
	assert.Equal(t, carrier.CarrierID, after.Carrier.CarrierID)
}

func TestServiceUpdate_unknownReferenceRollsBack(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Rollback Client")
	status := seedStatus(t, f.db, 1, "open")

	created, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID: client.ClientID,
		StatusID: status.StatusID,
	})
	require.NoError(t, err)

	missing := 999
	_, err = f.svc.Update(ctx, created.OpID, UpdateOpsFileInput{StatusID: &missing})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeReferenceNotFound))

	current, err := f.svc.Get(ctx, created.OpID)
	require.NoError(t, err)
	assert.Equal(t, status.StatusID, current.Status.StatusID)
}

func TestServiceUpdate_notFound(t *testing.T) {
	f := newServiceFixture(t)

	voyage := "VY-1"
	_, err := f.svc.Update(context.Background(), uuid.New(), UpdateOpsFileInput{Voyage: &voyage})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceDelete_cascade(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Delete Client")
	status := seedStatus(t, f.db, 1, "open")
	partner := seedPartner(t, f.db, "Delete Partner")
	comment := "delete me"

	created, err := f.svc.Create(ctx, CreateOpsFileInput{
		ClientID:   client.ClientID,
		StatusID:   status.StatusID,
		PartnerIDs: []uuid.UUID{partner.PartnerID},
		Comment:    &comment,
		Packages:   []PackageInput{{Units: "bales"}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.OpID))

	_, err = f.svc.Get(ctx, created.OpID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	var comments, packages, links, partners int64
	require.NoError(t, f.db.Model(&models.OpsFileComment{}).Count(&comments).Error)
	require.NoError(t, f.db.Model(&models.CargoPackage{}).Count(&packages).Error)
	require.NoError(t, f.db.Model(&models.OpsFilePartnerLink{}).Count(&links).Error)
	require.NoError(t, f.db.Model(&models.Partner{}).Count(&partners).Error)
	assert.Zero(t, comments)
	assert.Zero(t, packages)
	assert.Zero(t, links)
	assert.Equal(t, int64(1), partners)

	last := f.outbox.events[len(f.outbox.events)-1]
	assert.Equal(t, enums.EventOpsFileDeleted, last.EventType)

	err = f.svc.Delete(ctx, created.OpID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceList_newestFirst(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Order Client")
	status := seedStatus(t, f.db, 1, "open")

	now := time.Now().UTC()
	older := seedOpsFile(t, f.db, client, status, now.Add(-time.Hour))
	newer := seedOpsFile(t, f.db, client, status, now)

	list, err := f.svc.List(ctx, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, list.OpsFiles, 2)
	assert.Equal(t, newer.OpID, list.OpsFiles[0].OpID)
	assert.Equal(t, older.OpID, list.OpsFiles[1].OpID)

	_, err = f.svc.List(ctx, pagination.Params{Cursor: "not-base64!"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestServiceCommentManager(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Comment Client")
	status := seedStatus(t, f.db, 1, "open")
	author := seedUser(t, f.db, "Bo Writer", "bo@example.com")
	file := seedOpsFile(t, f.db, client, status, time.Now().UTC())

	_, err := f.svc.CreateComment(ctx, CreateCommentInput{OpID: uuid.New(), Content: "orphan"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = f.svc.CreateComment(ctx, CreateCommentInput{OpID: file.OpID, Content: "   "})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	created, err := f.svc.CreateComment(ctx, CreateCommentInput{
		OpID:         file.OpID,
		AuthorUserID: &author.UserID,
		Content:      "customs cleared",
	})
	require.NoError(t, err)
	assert.Equal(t, "customs cleared", created.Content)
	require.NotNil(t, created.Author)
	assert.Equal(t, "Bo Writer", created.Author.Name)

	newContent := "customs cleared, invoice sent"
	updated, err := f.svc.UpdateComment(ctx, created.CommentID, UpdateCommentInput{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, newContent, updated.Content)

	// Exclude-unset: an empty update body changes nothing.
	untouched, err := f.svc.UpdateComment(ctx, created.CommentID, UpdateCommentInput{})
	require.NoError(t, err)
	assert.Equal(t, newContent, untouched.Content)

	require.NoError(t, f.svc.DeleteComment(ctx, created.CommentID))
	_, err = f.svc.GetComment(ctx, created.CommentID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServicePackageManager(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	client := seedClient(t, f.db, "Pack Client")
	status := seedStatus(t, f.db, 1, "open")
	file := seedOpsFile(t, f.db, client, status, time.Now().UTC())

	_, err := f.svc.CreatePackage(ctx, CreatePackageInput{OpID: uuid.New(), Units: "boxes"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	qty := decimal.NewFromInt(12)
	created, err := f.svc.CreatePackage(ctx, CreatePackageInput{
		OpID:     file.OpID,
		Quantity: &qty,
		Units:    "boxes",
	})
	require.NoError(t, err)
	require.NotZero(t, created.PackageID)

	units := "cartons"
	updated, err := f.svc.UpdatePackage(ctx, created.PackageID, UpdatePackageInput{Units: &units})
	require.NoError(t, err)
	assert.Equal(t, "cartons", updated.Units)
	require.NotNil(t, updated.Quantity)
	assert.True(t, qty.Equal(*updated.Quantity))

	require.NoError(t, f.svc.DeletePackage(ctx, created.PackageID))
	err = f.svc.DeletePackage(ctx, created.PackageID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceStatuses(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	seedStatus(t, f.db, 1, "open")
	seedStatus(t, f.db, 5, "closed")

	statuses, err := f.svc.ListStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "open", statuses[0].StatusName)

	status, err := f.svc.GetStatus(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "closed", status.StatusName)

	_, err = f.svc.GetStatus(ctx, 9)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
