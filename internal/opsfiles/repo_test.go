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

	"github.com/rmartelo/freightops-backend/internal/testdb"
	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/pagination"
)

func seedClient(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()

	client := &models.Client{ClientID: uuid.New(), Name: name}
	require.NoError(t, db.Create(client).Error)
	return client
}

func seedStatus(t *testing.T, db *gorm.DB, id int, name string) *models.OpsStatus {
	t.Helper()

	status := &models.OpsStatus{StatusID: id, StatusName: name}
	require.NoError(t, db.Create(status).Error)
	return status
}

func seedCarrier(t *testing.T, db *gorm.DB, name string) *models.Carrier {
	t.Helper()

	carrier := &models.Carrier{CarrierID: uuid.New(), Name: name, Type: "shipping_line"}
	require.NoError(t, db.Create(carrier).Error)
	return carrier
}

func seedPartner(t *testing.T, db *gorm.DB, name string) *models.Partner {
	t.Helper()

	partnerType := &models.PartnerType{PartnerTypeID: "forwarder_" + name, Name: "Forwarder " + name}
	require.NoError(t, db.Create(partnerType).Error)
	partner := &models.Partner{
		PartnerID:     uuid.New(),
		Name:          name,
		PartnerTypeID: partnerType.PartnerTypeID,
	}
	require.NoError(t, db.Create(partner).Error)
	return partner
}

func seedAgent(t *testing.T, db *gorm.DB, name string) *models.InternationalAgent {
	t.Helper()

	agent := &models.InternationalAgent{AgentID: uuid.New(), Name: name}
	require.NoError(t, db.Create(agent).Error)
	return agent
}

func seedCountry(t *testing.T, db *gorm.DB, id int, name, iso2, iso3 string) *models.Country {
	t.Helper()

	country := &models.Country{CountryID: id, Name: name, ISO2Code: iso2, ISO3Code: iso3}
	require.NoError(t, db.Create(country).Error)
	return country
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := &models.User{
		UserID:         uuid.New(),
		Name:           name,
		Email:          email,
		HashedPassword: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedOpsFile(t *testing.T, db *gorm.DB, client *models.Client, status *models.OpsStatus, created time.Time) *models.OpsFile {
	t.Helper()

	file := &models.OpsFile{
		OpID:      uuid.New(),
		ClientID:  client.ClientID,
		StatusID:  status.StatusID,
		CreatedAt: created,
		UpdatedAt: created,
	}
	repo := NewRepository(db)
	require.NoError(t, repo.CreateOpsFile(context.Background(), file))
	return file
}

func TestRepositoryCreateAndFindOpsFile(t *testing.T) {
	db := testdb.New(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "Acme Imports")
	status := seedStatus(t, db, 1, "open")
	carrier := seedCarrier(t, db, "Maersk")
	partner := seedPartner(t, db, "Global Freight")
	agent := seedAgent(t, db, "Shanghai Office")
	origin := seedCountry(t, db, 152, "Chile", "CL", "CHL")
	creator := seedUser(t, db, "Ana Op", "ana@example.com")

	qty := decimal.NewFromInt(5)
	file := &models.OpsFile{
		OpID:            uuid.New(),
		ClientID:        client.ClientID,
		StatusID:        status.StatusID,
		CarrierID:       &carrier.CarrierID,
		CreatorUserID:   &creator.UserID,
		OriginCountryID: &origin.CountryID,
	}
	require.NoError(t, repo.CreateOpsFile(ctx, file))
	require.NoError(t, repo.ReplacePartnerLinks(ctx, file.OpID, []uuid.UUID{partner.PartnerID}))
	require.NoError(t, repo.ReplaceAgentLinks(ctx, file.OpID, []uuid.UUID{agent.AgentID}))
	require.NoError(t, repo.CreatePackages(ctx, []models.CargoPackage{
		{OpID: file.OpID, Quantity: &qty, Units: "boxes"},
	}))
	require.NoError(t, repo.CreateComment(ctx, &models.OpsFileComment{
		OpID:         file.OpID,
		AuthorUserID: &creator.UserID,
		Content:      "booking confirmed",
	}))

	loaded, err := repo.FindOpsFile(ctx, file.OpID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Imports", loaded.Client.Name)
	assert.Equal(t, "open", loaded.Status.StatusName)
	require.NotNil(t, loaded.Carrier)
	assert.Equal(t, "Maersk", loaded.Carrier.Name)
	require.NotNil(t, loaded.Creator)
	assert.Equal(t, "ana@example.com", loaded.Creator.Email)
	require.NotNil(t, loaded.OriginCountry)
	assert.Equal(t, "CL", loaded.OriginCountry.ISO2Code)
	require.Len(t, loaded.Partners, 1)
	assert.Equal(t, partner.PartnerID, loaded.Partners[0].PartnerID)
	require.Len(t, loaded.Agents, 1)
	require.Len(t, loaded.Packages, 1)
	assert.Equal(t, "boxes", loaded.Packages[0].Units)
	require.Len(t, loaded.Comments, 1)
	assert.Equal(t, "booking confirmed", loaded.Comments[0].Content)
	require.NotNil(t, loaded.Comments[0].Author)
	assert.Equal(t, "Ana Op", loaded.Comments[0].Author.Name)
}

func TestRepositoryFindOpsFile_missing(t *testing.T) {
	db := testdb.New(t)
	repo := NewRepository(db)

	_, err := repo.FindOpsFile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.OpsFileExists(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepositoryListOpsFiles_newestFirstPagination(t *testing.T) {
	db := testdb.New(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "List Client")
	status := seedStatus(t, db, 1, "open")

	now := time.Now().UTC()
	oldest := seedOpsFile(t, db, client, status, now.Add(-2*time.Hour))
	middle := seedOpsFile(t, db, client, status, now.Add(-time.Hour))
	newest := seedOpsFile(t, db, client, status, now)

	first, cursor, err := repo.ListOpsFiles(ctx, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, newest.OpID, first[0].OpID)
	assert.Equal(t, middle.OpID, first[1].OpID)
	require.NotEmpty(t, cursor)

	second, next, err := repo.ListOpsFiles(ctx, pagination.Params{Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, oldest.OpID, second[0].OpID)
	assert.Empty(t, next)
}

func TestRepositoryReplacePartnerLinks(t *testing.T) {
	db := testdb.New(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "Replace Client")
	status := seedStatus(t, db, 1, "open")
	file := seedOpsFile(t, db, client, status, time.Now().UTC())

	p1 := seedPartner(t, db, "Partner One")
	p2 := seedPartner(t, db, "Partner Two")
	p3 := seedPartner(t, db, "Partner Three")

	require.NoError(t, repo.ReplacePartnerLinks(ctx, file.OpID, []uuid.UUID{p1.PartnerID, p2.PartnerID}))
	loaded, err := repo.FindOpsFile(ctx, file.OpID)
	require.NoError(t, err)
	require.Len(t, loaded.Partners, 2)

	require.NoError(t, repo.ReplacePartnerLinks(ctx, file.OpID, []uuid.UUID{p2.PartnerID, p3.PartnerID}))
	loaded, err = repo.FindOpsFile(ctx, file.OpID)
	require.NoError(t, err)
	require.Len(t, loaded.Partners, 2)
	got := map[uuid.UUID]bool{}
	for _, p := range loaded.Partners {
		got[p.PartnerID] = true
	}
	assert.True(t, got[p2.PartnerID])
	assert.True(t, got[p3.PartnerID])
	assert.False(t, got[p1.PartnerID])

	require.NoError(t, repo.ReplacePartnerLinks(ctx, file.OpID, nil))
	loaded, err = repo.FindOpsFile(ctx, file.OpID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Partners)
}

func TestRepositoryReplacePackages_newIdentities(t *testing.T) {
	db := testdb.New(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "Pack Client")
	status := seedStatus(t, db, 1, "open")
	file := seedOpsFile(t, db, client, status, time.Now().UTC())

	qty := decimal.NewFromInt(10)
	require.NoError(t, repo.CreatePackages(ctx, []models.CargoPackage{
		{OpID: file.OpID, Quantity: &qty, Units: "pallets"},
	}))
	loaded, err := repo.FindOpsFile(ctx, file.OpID)
	require.NoError(t, err)
	require.Len(t, loaded.Packages, 1)
	oldID := loaded.Packages[0].PackageID

	require.NoError(t, repo.ReplacePackages(ctx, file.OpID, []models.CargoPackage{
		{OpID: file.OpID, Quantity: &qty, Units: "pallets"},
	}))
	loaded, err = repo.FindOpsFile(ctx, file.OpID)
	require.NoError(t, err)
	require.Len(t, loaded.Packages, 1)
	assert.NotEqual(t, oldID, loaded.Packages[0].PackageID)

	require.NoError(t, repo.ReplacePackages(ctx, file.OpID, nil))
	loaded, err = repo.FindOpsFile(ctx, file.OpID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Packages)
}

func TestRepositoryDeleteOpsFile_cascadeStaysInOpsNamespace(t *testing.T) {
	db := testdb.New(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "Cascade Client")
	status := seedStatus(t, db, 1, "open")
	partner := seedPartner(t, db, "Cascade Partner")
	agent := seedAgent(t, db, "Cascade Agent")
	file := seedOpsFile(t, db, client, status, time.Now().UTC())

	require.NoError(t, repo.ReplacePartnerLinks(ctx, file.OpID, []uuid.UUID{partner.PartnerID}))
	require.NoError(t, repo.ReplaceAgentLinks(ctx, file.OpID, []uuid.UUID{agent.AgentID}))
	require.NoError(t, repo.CreatePackages(ctx, []models.CargoPackage{{OpID: file.OpID, Units: "drums"}}))
	require.NoError(t, repo.CreateComment(ctx, &models.OpsFileComment{OpID: file.OpID, Content: "to be removed"}))

	require.NoError(t, repo.DeleteOpsFile(ctx, file.OpID))

	_, err := repo.FindOpsFile(ctx, file.OpID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var comments, packages, partnerLinks, agentLinks int64
	require.NoError(t, db.Model(&models.OpsFileComment{}).Where("op_id = ?", file.OpID).Count(&comments).Error)
	require.NoError(t, db.Model(&models.CargoPackage{}).Where("op_id = ?", file.OpID).Count(&packages).Error)
	require.NoError(t, db.Model(&models.OpsFilePartnerLink{}).Where("op_id = ?", file.OpID).Count(&partnerLinks).Error)
	require.NoError(t, db.Model(&models.OpsFileAgentLink{}).Where("op_id = ?", file.OpID).Count(&agentLinks).Error)
	assert.Zero(t, comments)
	assert.Zero(t, packages)
	assert.Zero(t, partnerLinks)
	assert.Zero(t, agentLinks)

	var clients, partners, agents int64
	require.NoError(t, db.Model(&models.Client{}).Count(&clients).Error)
	require.NoError(t, db.Model(&models.Partner{}).Count(&partners).Error)
	require.NoError(t, db.Model(&models.InternationalAgent{}).Count(&agents).Error)
	assert.Equal(t, int64(1), clients)
	assert.Equal(t, int64(1), partners)
	assert.Equal(t, int64(1), agents)
}

func TestRepositoryCommentCRUD(t *testing.T) {
	db := testdb.New(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "Comment Client")
	status := seedStatus(t, db, 1, "open")
	file := seedOpsFile(t, db, client, status, time.Now().UTC())

	comment := &models.OpsFileComment{OpID: file.OpID, Content: "first note"}
	require.NoError(t, repo.CreateComment(ctx, comment))
	require.NotEqual(t, uuid.Nil, comment.CommentID)

	loaded, err := repo.FindComment(ctx, comment.CommentID)
	require.NoError(t, err)
	assert.Equal(t, "first note", loaded.Content)

	require.NoError(t, repo.UpdateComment(ctx, comment.CommentID, map[string]any{"content": "edited note"}))
	loaded, err = repo.FindComment(ctx, comment.CommentID)
	require.NoError(t, err)
	assert.Equal(t, "edited note", loaded.Content)

	require.NoError(t, repo.DeleteComment(ctx, comment.CommentID))
	_, err = repo.FindComment(ctx, comment.CommentID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryPackageCRUD(t *testing.T) {
	db := testdb.New(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "Package Client")
	status := seedStatus(t, db, 1, "open")
	file := seedOpsFile(t, db, client, status, time.Now().UTC())

	pkg := &models.CargoPackage{OpID: file.OpID, Units: "crates"}
	require.NoError(t, repo.CreatePackage(ctx, pkg))
	require.NotZero(t, pkg.PackageID)

	require.NoError(t, repo.UpdatePackage(ctx, pkg.PackageID, map[string]any{"units": "bundles"}))
	loaded, err := repo.FindPackage(ctx, pkg.PackageID)
	require.NoError(t, err)
	assert.Equal(t, "bundles", loaded.Units)

	require.NoError(t, repo.DeletePackage(ctx, pkg.PackageID))
	_, err = repo.FindPackage(ctx, pkg.PackageID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryStatuses(t *testing.T) {
	db := testdb.New(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedStatus(t, db, 2, "in_transit")
	seedStatus(t, db, 1, "open")
	seedStatus(t, db, 3, "closed")

	statuses, err := repo.ListStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.Equal(t, "open", statuses[0].StatusName)
	assert.Equal(t, "closed", statuses[2].StatusName)

	status, err := repo.FindStatus(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "in_transit", status.StatusName)

	_, err = repo.FindStatus(ctx, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
