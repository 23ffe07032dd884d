package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rmartelo/freightops-backend/internal/agents"
	"github.com/rmartelo/freightops-backend/internal/auth"
	"github.com/rmartelo/freightops-backend/internal/carriers"
	"github.com/rmartelo/freightops-backend/internal/clients"
	"github.com/rmartelo/freightops-backend/internal/geodata"
	"github.com/rmartelo/freightops-backend/internal/opsfiles"
	"github.com/rmartelo/freightops-backend/internal/partners"
	"github.com/rmartelo/freightops-backend/internal/stats"
	"github.com/rmartelo/freightops-backend/internal/users"
	pkgauth "github.com/rmartelo/freightops-backend/pkg/auth"
	"github.com/rmartelo/freightops-backend/pkg/auth/session"
	"github.com/rmartelo/freightops-backend/pkg/config"
	"github.com/rmartelo/freightops-backend/pkg/logger"
	"github.com/rmartelo/freightops-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct {
	login func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	if s.login != nil {
		return s.login(ctx, req)
	}
	return &auth.LoginResponse{AccessToken: "token"}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return &auth.RefreshResponse{}, nil
}

func (stubAuthService) Logout(ctx context.Context, req auth.LogoutRequest) error {
	return nil
}

type stubOpsService struct{}

func (stubOpsService) Create(ctx context.Context, input opsfiles.CreateOpsFileInput) (*opsfiles.OpsFileView, error) {
	panic("unimplemented")
}

func (stubOpsService) Get(ctx context.Context, opID uuid.UUID) (*opsfiles.OpsFileView, error) {
	panic("unimplemented")
}

func (stubOpsService) List(ctx context.Context, params pagination.Params) (*opsfiles.OpsFileList, error) {
	return &opsfiles.OpsFileList{}, nil
}

func (stubOpsService) Update(ctx context.Context, opID uuid.UUID, input opsfiles.UpdateOpsFileInput) (*opsfiles.OpsFileView, error) {
	panic("unimplemented")
}

func (stubOpsService) Delete(ctx context.Context, opID uuid.UUID) error {
	panic("unimplemented")
}

func (stubOpsService) CreateComment(ctx context.Context, input opsfiles.CreateCommentInput) (*opsfiles.CommentView, error) {
	panic("unimplemented")
}

func (stubOpsService) GetComment(ctx context.Context, commentID uuid.UUID) (*opsfiles.CommentView, error) {
	panic("unimplemented")
}

func (stubOpsService) UpdateComment(ctx context.Context, commentID uuid.UUID, input opsfiles.UpdateCommentInput) (*opsfiles.CommentView, error) {
	panic("unimplemented")
}

func (stubOpsService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	panic("unimplemented")
}

func (stubOpsService) CreatePackage(ctx context.Context, input opsfiles.CreatePackageInput) (*opsfiles.PackageView, error) {
	panic("unimplemented")
}

func (stubOpsService) GetPackage(ctx context.Context, packageID int64) (*opsfiles.PackageView, error) {
	panic("unimplemented")
}

func (stubOpsService) UpdatePackage(ctx context.Context, packageID int64, input opsfiles.UpdatePackageInput) (*opsfiles.PackageView, error) {
	panic("unimplemented")
}

func (stubOpsService) DeletePackage(ctx context.Context, packageID int64) error {
	panic("unimplemented")
}

func (stubOpsService) ListStatuses(ctx context.Context) ([]opsfiles.StatusView, error) {
	return []opsfiles.StatusView{}, nil
}

func (stubOpsService) GetStatus(ctx context.Context, statusID int) (*opsfiles.StatusView, error) {
	panic("unimplemented")
}

type stubClientsService struct{}

func (stubClientsService) Create(ctx context.Context, input clients.CreateClientInput) (*clients.ClientView, error) {
	panic("unimplemented")
}

func (stubClientsService) Get(ctx context.Context, clientID uuid.UUID) (*clients.ClientView, error) {
	panic("unimplemented")
}

func (stubClientsService) List(ctx context.Context) ([]clients.ClientView, error) {
	return []clients.ClientView{}, nil
}

func (stubClientsService) Update(ctx context.Context, clientID uuid.UUID, input clients.UpdateClientInput) (*clients.ClientView, error) {
	panic("unimplemented")
}

func (stubClientsService) Delete(ctx context.Context, clientID uuid.UUID) error {
	panic("unimplemented")
}

type stubCarriersService struct{}

func (stubCarriersService) Create(ctx context.Context, input carriers.CreateCarrierInput) (*carriers.CarrierView, error) {
	panic("unimplemented")
}

func (stubCarriersService) Get(ctx context.Context, carrierID uuid.UUID) (*carriers.CarrierView, error) {
	panic("unimplemented")
}

func (stubCarriersService) List(ctx context.Context) ([]carriers.CarrierView, error) {
	return []carriers.CarrierView{}, nil
}

func (stubCarriersService) Update(ctx context.Context, carrierID uuid.UUID, input carriers.UpdateCarrierInput) (*carriers.CarrierView, error) {
	panic("unimplemented")
}

func (stubCarriersService) Delete(ctx context.Context, carrierID uuid.UUID) error {
	panic("unimplemented")
}

type stubAgentsService struct{}

func (stubAgentsService) Create(ctx context.Context, input agents.CreateAgentInput) (*agents.AgentView, error) {
	panic("unimplemented")
}

func (stubAgentsService) Get(ctx context.Context, agentID uuid.UUID) (*agents.AgentView, error) {
	panic("unimplemented")
}

func (stubAgentsService) List(ctx context.Context) ([]agents.AgentView, error) {
	return []agents.AgentView{}, nil
}

func (stubAgentsService) Update(ctx context.Context, agentID uuid.UUID, input agents.UpdateAgentInput) (*agents.AgentView, error) {
	panic("unimplemented")
}

func (stubAgentsService) Delete(ctx context.Context, agentID uuid.UUID) error {
	panic("unimplemented")
}

type stubPartnersService struct{}

func (stubPartnersService) CreateType(ctx context.Context, input partners.CreatePartnerTypeInput) (*partners.PartnerTypeView, error) {
	panic("unimplemented")
}

func (stubPartnersService) GetType(ctx context.Context, partnerTypeID string) (*partners.PartnerTypeView, error) {
	panic("unimplemented")
}

func (stubPartnersService) ListTypes(ctx context.Context) ([]partners.PartnerTypeView, error) {
	return []partners.PartnerTypeView{}, nil
}

func (stubPartnersService) Create(ctx context.Context, input partners.CreatePartnerInput) (*partners.PartnerView, error) {
	panic("unimplemented")
}

func (stubPartnersService) Get(ctx context.Context, partnerID uuid.UUID) (*partners.PartnerView, error) {
	panic("unimplemented")
}

func (stubPartnersService) List(ctx context.Context, params pagination.Params) (*partners.PartnerList, error) {
	return &partners.PartnerList{}, nil
}

func (stubPartnersService) Update(ctx context.Context, partnerID uuid.UUID, input partners.UpdatePartnerInput) (*partners.PartnerView, error) {
	panic("unimplemented")
}

func (stubPartnersService) Delete(ctx context.Context, partnerID uuid.UUID) error {
	panic("unimplemented")
}

func (stubPartnersService) CreateContact(ctx context.Context, partnerID uuid.UUID, input partners.ContactInput) (*partners.ContactView, error) {
	panic("unimplemented")
}

func (stubPartnersService) UpdateContact(ctx context.Context, contactID uuid.UUID, input partners.UpdateContactInput) (*partners.ContactView, error) {
	panic("unimplemented")
}

func (stubPartnersService) DeleteContact(ctx context.Context, contactID uuid.UUID) error {
	panic("unimplemented")
}

type stubGeodataService struct{}

func (stubGeodataService) Get(ctx context.Context, countryID int) (*geodata.CountryView, error) {
	panic("unimplemented")
}

func (stubGeodataService) List(ctx context.Context) ([]geodata.CountryView, error) {
	return []geodata.CountryView{{CountryID: 1, Name: "Portugal", ISO2Code: "PT"}}, nil
}

type stubUsersService struct{}

func (stubUsersService) Create(ctx context.Context, input users.CreateUserInput) (*users.UserView, error) {
	panic("unimplemented")
}

func (stubUsersService) Get(ctx context.Context, userID uuid.UUID) (*users.UserView, error) {
	panic("unimplemented")
}

func (stubUsersService) List(ctx context.Context) ([]users.UserView, error) {
	return []users.UserView{}, nil
}

func (stubUsersService) Update(ctx context.Context, userID uuid.UUID, input users.UpdateUserInput) (*users.UserView, error) {
	panic("unimplemented")
}

func (stubUsersService) Delete(ctx context.Context, userID uuid.UUID) error {
	panic("unimplemented")
}

func (stubUsersService) ListRoles(ctx context.Context) ([]users.RoleView, error) {
	return []users.RoleView{}, nil
}

type stubStatsService struct{}

func (stubStatsService) Snapshot(ctx context.Context) (*stats.Snapshot, error) {
	return &stats.Snapshot{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
			RefreshTTLHours:   24,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       stubPinger{},
			Sessions: stubSessionChecker{},
		},
		Services{
			Auth:     stubAuthService{},
			OpsFiles: stubOpsService{},
			Clients:  stubClientsService{},
			Carriers: stubCarriersService{},
			Agents:   stubAgentsService{},
			Partners: stubPartnersService{},
			Geodata:  stubGeodataService{},
			Users:    stubUsersService{},
			Stats:    stubStatsService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	payload := pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "ops@example.com",
		JTI:    session.NewAccessID(),
	}
	if role != "" {
		payload.RoleID = &role
	}
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if got := resp.Header().Get("X-FreightOps-Env"); got != "test" {
		t.Fatalf("expected env header, got %q", got)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ops", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	for _, path := range []string{
		"/api/v1/ops",
		"/api/v1/ops/status",
		"/api/v1/stats",
		"/api/v1/clients",
		"/api/v1/carriers",
		"/api/v1/agents",
		"/api/v1/partners",
		"/api/v1/partners/types",
		"/api/v1/countries",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "ops"))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestUsersGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "ops"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "admin"))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestLoginRouteIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"email":"ops@example.com","password":"password1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login got %d", resp.Code)
	}
}
