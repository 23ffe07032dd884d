package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartelo/freightops-backend/pkg/config"
	dbpkg "github.com/rmartelo/freightops-backend/pkg/db"
	"github.com/rmartelo/freightops-backend/pkg/db/models"
	"github.com/rmartelo/freightops-backend/pkg/enums"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
	"github.com/rmartelo/freightops-backend/pkg/security"
)

// Service manages operator accounts and role lookups.
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*UserView, error)
	Get(ctx context.Context, userID uuid.UUID) (*UserView, error)
	List(ctx context.Context) ([]UserView, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*UserView, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	ListRoles(ctx context.Context) ([]RoleView, error)
}

type service struct {
	repo     Repository
	password config.PasswordConfig
}

// NewService builds the users service.
func NewService(repo Repository, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, password: password}, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserView, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, pkgerrors.Validation("name", "is required")
	}
	if email == "" {
		return nil, pkgerrors.Validation("email", "is required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.Validation("password", "must be at least 8 characters")
	}
	if input.RoleID != nil {
		if err := s.requireRole(ctx, *input.RoleID); err != nil {
			return nil, err
		}
	}

	hashed, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		RoleID:         input.RoleID,
		HashedPassword: hashed,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	return s.Get(ctx, user.UserID)
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(enums.EntityUser, userID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	view := Project(user)
	return &view, nil
}

func (s *service) List(ctx context.Context) ([]UserView, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	views := make([]UserView, 0, len(rows))
	for i := range rows {
		views = append(views, Project(&rows[i]))
	}
	return views, nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*UserView, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.Validation("name", "must not be empty")
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) == "" {
		return nil, pkgerrors.Validation("email", "must not be empty")
	}
	if input.Password != nil && len(*input.Password) < 8 {
		return nil, pkgerrors.Validation("password", "must be at least 8 characters")
	}

	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if input.RoleID != nil {
		if err := s.requireRole(ctx, *input.RoleID); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.RoleID != nil {
		updates["role_id"] = *input.RoleID
	}
	if input.Disabled != nil {
		updates["disabled"] = *input.Disabled
	}
	if input.Password != nil {
		hashed, err := security.HashPassword(*input.Password, s.password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		updates["hashed_password"] = hashed
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	return s.Get(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

func (s *service) ListRoles(ctx context.Context) ([]RoleView, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list roles")
	}
	views := make([]RoleView, 0, len(roles))
	for _, role := range roles {
		views = append(views, RoleView{RoleID: role.RoleID, RoleName: role.RoleName})
	}
	return views, nil
}

func (s *service) requireRole(ctx context.Context, roleID string) error {
	if _, err := s.repo.FindRole(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.ReferenceNotFound(enums.EntityRole, roleID)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load role")
	}
	return nil
}

// Project maps a user row into its public shape.
func Project(user *models.User) UserView {
	view := UserView{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Disabled:  user.Disabled,
		CreatedAt: user.CreatedAt,
	}
	if user.Role != nil {
		view.Role = &RoleView{RoleID: user.Role.RoleID, RoleName: user.Role.RoleName}
	}
	return view
}
