package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/auth"
	"github.com/punchamoorthee/backoffice/internal/domain"
	"github.com/punchamoorthee/backoffice/internal/models"
)

const defaultRole = "employee"

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	List(ctx context.Context, orderBy string) ([]domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, u domain.User) (domain.User, error)
	DeleteByUsername(ctx context.Context, username string) error
	UpdateAccess(ctx context.Context, id int64, access domain.AccessSettings) (domain.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type AuthService struct {
	users  UserRepository
	issuer *auth.Issuer
	logger *zap.Logger
}

func NewAuthService(users UserRepository, issuer *auth.Issuer, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, issuer: issuer, logger: logger}
}

var errBadCredentials = fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)

// Login verifies the credentials and issues a session token carrying the
// user's role and access lists.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return models.LoginResponse{}, invalid("username and password are required")
	}

	u, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, domain.ErrNotFound) {
		return models.LoginResponse{}, errBadCredentials
	}
	if err != nil {
		return models.LoginResponse{}, err
	}
	if !auth.CheckPassword(u.Password, req.Password) {
		return models.LoginResponse{}, errBadCredentials
	}

	role := u.Role
	if role == "" {
		role = defaultRole
	}
	systems := u.Access.Systems
	if systems == nil {
		systems = domain.DefaultSystems
	}
	pages := u.Access.Pages
	if pages == nil {
		pages = []string{}
	}

	// The session identifies users by login name; the display name column
	// is not surfaced.
	token, err := s.issuer.Sign(auth.Claims{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Username,
		Role:         role,
		SystemAccess: systems,
		PageAccess:   pages,
	})
	if err != nil {
		return models.LoginResponse{}, err
	}

	if err := s.users.TouchLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to record last login", zap.Int64("user_id", u.ID), zap.Error(err))
	}

	return models.LoginResponse{
		Token: token,
		User: models.SessionUser{
			ID:           u.ID,
			Username:     u.Username,
			Name:         u.Username,
			Role:         role,
			Email:        u.Email,
			Department:   u.Department,
			SystemAccess: systems,
			PageAccess:   pages,
		},
	}, nil
}

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func withAccessLists(u domain.User) domain.User {
	if u.Access.Systems == nil {
		u.Access.Systems = []string{}
	}
	if u.Access.Pages == nil {
		u.Access.Pages = []string{}
	}
	return u
}

// List returns every user newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx, "id")
}

// ListWithAccess returns every user by username with access lists filled in.
func (s *UserService) ListWithAccess(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx, "user_name")
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = withAccessLists(users[i])
	}
	return users, nil
}

func (s *UserService) GetWithAccess(ctx context.Context, rawID string) (domain.User, error) {
	id, err := parseInt64(rawID)
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return withAccessLists(u), nil
}

func (s *UserService) UpdateAccess(ctx context.Context, rawID string, req models.AccessRequest) (domain.User, error) {
	id, err := parseInt64(rawID)
	if err != nil {
		return domain.User{}, err
	}
	access := domain.AccessSettings{Systems: req.Systems, Pages: req.Pages}
	if access.Systems == nil {
		access.Systems = []string{}
	}
	if access.Pages == nil {
		access.Pages = []string{}
	}
	u, err := s.users.UpdateAccess(ctx, id, access)
	if err != nil {
		return domain.User{}, err
	}
	return withAccessLists(u), nil
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (domain.User, error) {
	if req.Username == "" || req.Password == "" {
		return domain.User{}, invalid("username and password are required")
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, err
	}
	role := req.Role
	if role == "" {
		role = defaultRole
	}
	name := req.Name
	if name == "" {
		name = req.Username
	}
	return s.users.Create(ctx, domain.User{
		Username: req.Username,
		Name:     name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
	})
}

// Update addresses the user by identifier, falling back to username. A
// numeric identifier is an id; anything else is a username.
func (s *UserService) Update(ctx context.Context, req models.UpdateUserRequest) (domain.User, error) {
	lookup := deref(req.Identifier)
	if lookup == "" {
		lookup = deref(req.Username)
	}
	if lookup == "" {
		return domain.User{}, invalid("identifier or username is required")
	}

	var (
		existing domain.User
		err      error
	)
	if id, convErr := strconv.ParseInt(lookup, 10, 64); convErr == nil {
		existing, err = s.users.Get(ctx, id)
	} else {
		existing, err = s.users.FindByUsername(ctx, lookup)
	}
	if err != nil {
		return domain.User{}, err
	}

	if req.Username != nil && *req.Username != "" {
		existing.Username = *req.Username
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Role != nil && *req.Role != "" {
		existing.Role = *req.Role
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return domain.User{}, err
		}
		existing.Password = hash
	}
	return s.users.Update(ctx, existing)
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	if username == "" {
		return invalid("username is required")
	}
	return s.users.DeleteByUsername(ctx, username)
}
