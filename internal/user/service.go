package user

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/auth"
)

// Repository defines the data access methods for users
type Repository interface {
	GetByID(id int64) (*User, error)
	ListAll() ([]*User, error)
	Create(u *User, passwordHash string) error
	Update(u *User) error
	EmailExists(email string) (bool, error)
}

// PasswordHasher abstracts credential hashing so the service stays free
// of crypto details.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Service covers the admin user directory: listing, provisioning and
// updating accounts.
type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) GetUserByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("user not found", "error", err, "user_id", id)
		return nil, errors.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) ListUsers() ([]*User, error) {
	users, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, errors.NewStorageError(err)
	}
	return users, nil
}

// ListApprovers narrows the directory to accounts that can carry
// approval rules.
func (s *Service) ListApprovers() ([]*User, error) {
	users, err := s.ListUsers()
	if err != nil {
		return nil, err
	}

	approvers := make([]*User, 0)
	for _, u := range users {
		if u.CanApprove() {
			approvers = append(approvers, u)
		}
	}
	return approvers, nil
}

func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "email", dto.Email)
		return nil, err
	}

	exists, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", "error", err, "email", dto.Email)
		return nil, errors.NewStorageError(err)
	}
	if exists {
		s.logger.Warn("email already registered", "email", dto.Email)
		return nil, errors.ErrEmailTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	role, _ := auth.ParseRole(dto.Role)
	now := time.Now()
	u := &User{
		Email:     dto.Email,
		Name:      dto.Name,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(u, hash); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, errors.NewStorageError(err)
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user update validation failed", "error", err, "user_id", id)
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("user not found for update", "error", err, "user_id", id)
		return nil, errors.ErrUserNotFound
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Role != nil {
		role, ok := auth.ParseRole(*dto.Role)
		if !ok {
			return nil, errors.NewValidationError("invalid role", errors.ErrCodeInvalidRole)
		}
		u.Role = role
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, errors.NewStorageError(err)
	}

	s.logger.Info("user updated", "user_id", id, "role", u.Role, "is_active", u.IsActive)
	return u, nil
}

// DeactivateUser disables the account without deleting it. Historical
// requests keep pointing at the user record.
func (s *Service) DeactivateUser(id int64) (*User, error) {
	inactive := false
	return s.UpdateUser(id, UpdateUserDTO{IsActive: &inactive})
}
