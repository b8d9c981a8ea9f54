package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/petty-cash-management/internal/auth"
	userDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/user"
)

// Repository implements auth.Repository using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByEmail(email string) (string, int64, error) {
	var record userDatamodel.User
	err := r.db.Where("email = ? AND is_active = ?", email, true).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, errors.New("user not found")
		}
		return "", 0, err
	}
	return record.PasswordHash, record.ID, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ? AND is_active = ?", userID, true).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	role, ok := auth.ParseRole(record.Role)
	if !ok {
		role = auth.RoleUser
	}

	return &auth.User{
		ID:    record.ID,
		Email: record.Email,
		Name:  record.Name,
		Role:  role,
	}, nil
}

func (r *Repository) CreateUser(email, name, passwordHash string, role auth.Role) (*auth.User, error) {
	record := userDatamodel.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         string(role),
		IsActive:     true,
	}
	if err := r.db.Create(&record).Error; err != nil {
		return nil, err
	}

	return &auth.User{
		ID:    record.ID,
		Email: record.Email,
		Name:  record.Name,
		Role:  role,
	}, nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
