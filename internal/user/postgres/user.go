package postgres

import (
	"errors"

	"gorm.io/gorm"

	userDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/user"
	"github.com/frahmantamala/petty-cash-management/internal/user"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return user.FromDataModel(&record), nil
}

func (r *UserRepository) ListAll() ([]*user.User, error) {
	var records []*userDatamodel.User
	err := r.db.Order("id ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(records), nil
}

func (r *UserRepository) Create(u *user.User, passwordHash string) error {
	record := user.ToDataModel(u)
	record.PasswordHash = passwordHash
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	u.ID = record.ID
	return nil
}

func (r *UserRepository) Update(u *user.User) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":       u.Name,
			"role":       string(u.Role),
			"is_active":  u.IsActive,
			"updated_at": u.UpdatedAt,
		}).Error
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
