package user

import (
	"time"

	"github.com/frahmantamala/petty-cash-management/internal/auth"
	userDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/user"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      auth.Role `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanApprove reports whether this user may be the target of an approval
// rule.
func (u *User) CanApprove() bool {
	return u.IsActive && (u.Role == auth.RoleApprover || u.Role == auth.RoleAdmin)
}

func FromDataModel(u *userDatamodel.User) *User {
	role, ok := auth.ParseRole(u.Role)
	if !ok {
		role = auth.RoleUser
	}
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
