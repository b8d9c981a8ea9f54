package user

import (
	"strings"

	errors "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/auth"
	"github.com/frahmantamala/petty-cash-management/internal/core/common/validation"
)

// CreateUserDTO is the admin payload for provisioning a user directly.
type CreateUserDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (dto CreateUserDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("email", dto.Email).
		Required().
		Custom(func(v interface{}) *errors.AppError {
			if s, ok := v.(string); ok && !strings.Contains(s, "@") {
				return errors.NewValidationFieldError("email", "email must be valid", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	validator.Field("name", dto.Name).Required().MaxLength(100)
	validator.Field("password", dto.Password).Required().MinLength(8)
	validator.Field("role", dto.Role).
		Required().
		OneOf(string(auth.RoleAdmin), string(auth.RoleApprover), string(auth.RoleCashier), string(auth.RoleUser))
	return validator.Validate()
}

// UpdateUserDTO updates mutable profile fields. Nil fields are left
// untouched.
type UpdateUserDTO struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (dto UpdateUserDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	if dto.Name != nil {
		validator.Field("name", *dto.Name).Required().MaxLength(100)
	}
	if dto.Role != nil {
		validator.Field("role", *dto.Role).
			OneOf(string(auth.RoleAdmin), string(auth.RoleApprover), string(auth.RoleCashier), string(auth.RoleUser))
	}
	return validator.Validate()
}
