package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the coarse access level assigned to a user. Roles are stored as
// strings but only these four values are valid.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleApprover Role = "approver"
	RoleCashier  Role = "cashier"
	RoleUser     Role = "user"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleApprover, RoleCashier, RoleUser:
		return Role(s), true
	}
	return "", false
}

// Permission is a single named capability. Role-to-permission mapping is a
// structured table, not a parsed string convention.
type Permission string

const (
	PermissionSubmitRequests   Permission = "requests.submit"
	PermissionViewAllRequests  Permission = "requests.view_all"
	PermissionApproveRequests  Permission = "requests.approve"
	PermissionRejectRequests   Permission = "requests.reject"
	PermissionUploadReceipts   Permission = "receipts.upload"
	PermissionManageUsers      Permission = "admin.users"
	PermissionManageRules      Permission = "admin.rules"
	PermissionManageCurrencies Permission = "admin.currencies"
	PermissionManageSMTP       Permission = "admin.smtp"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionSubmitRequests,
		PermissionViewAllRequests,
		PermissionApproveRequests,
		PermissionRejectRequests,
		PermissionUploadReceipts,
		PermissionManageUsers,
		PermissionManageRules,
		PermissionManageCurrencies,
		PermissionManageSMTP,
	},
	RoleApprover: {
		PermissionSubmitRequests,
		PermissionViewAllRequests,
		PermissionApproveRequests,
		PermissionRejectRequests,
	},
	RoleCashier: {
		PermissionSubmitRequests,
		PermissionViewAllRequests,
		PermissionUploadReceipts,
	},
	RoleUser: {
		PermissionSubmitRequests,
		PermissionUploadReceipts,
	},
}

// PermissionsForRole returns a copy of the permission set granted by a role.
func PermissionsForRole(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

type User struct {
	ID          int64        `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions,omitempty"`
}

func (u *User) Can(permission Permission) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID int64, email string) (token string, err error)
	GenerateRefreshToken(userID int64, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type userCtxKey struct{}

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*User)
	return user, ok
}

// TokenTTLs used when no configuration is supplied.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 24 * 7 * time.Hour
)
