// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	IsActive     bool       `db:"is_active"`
	LastLogin    *time.Time `db:"last_login"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Permissions returns the derived permission set for the user's
// current role. Permissions are never stored; they follow the role.
func (u *User) Permissions() Permissions {
	return PermissionsForRole(u.Role)
}

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAnalyst = "analyst"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleAnalyst:
		return true
	}
	return false
}

const (
	PermViewSubmissions = "viewSubmissions"
	PermExportData      = "exportData"
	PermManageUsers     = "manageUsers"
	PermViewAnalytics   = "viewAnalytics"
)

type Permissions struct {
	ViewSubmissions bool `json:"viewSubmissions"`
	ExportData      bool `json:"exportData"`
	ManageUsers     bool `json:"manageUsers"`
	ViewAnalytics   bool `json:"viewAnalytics"`
}

// PermissionsForRole is the single source of truth mapping roles to
// capabilities. Unknown roles get the analyst (most restrictive) set.
func PermissionsForRole(role string) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{
			ViewSubmissions: true,
			ExportData:      true,
			ManageUsers:     true,
			ViewAnalytics:   true,
		}
	case RoleManager:
		return Permissions{
			ViewSubmissions: true,
			ExportData:      true,
			ManageUsers:     false,
			ViewAnalytics:   true,
		}
	default:
		return Permissions{
			ViewSubmissions: true,
			ExportData:      false,
			ManageUsers:     false,
			ViewAnalytics:   true,
		}
	}
}

func (p Permissions) Map() map[string]bool {
	return map[string]bool{
		PermViewSubmissions: p.ViewSubmissions,
		PermExportData:      p.ExportData,
		PermManageUsers:     p.ManageUsers,
		PermViewAnalytics:   p.ViewAnalytics,
	}
}
