package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleOp    Role = "op"
	RoleLine  Role = "line"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOp, RoleLine:
		return true
	}
	return false
}

// Capabilities is derived from the role once per session instead of
// comparing role strings at every call site.
type Capabilities struct {
	CanManageUsers       bool `json:"canManageUsers"`
	CanEditPlans         bool `json:"canEditPlans"`
	CanManageStaffPlans  bool `json:"canManageStaffPlans"`
	CanSendNotifications bool `json:"canSendNotifications"`
	CanManageContent     bool `json:"canManageContent"`
}

func CapabilitiesFor(role Role) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{
			CanManageUsers:       true,
			CanEditPlans:         true,
			CanManageStaffPlans:  true,
			CanSendNotifications: true,
			CanManageContent:     true,
		}
	case RoleOp:
		return Capabilities{CanManageStaffPlans: true}
	default:
		return Capabilities{}
	}
}

// User is a staff account: it is used both for login and for assignment
// as a mentor on adaptation plans.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username     string    `gorm:"type:text;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Role         Role      `gorm:"type:text;not null;default:'line'" json:"role"`
	CreatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}

func (u *User) RoleLabel() string {
	if u.Role == RoleAdmin {
		return "Админ"
	}
	return "Наставник"
}
