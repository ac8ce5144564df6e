package domain

import (
	"github.com/google/uuid"
)

// Role is a user's role within a company
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
	RoleViewer Role = "Viewer"
)

var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleMember: 2,
	RoleAdmin:  3,
}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants at least the permissions of min
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min] && roleRank[r] > 0
}

// UserCompanyRole grants a user a role in a company. One row per (user, company).
type UserCompanyRole struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_company_roles_user_company,priority:1" json:"user_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_company_roles_user_company,priority:2;index:idx_user_company_roles_company_id" json:"company_id"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'Member'" json:"role"`
	Company   *Company  `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
	Profile   *Profile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// TableName specifies the table name for UserCompanyRole
func (UserCompanyRole) TableName() string {
	return "user_company_roles"
}
