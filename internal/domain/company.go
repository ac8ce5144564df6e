package domain

import "github.com/google/uuid"

// Company is the tenant boundary. It owns boards and memberships.
type Company struct {
	BaseModel
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null;index:idx_companies_created_by" json:"created_by"`
}

// TableName specifies the table name for Company
func (Company) TableName() string {
	return "companies"
}
