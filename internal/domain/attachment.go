package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentStatus represents the status of an attachment
type AttachmentStatus string

const (
	AttachmentStatusTemp      AttachmentStatus = "TEMP"      // uploaded, not yet bound to a cell
	AttachmentStatusConfirmed AttachmentStatus = "CONFIRMED" // committed as a file cell value
)

// Attachment is an object stored in S3 for a file column cell
type Attachment struct {
	BaseModel
	ItemID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_attachments_cell,priority:1" json:"item_id"`
	ColumnID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_attachments_cell,priority:2" json:"column_id"`
	Status      AttachmentStatus `gorm:"type:varchar(20);not null;default:'TEMP';index:idx_attachments_status" json:"status"`
	FileName    string           `gorm:"type:varchar(255);not null" json:"file_name"`
	FileKey     string           `gorm:"type:text;not null" json:"file_key"` // S3 key only, not a full URL
	FileSize    int64            `gorm:"not null" json:"file_size"`
	ContentType string           `gorm:"type:varchar(100);not null" json:"content_type"`
	UploadedBy  uuid.UUID        `gorm:"type:uuid;not null;index:idx_attachments_uploaded_by" json:"uploaded_by"`
	ExpiresAt   *time.Time       `gorm:"type:timestamp;index:idx_attachments_expires_at" json:"expires_at"`
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
