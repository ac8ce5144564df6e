package dto

import (
	"time"

	"github.com/google/uuid"
)

// PresignedURLRequest represents the request to generate a presigned upload URL
type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required" example:"spec.pdf"`
	FileSize    int64  `json:"fileSize" binding:"required" example:"204800"`
	ContentType string `json:"contentType" binding:"required" example:"application/pdf"`
}

// PresignedURLResponse represents the response containing the presigned URL
type PresignedURLResponse struct {
	AttachmentID uuid.UUID `json:"attachmentId"`
	UploadURL    string    `json:"uploadUrl"`
	FileKey      string    `json:"fileKey"`
	ExpiresIn    int       `json:"expiresIn"` // seconds
}

// AttachmentResponse represents the attachment metadata response
type AttachmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	ItemID      uuid.UUID  `json:"itemId"`
	ColumnID    uuid.UUID  `json:"columnId"`
	Status      string     `json:"status"`
	FileName    string     `json:"fileName"`
	FileKey     string     `json:"fileKey"`
	FileSize    int64      `json:"fileSize"`
	ContentType string     `json:"contentType"`
	UploadedBy  uuid.UUID  `json:"uploadedBy"`
	UploadedAt  time.Time  `json:"uploadedAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// DownloadURLResponse carries a short-lived download link
type DownloadURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}
