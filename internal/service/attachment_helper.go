package service

import (
	"path/filepath"
	"strings"

	"teamup-board-api/internal/response"
)

// MaxFileSize defines the maximum allowed file size for uploads (50MB).
const MaxFileSize = 50 * 1024 * 1024

var (
	allowedContentTypes = map[string]bool{
		// 이미지
		"image/jpeg":    true,
		"image/png":     true,
		"image/gif":     true,
		"image/webp":    true,
		"image/svg+xml": true,
		"image/heic":    true,

		// 문서
		"application/pdf": true,
		"text/plain":      true,
		"text/markdown":   true,
		"text/csv":        true,

		// 데이터
		"application/json": true,

		// MS Office
		"application/msword":            true,
		"application/vnd.ms-excel":      true,
		"application/vnd.ms-powerpoint": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
		"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,

		"application/zip":              true,
		"application/x-zip-compressed": true,
	}

	allowedExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true, ".heic": true,
		".pdf": true, ".txt": true, ".md": true, ".csv": true, ".json": true,
		".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
		".zip": true,
	}
)

// validateUpload checks the metadata of a file before an upload URL is issued
func validateUpload(fileName, contentType string, size int64) error {
	if strings.TrimSpace(fileName) == "" {
		return response.NewValidationError("File name is required", "")
	}
	if strings.ContainsAny(fileName, `/\`) {
		return response.NewValidationError("File name must not contain path separators", "")
	}
	if size <= 0 {
		return response.NewValidationError("File size must be greater than 0", "")
	}
	if size > MaxFileSize {
		return response.NewValidationError("File size exceeds 50MB limit", "")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return response.NewValidationError("File extension is not allowed", ext)
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if ct == "image/jpg" {
		ct = "image/jpeg"
	}
	if !allowedContentTypes[ct] {
		return response.NewValidationError("Content type is not allowed", contentType)
	}
	return nil
}
