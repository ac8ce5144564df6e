package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket   string
	Region   string
	Endpoint string
	Expiry   time.Duration

	// Optional function overrides for custom test behavior
	GeneratePresignedURLFunc         func(ctx context.Context, boardID, fileName, contentType string) (string, string, error)
	GeneratePresignedDownloadURLFunc func(ctx context.Context, key, fileName string) (string, error)
	DeleteFileFunc                   func(ctx context.Context, key string) error

	Deleted []string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket: "test-bucket",
		Region: "ap-northeast-2",
		Expiry: 5 * time.Minute,
	}
}

// GenerateFileKey generates a unique file key for S3 storage
func (m *MockS3Client) GenerateFileKey(boardID, fileExt string) string {
	return fileKey(time.Now(), boardID, fileExt)
}

// PresignExpiry returns the configured expiry
func (m *MockS3Client) PresignExpiry() time.Duration {
	return m.Expiry
}

// GeneratePresignedURL generates a mock presigned URL for testing
func (m *MockS3Client) GeneratePresignedURL(ctx context.Context, boardID, fileName, contentType string) (string, string, error) {
	if m.GeneratePresignedURLFunc != nil {
		return m.GeneratePresignedURLFunc(ctx, boardID, fileName, contentType)
	}

	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = ".bin"
	}
	key := m.GenerateFileKey(boardID, ext)
	return m.signed(key, "PUT"), key, nil
}

// GeneratePresignedDownloadURL generates a mock presigned GET URL
func (m *MockS3Client) GeneratePresignedDownloadURL(ctx context.Context, key, fileName string) (string, error) {
	if m.GeneratePresignedDownloadURLFunc != nil {
		return m.GeneratePresignedDownloadURLFunc(ctx, key, fileName)
	}
	return m.signed(key, "GET"), nil
}

func (m *MockS3Client) signed(key, method string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Credential=test-access-key%%2F%s%%2F%s%%2Fs3%%2Faws4_request&X-Amz-Date=%s&X-Amz-Expires=%d&X-Amz-SignedHeaders=host&X-Amz-Signature=mock%s",
		m.GetFileURL(key),
		now.Format("20060102"),
		m.Region,
		now.Format("20060102T150405Z"),
		int(m.Expiry.Seconds()),
		strings.ToLower(method),
	)
}

// DeleteFile simulates file deletion and records the key
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	m.Deleted = append(m.Deleted, key)
	return nil
}

// GetFileURL returns the public URL for a file
func (m *MockS3Client) GetFileURL(key string) string {
	if m.Endpoint != "" && !strings.Contains(m.Endpoint, "amazonaws.com") {
		return fmt.Sprintf("%s/%s/%s", m.Endpoint, m.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

// Ensure MockS3Client implements S3ClientInterface
var _ S3ClientInterface = (*MockS3Client)(nil)
var _ S3ClientInterface = (*S3Client)(nil)
