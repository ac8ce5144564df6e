package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	appConfig "teamup-board-api/internal/config"
	"teamup-board-api/internal/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3ClientInterface defines the interface for S3 operations
type S3ClientInterface interface {
	GenerateFileKey(boardID, fileExt string) string
	GeneratePresignedURL(ctx context.Context, boardID, fileName, contentType string) (string, string, error)
	GeneratePresignedDownloadURL(ctx context.Context, key, fileName string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
	PresignExpiry() time.Duration
}

// S3Client wraps AWS S3 client and implements S3ClientInterface
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string // set for MinIO and other S3-compatible stores
	expiry        time.Duration
	metrics       *metrics.Metrics
}

// NewS3Client creates a new S3 client
func NewS3Client(cfg *appConfig.S3Config, m *metrics.Metrics) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	} else if cfg.Endpoint != "" {
		return nil, fmt.Errorf("access key and secret key are required for a custom S3 endpoint")
	}

	// Without static keys the SDK default chain applies (IAM role, ~/.aws/credentials)
	awsCfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 5 * time.Minute
	}

	return &S3Client{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      cfg.Endpoint,
		expiry:        expiry,
		metrics:       m,
	}, nil
}

// GenerateFileKey generates a unique S3 file key
// Format: teamup/items/{boardId}/{year}/{month}/{uuid}_{timestamp}.ext
func (c *S3Client) GenerateFileKey(boardID, fileExt string) string {
	return fileKey(time.Now(), boardID, fileExt)
}

func fileKey(now time.Time, boardID, fileExt string) string {
	return fmt.Sprintf("teamup/items/%s/%s/%s/%s_%d%s",
		boardID, now.Format("2006"), now.Format("01"), uuid.New().String(), now.Unix(), strings.ToLower(fileExt))
}

// PresignExpiry is how long presigned URLs stay valid
func (c *S3Client) PresignExpiry() time.Duration {
	return c.expiry
}

// GeneratePresignedURL generates a presigned URL for uploading a file to S3
func (c *S3Client) GeneratePresignedURL(ctx context.Context, boardID, fileName, contentType string) (string, string, error) {
	key := c.GenerateFileKey(boardID, filepath.Ext(fileName))

	presignedReq, err := c.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(c.expiry))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return c.externalURL(presignedReq.URL), key, nil
}

// GeneratePresignedDownloadURL generates a presigned GET URL that downloads as fileName
func (c *S3Client) GeneratePresignedDownloadURL(ctx context.Context, key, fileName string) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}
	if fileName != "" {
		input.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", fileName))
	}

	presignedReq, err := c.presignClient.PresignGetObject(ctx, input, s3.WithPresignExpires(c.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return c.externalURL(presignedReq.URL), nil
}

// externalURL rewrites the in-cluster MinIO host to the configured endpoint host
func (c *S3Client) externalURL(u string) string {
	if c.endpoint == "" {
		return u
	}
	const internalMinIOHost = "minio:9000"
	externalHost := strings.TrimPrefix(strings.TrimPrefix(c.endpoint, "http://"), "https://")
	return strings.Replace(u, internalMinIOHost, externalHost, 1)
}

// DeleteFile deletes a file from S3
func (c *S3Client) DeleteFile(ctx context.Context, key string) error {
	start := time.Now()
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if c.metrics != nil {
		status := 204
		if err != nil {
			status = 0
		}
		c.metrics.RecordExternalAPICall("s3/DeleteObject", "DELETE", status, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// GetFileURL returns the object URL for a key
func (c *S3Client) GetFileURL(key string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.endpoint, "/"), c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}
