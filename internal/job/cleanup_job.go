package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamup-board-api/internal/client"
	"teamup-board-api/internal/repository"
)

// AttachmentCleanupJob deletes TEMP attachments whose upload was never confirmed
type AttachmentCleanupJob struct {
	attachmentRepo repository.AttachmentRepository
	s3Client       client.S3ClientInterface
	logger         *zap.Logger
	now            func() time.Time
}

// NewAttachmentCleanupJob creates a new AttachmentCleanupJob instance
func NewAttachmentCleanupJob(
	attachmentRepo repository.AttachmentRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) *AttachmentCleanupJob {
	return &AttachmentCleanupJob{
		attachmentRepo: attachmentRepo,
		s3Client:       s3Client,
		logger:         logger,
		now:            time.Now,
	}
}

// Name identifies the job in logs
func (j *AttachmentCleanupJob) Name() string { return "attachment_cleanup" }

// Run executes the cleanup job.
// Files are removed from S3 first; only rows whose file is gone are deleted.
func (j *AttachmentCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	j.logger.Info("Starting cleanup job for expired temporary attachments")

	expiredAttachments, err := j.attachmentRepo.FindExpiredTempAttachments(ctx, j.now())
	if err != nil {
		j.logger.Error("Failed to find expired temporary attachments", zap.Error(err))
		return
	}

	if len(expiredAttachments) == 0 {
		j.logger.Info("No expired temporary attachments found")
		return
	}

	j.logger.Info("Found expired temporary attachments", zap.Int("count", len(expiredAttachments)))

	var successfulDeletionIDs []uuid.UUID
	failCount := 0

	for _, attachment := range expiredAttachments {
		if attachment.FileKey == "" {
			// Nothing was uploaded under this row
			successfulDeletionIDs = append(successfulDeletionIDs, attachment.ID)
			continue
		}

		if err := j.s3Client.DeleteFile(ctx, attachment.FileKey); err != nil {
			j.logger.Error("Failed to delete file from S3",
				zap.String("attachment_id", attachment.ID.String()),
				zap.String("file_key", attachment.FileKey),
				zap.Error(err),
			)
			failCount++
			continue
		}

		successfulDeletionIDs = append(successfulDeletionIDs, attachment.ID)
		j.logger.Debug("Deleted file from S3",
			zap.String("attachment_id", attachment.ID.String()),
			zap.String("file_key", attachment.FileKey),
		)
	}

	if len(successfulDeletionIDs) > 0 {
		if err := j.attachmentRepo.DeleteBatch(ctx, successfulDeletionIDs); err != nil {
			j.logger.Error("Failed to delete attachments from database",
				zap.Int("count", len(successfulDeletionIDs)),
				zap.Error(err),
			)
		}
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("total_expired", len(expiredAttachments)),
		zap.Int("success", len(successfulDeletionIDs)),
		zap.Int("failed", failCount),
	)
}
