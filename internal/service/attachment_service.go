package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamup-board-api/internal/cellvalue"
	"teamup-board-api/internal/client"
	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/repository"
	"teamup-board-api/internal/response"
)

// tempAttachmentTTL is how long an unconfirmed upload is kept
const tempAttachmentTTL = time.Hour

// AttachmentService defines the interface for file cell uploads
type AttachmentService interface {
	CreateUploadURL(ctx context.Context, userID, itemID, columnID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
	ConfirmUpload(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.CellResponse, error)
	GetDownloadURL(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.DownloadURLResponse, error)
	ListCellAttachments(ctx context.Context, userID, itemID, columnID uuid.UUID) ([]*dto.AttachmentResponse, error)
}

type attachmentServiceImpl struct {
	attachmentRepo repository.AttachmentRepository
	itemRepo       repository.ItemRepository
	columnRepo     repository.ColumnRepository
	s3Client       client.S3ClientInterface
	cells          CellService
	membership     MembershipService
	logger         *zap.Logger
	now            func() time.Time
}

// NewAttachmentService creates a new instance of AttachmentService
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	itemRepo repository.ItemRepository,
	columnRepo repository.ColumnRepository,
	s3Client client.S3ClientInterface,
	cells CellService,
	membership MembershipService,
	logger *zap.Logger,
) AttachmentService {
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		itemRepo:       itemRepo,
		columnRepo:     columnRepo,
		s3Client:       s3Client,
		cells:          cells,
		membership:     membership,
		logger:         logger,
		now:            time.Now,
	}
}

// CreateUploadURL records a TEMP attachment for a file cell and returns a presigned PUT URL
func (s *attachmentServiceImpl) CreateUploadURL(ctx context.Context, userID, itemID, columnID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, notFoundOr(err, "Item not found", "Failed to load item")
	}
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return nil, notFoundOr(err, "Column not found", "Failed to load column")
	}
	if column.BoardID != item.BoardID {
		return nil, response.NewValidationError("Column does not belong to the item's board", "")
	}
	if _, err := s.membership.RequireBoardRole(ctx, userID, item.BoardID, domain.RoleMember); err != nil {
		return nil, err
	}

	spec := cellvalue.SpecOf(column)
	if spec.Type != cellvalue.TypeFile {
		return nil, response.NewValidationError("Attachments are only allowed on file columns", "")
	}
	if spec.IsReadonly() {
		return nil, response.NewAppError(response.ErrCodeReadonlyColumn, "This column is read-only", "")
	}
	if err := validateUpload(req.FileName, req.ContentType, req.FileSize); err != nil {
		return nil, err
	}

	uploadURL, fileKey, err := s.s3Client.GeneratePresignedURL(ctx, item.BoardID.String(), req.FileName, req.ContentType)
	if err != nil {
		s.logger.Error("Failed to generate presigned URL", zap.String("item_id", itemID.String()), zap.Error(err))
		return nil, internalError("Failed to generate presigned URL", err)
	}

	expiresAt := s.now().Add(tempAttachmentTTL)
	attachment := &domain.Attachment{
		ItemID:      itemID,
		ColumnID:    columnID,
		Status:      domain.AttachmentStatusTemp,
		FileName:    req.FileName,
		FileKey:     fileKey,
		FileSize:    req.FileSize,
		ContentType: req.ContentType,
		UploadedBy:  userID,
		ExpiresAt:   &expiresAt,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, internalError("Failed to create attachment record", err)
	}

	s.logger.Info("Upload URL issued",
		zap.String("item_id", itemID.String()),
		zap.String("column_id", columnID.String()),
		zap.String("attachment_id", attachment.ID.String()))
	return &dto.PresignedURLResponse{
		AttachmentID: attachment.ID,
		UploadURL:    uploadURL,
		FileKey:      fileKey,
		ExpiresIn:    int(s.s3Client.PresignExpiry().Seconds()),
	}, nil
}

// ConfirmUpload commits the uploaded key as the cell's value and marks the
// attachment CONFIRMED. Attachments previously confirmed on the cell are removed.
func (s *attachmentServiceImpl) ConfirmUpload(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.CellResponse, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return nil, notFoundOr(err, "Attachment not found", "Failed to load attachment")
	}
	if attachment.Status != domain.AttachmentStatusTemp {
		return nil, response.NewValidationError("Attachment is already confirmed", "")
	}
	if attachment.ExpiresAt != nil && s.now().After(*attachment.ExpiresAt) {
		return nil, response.NewValidationError("Upload has expired", "")
	}

	cell, err := s.cells.CommitCellValue(ctx, userID, attachment.ItemID, attachment.ColumnID,
		&dto.CommitCellRequest{Value: attachment.FileKey})
	if err != nil {
		return nil, err
	}
	if err := s.attachmentRepo.Confirm(ctx, attachmentID); err != nil {
		return nil, notFoundOr(err, "Attachment is already confirmed", "Failed to confirm attachment")
	}

	s.removeReplaced(ctx, attachment)
	s.logger.Info("Attachment confirmed",
		zap.String("attachment_id", attachmentID.String()),
		zap.String("item_id", attachment.ItemID.String()),
		zap.String("column_id", attachment.ColumnID.String()))
	return cell, nil
}

// removeReplaced deletes the other confirmed attachments of the cell. Failures are logged.
func (s *attachmentServiceImpl) removeReplaced(ctx context.Context, current *domain.Attachment) {
	existing, err := s.attachmentRepo.FindByCell(ctx, current.ItemID, current.ColumnID)
	if err != nil {
		s.logger.Warn("Failed to list cell attachments", zap.Error(err))
		return
	}
	for _, a := range existing {
		if a.ID == current.ID || a.Status != domain.AttachmentStatusConfirmed {
			continue
		}
		if err := s.s3Client.DeleteFile(ctx, a.FileKey); err != nil {
			s.logger.Warn("Failed to delete replaced file", zap.String("attachment_id", a.ID.String()), zap.Error(err))
			continue
		}
		if err := s.attachmentRepo.Delete(ctx, a.ID); err != nil {
			s.logger.Warn("Failed to delete replaced attachment", zap.String("attachment_id", a.ID.String()), zap.Error(err))
		}
	}
}

// GetDownloadURL returns a presigned GET URL for a confirmed attachment
func (s *attachmentServiceImpl) GetDownloadURL(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.DownloadURLResponse, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return nil, notFoundOr(err, "Attachment not found", "Failed to load attachment")
	}
	if attachment.Status != domain.AttachmentStatusConfirmed {
		return nil, response.NewNotFoundError("Attachment not found", "")
	}
	item, err := s.itemRepo.FindByID(ctx, attachment.ItemID)
	if err != nil {
		return nil, notFoundOr(err, "Attachment not found", "Failed to load item")
	}
	if _, err := s.membership.RequireBoardRole(ctx, userID, item.BoardID, domain.RoleViewer); err != nil {
		return nil, err
	}

	url, err := s.s3Client.GeneratePresignedDownloadURL(ctx, attachment.FileKey, attachment.FileName)
	if err != nil {
		return nil, internalError("Failed to generate download URL", err)
	}
	return &dto.DownloadURLResponse{
		URL:       url,
		ExpiresIn: int(s.s3Client.PresignExpiry().Seconds()),
	}, nil
}

// ListCellAttachments returns the attachments of one cell
func (s *attachmentServiceImpl) ListCellAttachments(ctx context.Context, userID, itemID, columnID uuid.UUID) ([]*dto.AttachmentResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, notFoundOr(err, "Item not found", "Failed to load item")
	}
	if _, err := s.membership.RequireBoardRole(ctx, userID, item.BoardID, domain.RoleViewer); err != nil {
		return nil, err
	}
	attachments, err := s.attachmentRepo.FindByCell(ctx, itemID, columnID)
	if err != nil {
		return nil, internalError("Failed to list attachments", err)
	}
	responses := make([]*dto.AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		responses = append(responses, toAttachmentResponse(a))
	}
	return responses, nil
}

func toAttachmentResponse(a *domain.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:          a.ID,
		ItemID:      a.ItemID,
		ColumnID:    a.ColumnID,
		Status:      string(a.Status),
		FileName:    a.FileName,
		FileKey:     a.FileKey,
		FileSize:    a.FileSize,
		ContentType: a.ContentType,
		UploadedBy:  a.UploadedBy,
		UploadedAt:  a.CreatedAt,
		ExpiresAt:   a.ExpiresAt,
	}
}
