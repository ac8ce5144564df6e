package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teamup-board-api/internal/client"
	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/response"
)

type attachmentFixture struct {
	*cellFixture
	fileColumn  *domain.BoardColumn
	textColumn  *domain.BoardColumn
	attachments map[uuid.UUID]*domain.Attachment
	repo        *MockAttachmentRepository
	s3          *client.MockS3Client
}

func newAttachmentFixture() *attachmentFixture {
	fileColumn := column(uuid.Nil, "Files", "file")
	textColumn := column(uuid.Nil, "Notes", "text")
	f := &attachmentFixture{
		cellFixture: newCellFixture(fileColumn, textColumn),
		fileColumn:  fileColumn,
		textColumn:  textColumn,
		attachments: make(map[uuid.UUID]*domain.Attachment),
		s3:          client.NewMockS3Client(),
	}
	f.repo = &MockAttachmentRepository{
		CreateFunc: func(ctx context.Context, a *domain.Attachment) error {
			a.ID = uuid.New()
			f.attachments[a.ID] = a
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
			a, ok := f.attachments[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *a
			return &cp, nil
		},
		FindByCellFunc: func(ctx context.Context, itemID, columnID uuid.UUID) ([]*domain.Attachment, error) {
			var out []*domain.Attachment
			for _, a := range f.attachments {
				if a.ItemID == itemID && a.ColumnID == columnID {
					out = append(out, a)
				}
			}
			return out, nil
		},
		ConfirmFunc: func(ctx context.Context, id uuid.UUID) error {
			f.attachments[id].Status = domain.AttachmentStatusConfirmed
			f.attachments[id].ExpiresAt = nil
			return nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			delete(f.attachments, id)
			return nil
		},
	}
	return f
}

func (f *attachmentFixture) service() *attachmentServiceImpl {
	cells := f.cellFixture.service()
	return NewAttachmentService(f.repo, f.items, f.columnsDB, f.s3, cells, &MockMembershipService{}, testLogger()).(*attachmentServiceImpl)
}

func TestAttachmentService_CreateUploadURL(t *testing.T) {
	tests := []struct {
		name        string
		useText     bool
		req         *dto.PresignedURLRequest
		wantErrCode string
	}{
		{
			name: "성공: 파일 컬럼 업로드 URL",
			req:  &dto.PresignedURLRequest{FileName: "spec.pdf", FileSize: 1024, ContentType: "application/pdf"},
		},
		{
			name:        "실패: 파일 컬럼이 아님",
			useText:     true,
			req:         &dto.PresignedURLRequest{FileName: "spec.pdf", FileSize: 1024, ContentType: "application/pdf"},
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:        "실패: 크기 초과",
			req:         &dto.PresignedURLRequest{FileName: "big.zip", FileSize: MaxFileSize + 1, ContentType: "application/zip"},
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:        "실패: 허용되지 않은 확장자",
			req:         &dto.PresignedURLRequest{FileName: "run.exe", FileSize: 10, ContentType: "application/octet-stream"},
			wantErrCode: response.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAttachmentFixture()
			svc := f.service()
			now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
			svc.now = func() time.Time { return now }

			columnID := f.fileColumn.ID
			if tt.useText {
				columnID = f.textColumn.ID
			}
			got, err := svc.CreateUploadURL(context.Background(), uuid.New(), f.item.ID, columnID, tt.req)
			if tt.wantErrCode != "" {
				assertAppErrorCode(t, err, tt.wantErrCode)
				assert.Empty(t, f.attachments)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.UploadURL)
			assert.Equal(t, 300, got.ExpiresIn)

			stored := f.attachments[got.AttachmentID]
			require.NotNil(t, stored)
			assert.Equal(t, domain.AttachmentStatusTemp, stored.Status)
			assert.Equal(t, got.FileKey, stored.FileKey)
			assert.Equal(t, now.Add(time.Hour), *stored.ExpiresAt)
		})
	}
}

func TestAttachmentService_ConfirmUpload_ReplacesPrevious(t *testing.T) {
	f := newAttachmentFixture()
	svc := f.service()
	ctx := context.Background()
	userID := uuid.New()
	req := &dto.PresignedURLRequest{FileName: "a.png", FileSize: 10, ContentType: "image/png"}

	first, err := svc.CreateUploadURL(ctx, userID, f.item.ID, f.fileColumn.ID, req)
	require.NoError(t, err)
	_, err = svc.ConfirmUpload(ctx, userID, first.AttachmentID)
	require.NoError(t, err)

	second, err := svc.CreateUploadURL(ctx, userID, f.item.ID, f.fileColumn.ID, req)
	require.NoError(t, err)
	cell, err := svc.ConfirmUpload(ctx, userID, second.AttachmentID)
	require.NoError(t, err)

	assert.Equal(t, second.FileKey, cell.Display)
	assert.NotContains(t, f.attachments, first.AttachmentID)
	assert.Equal(t, domain.AttachmentStatusConfirmed, f.attachments[second.AttachmentID].Status)
	assert.Equal(t, []string{first.FileKey}, f.s3.Deleted)

	_, err = svc.ConfirmUpload(ctx, userID, second.AttachmentID)
	assertAppErrorCode(t, err, response.ErrCodeValidation)
}

func TestAttachmentService_ConfirmUpload_Expired(t *testing.T) {
	f := newAttachmentFixture()
	svc := f.service()
	ctx := context.Background()

	created, err := svc.CreateUploadURL(ctx, uuid.New(), f.item.ID, f.fileColumn.ID,
		&dto.PresignedURLRequest{FileName: "a.png", FileSize: 10, ContentType: "image/png"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ConfirmUpload(ctx, uuid.New(), created.AttachmentID)
	assertAppErrorCode(t, err, response.ErrCodeValidation)
	assert.Empty(t, f.publisher.Events)
}

func TestAttachmentService_GetDownloadURL(t *testing.T) {
	f := newAttachmentFixture()
	svc := f.service()
	ctx := context.Background()

	created, err := svc.CreateUploadURL(ctx, uuid.New(), f.item.ID, f.fileColumn.ID,
		&dto.PresignedURLRequest{FileName: "a.png", FileSize: 10, ContentType: "image/png"})
	require.NoError(t, err)

	_, err = svc.GetDownloadURL(ctx, uuid.New(), created.AttachmentID)
	assertAppErrorCode(t, err, response.ErrCodeNotFound)

	_, err = svc.ConfirmUpload(ctx, uuid.New(), created.AttachmentID)
	require.NoError(t, err)

	got, err := svc.GetDownloadURL(ctx, uuid.New(), created.AttachmentID)
	require.NoError(t, err)
	assert.NotEmpty(t, got.URL)
}
