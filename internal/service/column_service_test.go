package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamup-board-api/internal/cellvalue"
	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/realtime"
	"teamup-board-api/internal/response"
)

func TestColumnService_AddColumn(t *testing.T) {
	boardID := uuid.New()

	tests := []struct {
		name        string
		req         *dto.CreateColumnRequest
		wantType    string
		wantOptions []string
		wantErrCode string
	}{
		{
			name:        "성공: status 컬럼 기본 옵션",
			req:         &dto.CreateColumnRequest{Name: "Status", Type: "Status"},
			wantType:    "status",
			wantOptions: cellvalue.DefaultStatusOptions,
		},
		{
			name:        "성공: priority 컬럼 기본 옵션",
			req:         &dto.CreateColumnRequest{Name: "Priority", Type: "priority"},
			wantType:    "priority",
			wantOptions: cellvalue.DefaultPriorityOptions,
		},
		{
			name:        "성공: 지정 옵션 정리",
			req:         &dto.CreateColumnRequest{Name: "Stage", Type: "status", Options: []string{" A ", "", "B", "A"}},
			wantType:    "status",
			wantOptions: []string{"A", "B"},
		},
		{
			name:        "성공: 텍스트 컬럼은 옵션 없음",
			req:         &dto.CreateColumnRequest{Name: "Notes", Type: "text"},
			wantType:    "text",
			wantOptions: []string{},
		},
		{
			name:        "실패: 빈 이름",
			req:         &dto.CreateColumnRequest{Name: "", Type: "text"},
			wantErrCode: response.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockColumnRepository{
				MaxOrderFunc: func(ctx context.Context, bid uuid.UUID) (int, error) {
					return 3, nil
				},
				CreateFunc: func(ctx context.Context, c *domain.BoardColumn) error {
					c.ID = uuid.New()
					return nil
				},
			}
			publisher := &MockPublisher{}
			svc := NewColumnService(repo, &MockMembershipService{}, publisher, nil, testLogger())

			got, err := svc.AddColumn(context.Background(), uuid.New(), boardID, tt.req)
			if tt.wantErrCode != "" {
				assertAppErrorCode(t, err, tt.wantErrCode)
				assert.Empty(t, publisher.Events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantOptions, got.Options)
			assert.Equal(t, 4, got.Order)

			require.Len(t, publisher.Events, 1)
			assert.Equal(t, realtime.TableColumns, publisher.Events[0].Table)
			assert.Equal(t, realtime.EventInsert, publisher.Events[0].EventType)
			assert.Equal(t, boardID, publisher.Events[0].BoardID)
		})
	}
}

func TestColumnService_UpdateColumn(t *testing.T) {
	columnID := uuid.New()
	boardID := uuid.New()
	readonly := true
	name := "Renamed"

	var updated *domain.BoardColumn
	repo := &MockColumnRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.BoardColumn, error) {
			return &domain.BoardColumn{BaseModel: domain.BaseModel{ID: id}, BoardID: boardID, Name: "Status", Type: "status"}, nil
		},
		UpdateFunc: func(ctx context.Context, c *domain.BoardColumn) error {
			updated = c
			return nil
		},
	}
	publisher := &MockPublisher{}
	svc := NewColumnService(repo, &MockMembershipService{}, publisher, nil, testLogger())

	got, err := svc.UpdateColumn(context.Background(), uuid.New(), columnID, &dto.UpdateColumnRequest{
		Name:       &name,
		Options:    []string{"Open", "Closed"},
		IsReadonly: &readonly,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "status", got.Type)
	assert.True(t, got.IsReadonly)
	assert.Equal(t, []string{"Open", "Closed"}, []string(updated.Options))

	require.Len(t, publisher.Events, 1)
	event := publisher.Events[0]
	assert.Equal(t, realtime.EventUpdate, event.EventType)
	var old domain.BoardColumn
	require.NoError(t, json.Unmarshal(event.Old, &old))
	assert.Equal(t, "Status", old.Name)
}
