package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/response"
)

func TestMembershipService_RequireRole(t *testing.T) {
	userID := uuid.New()
	companyID := uuid.New()

	tests := []struct {
		name        string
		stored      domain.Role
		findErr     error
		min         domain.Role
		wantErrCode string
	}{
		{name: "성공: Admin은 Member 권한 충족", stored: domain.RoleAdmin, min: domain.RoleMember},
		{name: "성공: Viewer는 Viewer 권한 충족", stored: domain.RoleViewer, min: domain.RoleViewer},
		{name: "실패: Viewer는 Member 권한 부족", stored: domain.RoleViewer, min: domain.RoleMember, wantErrCode: response.ErrCodeForbidden},
		{name: "실패: Member는 Admin 권한 부족", stored: domain.RoleMember, min: domain.RoleAdmin, wantErrCode: response.ErrCodeForbidden},
		{name: "실패: 멤버가 아님", findErr: gorm.ErrRecordNotFound, min: domain.RoleViewer, wantErrCode: response.ErrCodeForbidden},
		{name: "실패: DB 에러", findErr: errors.New("connection reset"), min: domain.RoleViewer, wantErrCode: response.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockMembershipRepository{
				FindRoleFunc: func(ctx context.Context, uid, cid uuid.UUID) (*domain.UserCompanyRole, error) {
					assert.Equal(t, userID, uid)
					assert.Equal(t, companyID, cid)
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					return &domain.UserCompanyRole{UserID: uid, CompanyID: cid, Role: tt.stored}, nil
				},
			}
			svc := NewMembershipService(repo, &MockBoardRepository{})

			role, err := svc.RequireRole(context.Background(), userID, companyID, tt.min)
			if tt.wantErrCode != "" {
				assertAppErrorCode(t, err, tt.wantErrCode)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.stored, role)
		})
	}
}

func TestMembershipService_RequireBoardRole(t *testing.T) {
	userID := uuid.New()
	companyID := uuid.New()
	boardID := uuid.New()

	t.Run("성공: 보드의 회사 멤버십으로 검사", func(t *testing.T) {
		boards := &MockBoardRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
				return &domain.Board{BaseModel: domain.BaseModel{ID: id}, CompanyID: companyID}, nil
			},
		}
		members := &MockMembershipRepository{
			FindRoleFunc: func(ctx context.Context, uid, cid uuid.UUID) (*domain.UserCompanyRole, error) {
				assert.Equal(t, companyID, cid)
				return &domain.UserCompanyRole{Role: domain.RoleMember}, nil
			},
		}
		board, err := NewMembershipService(members, boards).RequireBoardRole(context.Background(), userID, boardID, domain.RoleMember)
		assert.NoError(t, err)
		assert.Equal(t, boardID, board.ID)
	})

	t.Run("실패: 보드 없음", func(t *testing.T) {
		boards := &MockBoardRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		_, err := NewMembershipService(&MockMembershipRepository{}, boards).RequireBoardRole(context.Background(), userID, boardID, domain.RoleViewer)
		assertAppErrorCode(t, err, response.ErrCodeNotFound)
	})
}
