package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/response"
)

func TestInvitationHandler_CreateInvitation(t *testing.T) {
	companyID := uuid.New()
	path := "/companies/" + companyID.String() + "/invitations"

	tests := []struct {
		name           string
		requestBody    interface{}
		mockService    func(*MockInvitationService)
		expectedStatus int
		expectWarning  string
	}{
		{
			name:        "성공: 초대 생성",
			requestBody: dto.CreateInvitationRequest{Email: "guest@example.com", Role: "Member"},
			mockService: func(m *MockInvitationService) {
				m.InviteByEmailFunc = func(ctx context.Context, inviterID, cid uuid.UUID, req *dto.CreateInvitationRequest) (*dto.InvitationCreatedResponse, error) {
					return &dto.InvitationCreatedResponse{Invitation: dto.InvitationResponse{ID: uuid.New(), CompanyID: cid, Role: req.Role}}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "성공: 이메일 전송 실패 경고",
			requestBody: dto.CreateInvitationRequest{Email: "guest@example.com"},
			mockService: func(m *MockInvitationService) {
				m.InviteByEmailFunc = func(ctx context.Context, inviterID, cid uuid.UUID, req *dto.CreateInvitationRequest) (*dto.InvitationCreatedResponse, error) {
					return &dto.InvitationCreatedResponse{Warning: response.ErrCodeEmailDeliveryFailed}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			expectWarning:  response.ErrCodeEmailDeliveryFailed,
		},
		{
			name:           "실패: 잘못된 역할",
			requestBody:    map[string]string{"email": "guest@example.com", "role": "Owner"},
			mockService:    func(m *MockInvitationService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "실패: 이미 멤버",
			requestBody: dto.CreateInvitationRequest{Email: "member@example.com"},
			mockService: func(m *MockInvitationService) {
				m.InviteByEmailFunc = func(ctx context.Context, inviterID, cid uuid.UUID, req *dto.CreateInvitationRequest) (*dto.InvitationCreatedResponse, error) {
					return nil, response.NewAppError(response.ErrCodeAlreadyMember, "User is already a member", "")
				}
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockInvitationService{}
			tt.mockService(mockService)
			router := setupTestRouter(uuid.New())
			router.POST("/companies/:companyId/invitations", NewInvitationHandler(mockService).CreateInvitation)

			w := performRequest(router, http.MethodPost, path, tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if w.Code == http.StatusCreated {
				var created dto.InvitationCreatedResponse
				decodeData(t, w, &created)
				assert.Equal(t, tt.expectWarning, created.Warning)
			}
		})
	}
}

func TestInvitationHandler_CreateAccessCode_Kind(t *testing.T) {
	companyID := uuid.New()
	path := "/companies/" + companyID.String() + "/access-codes"

	tests := []struct {
		name        string
		requestBody dto.CreateAccessCodeRequest
		wantKind    string
	}{
		{"성공: 이메일 지정 코드", dto.CreateAccessCodeRequest{Email: "guest@example.com", Role: "Viewer"}, "targeted"},
		{"성공: 공개 코드", dto.CreateAccessCodeRequest{Role: "Member"}, "open"},
		{"성공: 공백 이메일은 공개 코드", dto.CreateAccessCodeRequest{Email: "  "}, "open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kind string
			code := "9F3A0C1B"
			mockService := &MockInvitationService{
				IssueTargetedAccessCodeFunc: func(ctx context.Context, inviterID, cid uuid.UUID, email string, role string) (*dto.InvitationResponse, error) {
					kind = "targeted"
					return &dto.InvitationResponse{ID: uuid.New(), Email: &email, AccessCode: &code}, nil
				},
				IssueOpenAccessCodeFunc: func(ctx context.Context, inviterID, cid uuid.UUID, role string) (*dto.InvitationResponse, error) {
					kind = "open"
					return &dto.InvitationResponse{ID: uuid.New(), AccessCode: &code}, nil
				},
			}
			router := setupTestRouter(uuid.New())
			router.POST("/companies/:companyId/access-codes", NewInvitationHandler(mockService).CreateAccessCode)

			w := performRequest(router, http.MethodPost, path, tt.requestBody)

			assert.Equal(t, http.StatusCreated, w.Code)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestInvitationHandler_Redemption_FailureIsOK(t *testing.T) {
	userID := uuid.New()
	mockService := &MockInvitationService{
		ValidateAccessCodeFunc: func(ctx context.Context, uid uuid.UUID, code string) (*dto.RedemptionResponse, error) {
			return &dto.RedemptionResponse{Success: false, Error: "Invalid access code"}, nil
		},
		AcceptInvitationFunc: func(ctx context.Context, uid uuid.UUID, token string) (*dto.RedemptionResponse, error) {
			companyID := uuid.New()
			return &dto.RedemptionResponse{Success: true, CompanyID: &companyID, Role: "Member"}, nil
		},
	}
	handler := NewInvitationHandler(mockService)
	router := setupTestRouter(userID)
	router.POST("/access-codes/validate", handler.ValidateAccessCode)
	router.POST("/invitations/accept", handler.AcceptInvitation)

	w := performRequest(router, http.MethodPost, "/access-codes/validate", dto.ValidateAccessCodeRequest{Code: "ZZZZ"})
	require.Equal(t, http.StatusOK, w.Code)
	var failed dto.RedemptionResponse
	decodeData(t, w, &failed)
	assert.False(t, failed.Success)
	assert.Equal(t, "Invalid access code", failed.Error)

	w = performRequest(router, http.MethodPost, "/invitations/accept", dto.AcceptInvitationRequest{Token: "tok"})
	require.Equal(t, http.StatusOK, w.Code)
	var accepted dto.RedemptionResponse
	decodeData(t, w, &accepted)
	assert.True(t, accepted.Success)
	assert.NotNil(t, accepted.CompanyID)
}

func TestInvitationHandler_GetInvitationByToken(t *testing.T) {
	var gotToken string
	mockService := &MockInvitationService{
		GetInvitationByTokenFunc: func(ctx context.Context, token string) (*dto.InvitationPreviewResponse, error) {
			gotToken = token
			if token == "missing" {
				return nil, response.NewNotFoundError("Invitation not found", "")
			}
			return &dto.InvitationPreviewResponse{CompanyName: "Acme", Role: "Member", Status: "pending"}, nil
		},
	}
	router := setupTestRouter(uuid.Nil)
	router.GET("/invitations/:token", NewInvitationHandler(mockService).GetInvitationByToken)

	w := performRequest(router, http.MethodGet, "/invitations/abc123", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", gotToken)

	w = performRequest(router, http.MethodGet, "/invitations/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvitationHandler_CancelInvitation(t *testing.T) {
	companyID := uuid.New()
	invitationID := uuid.New()
	var cancelled uuid.UUID
	mockService := &MockInvitationService{
		CancelInvitationFunc: func(ctx context.Context, userID, cid, iid uuid.UUID) error {
			cancelled = iid
			return nil
		},
	}
	router := setupTestRouter(uuid.New())
	router.POST("/companies/:companyId/invitations/:invitationId/cancel", NewInvitationHandler(mockService).CancelInvitation)

	w := performRequest(router, http.MethodPost, "/companies/"+companyID.String()+"/invitations/"+invitationID.String()+"/cancel", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, invitationID, cancelled)
}
