package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/response"
	"teamup-board-api/internal/service"
)

// InvitationHandler handles email invitations and access codes
type InvitationHandler struct {
	invitationService service.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler
func NewInvitationHandler(invitationService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// CreateInvitation godoc
// @Summary      이메일 초대
// @Description  초대 행을 저장하고 초대 링크를 이메일로 보냅니다 (Admin만 가능)
// @Description  이메일 전송이 실패해도 초대는 유지되며 warning=EMAIL_DELIVERY_FAILED가 반환됩니다
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Param        request body dto.CreateInvitationRequest true "초대 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.InvitationCreatedResponse} "초대 생성"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      409 {object} response.ErrorResponse "이미 멤버이거나 대기 중인 초대가 있음"
// @Router       /companies/{companyId}/invitations [post]
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	var req dto.CreateInvitationRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	created, err := h.invitationService.InviteByEmail(c.Request.Context(), userID, companyID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, created)
}

// ListInvitations godoc
// @Summary      대기 중인 초대 목록
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.InvitationResponse} "조회 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /companies/{companyId}/invitations [get]
func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invitations, err := h.invitationService.ListPendingInvitations(c.Request.Context(), userID, companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, invitations)
}

// CancelInvitation godoc
// @Summary      초대 취소
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Param        invitationId path string true "Invitation ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "취소 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "초대를 찾을 수 없음"
// @Router       /companies/{companyId}/invitations/{invitationId}/cancel [post]
func (h *InvitationHandler) CancelInvitation(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	invitationID, ok := parseUUIDParam(c, "invitationId", "invitation")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.invitationService.CancelInvitation(c.Request.Context(), userID, companyID, invitationID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Invitation cancelled successfully"})
}

// CreateAccessCode godoc
// @Summary      액세스 코드 발급
// @Description  email을 지정하면 해당 사용자만, 생략하면 누구나 한 번 사용할 수 있는 코드를 발급합니다
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Param        request body dto.CreateAccessCodeRequest true "코드 발급 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.InvitationResponse} "발급 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /companies/{companyId}/access-codes [post]
func (h *InvitationHandler) CreateAccessCode(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	var req dto.CreateAccessCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var (
		code *dto.InvitationResponse
		err  error
	)
	if strings.TrimSpace(req.Email) != "" {
		code, err = h.invitationService.IssueTargetedAccessCode(c.Request.Context(), userID, companyID, req.Email, req.Role)
	} else {
		code, err = h.invitationService.IssueOpenAccessCode(c.Request.Context(), userID, companyID, req.Role)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, code)
}

// ListAccessCodes godoc
// @Summary      액세스 코드 목록
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.InvitationResponse} "조회 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /companies/{companyId}/access-codes [get]
func (h *InvitationHandler) ListAccessCodes(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	codes, err := h.invitationService.ListAccessCodes(c.Request.Context(), userID, companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, codes)
}

// DeleteAccessCode godoc
// @Summary      액세스 코드 삭제
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Param        invitationId path string true "Invitation ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "코드를 찾을 수 없음"
// @Router       /companies/{companyId}/access-codes/{invitationId} [delete]
func (h *InvitationHandler) DeleteAccessCode(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	invitationID, ok := parseUUIDParam(c, "invitationId", "invitation")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.invitationService.DeleteAccessCode(c.Request.Context(), userID, companyID, invitationID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Access code deleted successfully"})
}

// GetInvitationByToken godoc
// @Summary      초대 미리보기
// @Description  수락 전 초대 정보를 보여줍니다. 인증이 필요 없습니다
// @Tags         invitations
// @Produce      json
// @Param        token path string true "Invitation token"
// @Success      200 {object} response.SuccessResponse{data=dto.InvitationPreviewResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "초대를 찾을 수 없음"
// @Router       /invitations/{token} [get]
func (h *InvitationHandler) GetInvitationByToken(c *gin.Context) {
	preview, err := h.invitationService.GetInvitationByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, preview)
}

// AcceptInvitation godoc
// @Summary      초대 수락
// @Description  사용 불가한 토큰은 HTTP 200과 success=false로 응답합니다
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AcceptInvitationRequest true "초대 토큰"
// @Success      200 {object} response.SuccessResponse{data=dto.RedemptionResponse} "처리 결과"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Router       /invitations/accept [post]
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	var req dto.AcceptInvitationRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.invitationService.AcceptInvitation(c.Request.Context(), userID, req.Token)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ValidateAccessCode godoc
// @Summary      액세스 코드 사용
// @Description  사용 불가한 코드는 HTTP 200과 success=false로 응답합니다
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ValidateAccessCodeRequest true "액세스 코드"
// @Success      200 {object} response.SuccessResponse{data=dto.RedemptionResponse} "처리 결과"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Router       /access-codes/validate [post]
func (h *InvitationHandler) ValidateAccessCode(c *gin.Context) {
	var req dto.ValidateAccessCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.invitationService.ValidateAccessCode(c.Request.Context(), userID, req.Code)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
