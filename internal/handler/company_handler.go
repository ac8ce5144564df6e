package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/response"
	"teamup-board-api/internal/service"
)

// CompanyHandler handles company and membership requests
type CompanyHandler struct {
	companyService service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// CreateCompany godoc
// @Summary      회사 생성
// @Description  회사를 만들고 생성자를 Admin으로 등록합니다
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCompanyRequest true "회사 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.CompanyResponse} "생성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, company)
}

// ListMyCompanies godoc
// @Summary      내 회사 목록
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.CompanyResponse} "조회 성공"
// @Router       /companies [get]
func (h *CompanyHandler) ListMyCompanies(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	companies, err := h.companyService.ListMyCompanies(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, companies)
}

// GetCompany godoc
// @Summary      회사 조회
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CompanyResponse} "조회 성공"
// @Failure      403 {object} response.ErrorResponse "회사 멤버가 아님"
// @Failure      404 {object} response.ErrorResponse "회사를 찾을 수 없음"
// @Router       /companies/{companyId} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), userID, companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, company)
}

// ListMembers godoc
// @Summary      회사 멤버 목록
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.MemberResponse} "조회 성공"
// @Failure      403 {object} response.ErrorResponse "회사 멤버가 아님"
// @Router       /companies/{companyId}/members [get]
func (h *CompanyHandler) ListMembers(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	members, err := h.companyService.ListMembers(c.Request.Context(), userID, companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, members)
}

// UpdateMemberRole godoc
// @Summary      멤버 역할 변경
// @Description  Admin만 가능하며 마지막 Admin은 강등할 수 없습니다
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Param        request body dto.UpdateMemberRoleRequest true "역할 변경 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.MemberResponse} "변경 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "멤버를 찾을 수 없음"
// @Router       /companies/{companyId}/members/{userId}/role [put]
func (h *CompanyHandler) UpdateMemberRole(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	memberID, ok := parseUUIDParam(c, "userId", "user")
	if !ok {
		return
	}
	var req dto.UpdateMemberRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	member, err := h.companyService.UpdateMemberRole(c.Request.Context(), userID, companyID, memberID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, member)
}

// RemoveMember godoc
// @Summary      멤버 제거
// @Description  Admin만 가능하며 마지막 Admin은 제거할 수 없습니다
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "제거 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "멤버를 찾을 수 없음"
// @Router       /companies/{companyId}/members/{userId} [delete]
func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	memberID, ok := parseUUIDParam(c, "userId", "user")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.companyService.RemoveMember(c.Request.Context(), userID, companyID, memberID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}
