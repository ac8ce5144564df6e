package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/response"
	"teamup-board-api/internal/service"
)

// AuthHandler handles account and session requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp godoc
// @Summary      회원가입
// @Description  이메일과 비밀번호로 계정을 만들고 access token을 발급합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.SignUpRequest true "회원가입 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.SessionResponse} "가입 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      409 {object} response.ErrorResponse "이미 가입된 이메일"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, session)
}

// SignIn godoc
// @Summary      로그인
// @Description  이메일과 비밀번호를 확인하고 access token을 발급합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.SignInRequest true "로그인 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.SessionResponse} "로그인 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "이메일 또는 비밀번호 불일치"
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, session)
}

// SignOut godoc
// @Summary      로그아웃
// @Description  현재 access token을 폐기합니다
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse "로그아웃 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	auth, ok := extractAuthData(c)
	if !ok {
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), auth.Token); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Signed out"})
}

// GetSession godoc
// @Summary      세션 조회
// @Description  로그인한 사용자와 소속 회사 목록을 반환합니다
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.SessionContextResponse} "조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Router       /auth/session [get]
func (h *AuthHandler) GetSession(c *gin.Context) {
	auth, ok := extractAuthData(c)
	if !ok {
		return
	}

	session, err := h.authService.GetSession(c.Request.Context(), auth.Token)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, session)
}
