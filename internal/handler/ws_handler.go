package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/middleware"
	"teamup-board-api/internal/realtime"
	"teamup-board-api/internal/response"
	"teamup-board-api/internal/service"
)

// WSHandler upgrades board subscriptions to websockets
type WSHandler struct {
	validator  middleware.TokenValidator
	membership service.MembershipService
	hub        *realtime.Hub
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

// NewWSHandler creates a new WSHandler. Browser origins are checked against allowedOrigins.
func NewWSHandler(validator middleware.TokenValidator, membership service.MembershipService, hub *realtime.Hub, allowedOrigins []string, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		validator:  validator,
		membership: membership,
		hub:        hub,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.OriginAllowed(origin, allowedOrigins)
			},
		},
	}
}

// ServeBoard godoc
// @Summary      Board 실시간 구독
// @Description  WebSocket으로 Board의 아이템, 컬럼, 값 변경 이벤트를 받습니다
// @Description  브라우저는 헤더를 설정할 수 없으므로 token 쿼리 파라미터도 허용합니다
// @Tags         realtime
// @Param        boardId path string true "Board ID (UUID)"
// @Param        token query string false "Access token"
// @Success      101 "Switching Protocols"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /boards/{boardId}/ws [get]
func (h *WSHandler) ServeBoard(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "boardId", "board")
	if !ok {
		return
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		token, _ = middleware.BearerToken(c)
	}
	if token == "" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Access token is required")
		return
	}
	userID, err := h.validator.ValidateToken(c.Request.Context(), token)
	if err != nil {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
		return
	}
	if _, err := h.membership.RequireBoardRole(c.Request.Context(), userID, boardID, domain.RoleViewer); err != nil {
		handleServiceError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.Warn("WebSocket upgrade failed", zap.String("board_id", boardID.String()), zap.Error(err))
		return
	}
	h.hub.Serve(conn, boardID, userID)
}
