package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/response"
	"teamup-board-api/internal/service"
)

// ColumnHandler handles board column requests
type ColumnHandler struct {
	columnService service.ColumnService
}

// NewColumnHandler creates a new ColumnHandler
func NewColumnHandler(columnService service.ColumnService) *ColumnHandler {
	return &ColumnHandler{columnService: columnService}
}

// AddColumn godoc
// @Summary      컬럼 추가
// @Description  Board 끝에 컬럼을 추가합니다. 알 수 없는 타입은 text로 처리됩니다
// @Description  status/priority 컬럼에 options가 없으면 기본 목록이 사용됩니다
// @Tags         columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.CreateColumnRequest true "컬럼 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.ColumnResponse} "추가 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /boards/{boardId}/columns [post]
func (h *ColumnHandler) AddColumn(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	var req dto.CreateColumnRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	column, err := h.columnService.AddColumn(c.Request.Context(), userID, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, column)
}

// ListColumns godoc
// @Summary      컬럼 목록
// @Tags         columns
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ColumnResponse} "조회 성공"
// @Router       /boards/{boardId}/columns [get]
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	columns, err := h.columnService.ListColumns(c.Request.Context(), userID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, columns)
}

// UpdateColumn godoc
// @Summary      컬럼 수정
// @Description  이름, options, readonly만 바꿀 수 있습니다. 타입은 변경할 수 없습니다
// @Tags         columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        columnId path string true "Column ID (UUID)"
// @Param        request body dto.UpdateColumnRequest true "컬럼 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.ColumnResponse} "수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "컬럼을 찾을 수 없음"
// @Router       /columns/{columnId} [put]
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	columnID, ok := parseUUIDParam(c, "columnId", "column")
	if !ok {
		return
	}
	var req dto.UpdateColumnRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	column, err := h.columnService.UpdateColumn(c.Request.Context(), userID, columnID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, column)
}
