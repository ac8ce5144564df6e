package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/response"
	"teamup-board-api/internal/service"
)

// CellHandler handles reads and writes of single cells
type CellHandler struct {
	cellService service.CellService
}

// NewCellHandler creates a new CellHandler
func NewCellHandler(cellService service.CellService) *CellHandler {
	return &CellHandler{cellService: cellService}
}

// CommitCellValue godoc
// @Summary      셀 값 저장
// @Description  입력값을 컬럼 타입에 맞게 변환하여 저장합니다. 마지막 저장이 우선합니다
// @Description  null 또는 빈 문자열은 값을 지웁니다. readonly 컬럼과 자동 기록 컬럼은 저장할 수 없습니다
// @Tags         cells
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path string true "Item ID (UUID)"
// @Param        columnId path string true "Column ID (UUID)"
// @Param        request body dto.CommitCellRequest true "셀 값"
// @Success      200 {object} response.SuccessResponse{data=dto.CellResponse} "저장 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 값 또는 readonly 컬럼"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "아이템 또는 컬럼을 찾을 수 없음"
// @Router       /items/{itemId}/values/{columnId} [put]
func (h *CellHandler) CommitCellValue(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId", "item")
	if !ok {
		return
	}
	columnID, ok := parseUUIDParam(c, "columnId", "column")
	if !ok {
		return
	}
	var req dto.CommitCellRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cell, err := h.cellService.CommitCellValue(c.Request.Context(), userID, itemID, columnID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, cell)
}

// GetCellValue godoc
// @Summary      셀 값 조회
// @Tags         cells
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path string true "Item ID (UUID)"
// @Param        columnId path string true "Column ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CellResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "아이템 또는 컬럼을 찾을 수 없음"
// @Router       /items/{itemId}/values/{columnId} [get]
func (h *CellHandler) GetCellValue(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId", "item")
	if !ok {
		return
	}
	columnID, ok := parseUUIDParam(c, "columnId", "column")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cell, err := h.cellService.ResolveCellValue(c.Request.Context(), userID, itemID, columnID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, cell)
}
