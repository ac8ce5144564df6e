package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/response"
	"teamup-board-api/internal/service"
)

// ItemHandler handles board item requests
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// AddItem godoc
// @Summary      아이템 추가
// @Description  아이템과 기존 컬럼마다 기본 값을 함께 생성합니다
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.CreateItemRequest true "아이템 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.ItemResponse} "추가 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /boards/{boardId}/items [post]
func (h *ItemHandler) AddItem(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	var req dto.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	item, err := h.itemService.AddItem(c.Request.Context(), userID, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, item)
}

// ListItems godoc
// @Summary      아이템 목록
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ItemResponse} "조회 성공"
// @Router       /boards/{boardId}/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.itemService.ListItems(c.Request.Context(), userID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, items)
}

// RenameItem godoc
// @Summary      아이템 이름 변경
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path string true "Item ID (UUID)"
// @Param        request body dto.UpdateItemRequest true "아이템 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.ItemResponse} "수정 성공"
// @Failure      404 {object} response.ErrorResponse "아이템을 찾을 수 없음"
// @Router       /items/{itemId} [put]
func (h *ItemHandler) RenameItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId", "item")
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	item, err := h.itemService.RenameItem(c.Request.Context(), userID, itemID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, item)
}

// DeleteItem godoc
// @Summary      아이템 삭제
// @Description  아이템의 값과 첨부파일도 함께 삭제됩니다
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path string true "Item ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "삭제 성공"
// @Failure      404 {object} response.ErrorResponse "아이템을 찾을 수 없음"
// @Router       /items/{itemId} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId", "item")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}
