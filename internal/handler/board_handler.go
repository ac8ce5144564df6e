package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/response"
	"teamup-board-api/internal/service"
)

// BoardHandler handles board requests, including the grid read
type BoardHandler struct {
	boardService service.BoardService
	cellService  service.CellService
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardService service.BoardService, cellService service.CellService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		cellService:  cellService,
	}
}

// CreateBoard godoc
// @Summary      Board 생성
// @Description  회사에 새 Board를 만듭니다 (Member 이상)
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Param        request body dto.CreateBoardRequest true "Board 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.BoardResponse} "Board 생성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /companies/{companyId}/boards [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	var req dto.CreateBoardRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), userID, companyID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, board)
}

// ListBoards godoc
// @Summary      Board 목록
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Param        companyId path string true "Company ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.BoardResponse} "조회 성공"
// @Failure      403 {object} response.ErrorResponse "회사 멤버가 아님"
// @Router       /companies/{companyId}/boards [get]
func (h *BoardHandler) ListBoards(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId", "company")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardService.ListBoards(c.Request.Context(), userID, companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, boards)
}

// GetBoard godoc
// @Summary      Board 조회
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse} "조회 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "Board를 찾을 수 없음"
// @Router       /boards/{boardId} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// UpdateBoard godoc
// @Summary      Board 수정
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.UpdateBoardRequest true "Board 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse} "수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "Board를 찾을 수 없음"
// @Router       /boards/{boardId} [put]
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	var req dto.UpdateBoardRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	board, err := h.boardService.UpdateBoard(c.Request.Context(), userID, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// DeleteBoard godoc
// @Summary      Board 삭제
// @Description  Board와 컬럼, 아이템, 값을 함께 삭제합니다 (Admin만 가능)
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "Board를 찾을 수 없음"
// @Router       /boards/{boardId} [delete]
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), userID, boardID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Board deleted successfully"})
}

// GetGrid godoc
// @Summary      Board 그리드 조회
// @Description  컬럼, 아이템, 저장된 값, 해석된 셀 값과 상태 통계를 한 번에 반환합니다
// @Description  q는 아이템 이름, status와 priority는 첫 번째 해당 타입 컬럼의 표시값으로 필터링합니다
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        q query string false "아이템 이름 검색어"
// @Param        status query string false "Status 필터" example(Done)
// @Param        priority query string false "Priority 필터" example(High)
// @Success      200 {object} response.SuccessResponse{data=dto.GridResponse} "조회 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "Board를 찾을 수 없음"
// @Router       /boards/{boardId}/grid [get]
func (h *BoardHandler) GetGrid(c *gin.Context) {
	boardID, ok := parseUUIDParam(c, "boardId", "board")
	if !ok {
		return
	}
	var filters dto.GridFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	grid, err := h.cellService.GetGrid(c.Request.Context(), userID, boardID, &filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, grid)
}
