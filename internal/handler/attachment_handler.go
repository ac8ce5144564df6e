package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/response"
	"teamup-board-api/internal/service"
)

// AttachmentHandler handles uploads into file cells
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// GeneratePresignedURL godoc
// @Summary      업로드 URL 발급
// @Description  file 컬럼 셀에 올릴 파일의 S3 presigned PUT URL을 발급합니다
// @Description  업로드 후 confirm을 호출해야 셀 값이 됩니다. 확인되지 않은 파일은 1시간 후 삭제됩니다
// @Description  최대 50MB, 허용된 확장자와 Content-Type만 가능합니다
// @Tags         attachments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path string true "Item ID (UUID)"
// @Param        columnId path string true "Column ID (UUID)"
// @Param        request body dto.PresignedURLRequest true "파일 정보"
// @Success      200 {object} response.SuccessResponse{data=dto.PresignedURLResponse} "발급 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 파일 정보"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /items/{itemId}/values/{columnId}/attachments/presigned-url [post]
func (h *AttachmentHandler) GeneratePresignedURL(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId", "item")
	if !ok {
		return
	}
	columnID, ok := parseUUIDParam(c, "columnId", "column")
	if !ok {
		return
	}
	var req dto.PresignedURLRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	upload, err := h.attachmentService.CreateUploadURL(c.Request.Context(), userID, itemID, columnID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, upload)
}

// ConfirmUpload godoc
// @Summary      업로드 확인
// @Description  업로드된 파일을 셀 값으로 저장합니다. 이전 파일은 삭제됩니다
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CellResponse} "확인 성공"
// @Failure      400 {object} response.ErrorResponse "이미 확인되었거나 만료됨"
// @Failure      404 {object} response.ErrorResponse "첨부파일을 찾을 수 없음"
// @Router       /attachments/{attachmentId}/confirm [post]
func (h *AttachmentHandler) ConfirmUpload(c *gin.Context) {
	attachmentID, ok := parseUUIDParam(c, "attachmentId", "attachment")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cell, err := h.attachmentService.ConfirmUpload(c.Request.Context(), userID, attachmentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, cell)
}

// GetDownloadURL godoc
// @Summary      다운로드 URL 발급
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.DownloadURLResponse} "발급 성공"
// @Failure      404 {object} response.ErrorResponse "첨부파일을 찾을 수 없음"
// @Router       /attachments/{attachmentId}/url [get]
func (h *AttachmentHandler) GetDownloadURL(c *gin.Context) {
	attachmentID, ok := parseUUIDParam(c, "attachmentId", "attachment")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	download, err := h.attachmentService.GetDownloadURL(c.Request.Context(), userID, attachmentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, download)
}

// ListCellAttachments godoc
// @Summary      셀 첨부파일 목록
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path string true "Item ID (UUID)"
// @Param        columnId path string true "Column ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.AttachmentResponse} "조회 성공"
// @Router       /items/{itemId}/values/{columnId}/attachments [get]
func (h *AttachmentHandler) ListCellAttachments(c *gin.Context) {
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

	attachments, err := h.attachmentService.ListCellAttachments(c.Request.Context(), userID, itemID, columnID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, attachments)
}
