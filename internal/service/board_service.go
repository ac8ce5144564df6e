package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/metrics"
	"teamup-board-api/internal/repository"
	"teamup-board-api/internal/response"
)

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, userID, companyID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	ListBoards(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.BoardResponse, error)
	GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error)
	UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo  repository.BoardRepository
	membership MembershipService
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	membership MembershipService,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo:  boardRepo,
		membership: membership,
		metrics:    m,
		logger:     logger,
	}
}

// CreateBoard creates a new board. Requires Member.
func (s *boardServiceImpl) CreateBoard(ctx context.Context, userID, companyID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if _, err := s.membership.RequireRole(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Board name is required", "")
	}

	board := &domain.Board{
		CompanyID:   companyID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   &userID,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		s.logger.Error("Failed to create board", zap.String("company_id", companyID.String()), zap.Error(err))
		return nil, internalError("Failed to create board", err)
	}

	s.metrics.IncrementBoardCreated()
	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("company_id", companyID.String()),
		zap.String("user_id", userID.String()))
	return toBoardResponse(board), nil
}

// ListBoards returns a company's boards, newest first
func (s *boardServiceImpl) ListBoards(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.BoardResponse, error) {
	if _, err := s.membership.RequireRole(ctx, userID, companyID, domain.RoleViewer); err != nil {
		return nil, err
	}
	boards, err := s.boardRepo.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, internalError("Failed to list boards", err)
	}
	responses := make([]*dto.BoardResponse, 0, len(boards))
	for _, b := range boards {
		responses = append(responses, toBoardResponse(b))
	}
	return responses, nil
}

// GetBoard returns a board of a company the caller belongs to
func (s *boardServiceImpl) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error) {
	board, err := s.membership.RequireBoardRole(ctx, userID, boardID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	return toBoardResponse(board), nil
}

// UpdateBoard changes a board's name or description. Requires Member.
func (s *boardServiceImpl) UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	board, err := s.membership.RequireBoardRole(ctx, userID, boardID, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewValidationError("Board name is required", "")
		}
		board.Name = name
	}
	if req.Description != nil {
		board.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, internalError("Failed to update board", err)
	}

	s.logger.Info("Board updated", zap.String("board_id", boardID.String()))
	return toBoardResponse(board), nil
}

// DeleteBoard removes a board with its columns, items, values and attachments. Requires Admin.
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if _, err := s.membership.RequireBoardRole(ctx, userID, boardID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		return notFoundOr(err, "Board not found", "Failed to delete board")
	}

	s.logger.Info("Board deleted",
		zap.String("board_id", boardID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

func toBoardResponse(b *domain.Board) *dto.BoardResponse {
	return &dto.BoardResponse{
		ID:          b.ID,
		CompanyID:   b.CompanyID,
		Name:        b.Name,
		Description: b.Description,
		CreatedBy:   b.CreatedBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
