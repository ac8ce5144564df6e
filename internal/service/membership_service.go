package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/repository"
	"teamup-board-api/internal/response"
)

// MembershipService answers role checks. Roles are ordered Viewer < Member < Admin.
type MembershipService interface {
	RequireRole(ctx context.Context, userID, companyID uuid.UUID, min domain.Role) (domain.Role, error)
	RequireBoardRole(ctx context.Context, userID, boardID uuid.UUID, min domain.Role) (*domain.Board, error)
}

type membershipServiceImpl struct {
	membershipRepo repository.MembershipRepository
	boardRepo      repository.BoardRepository
}

// NewMembershipService creates a new instance of MembershipService
func NewMembershipService(membershipRepo repository.MembershipRepository, boardRepo repository.BoardRepository) MembershipService {
	return &membershipServiceImpl{
		membershipRepo: membershipRepo,
		boardRepo:      boardRepo,
	}
}

// RequireRole returns the caller's role when it grants at least min
func (s *membershipServiceImpl) RequireRole(ctx context.Context, userID, companyID uuid.UUID, min domain.Role) (domain.Role, error) {
	membership, err := s.membershipRepo.FindRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", response.NewForbiddenError("You are not a member of this company", "")
		}
		return "", internalError("Failed to check membership", err)
	}
	if !membership.Role.AtLeast(min) {
		return membership.Role, response.NewForbiddenError("This action requires the "+string(min)+" role", "")
	}
	return membership.Role, nil
}

// RequireBoardRole loads the board and checks the caller's role in its company
func (s *membershipServiceImpl) RequireBoardRole(ctx context.Context, userID, boardID uuid.UUID, min domain.Role) (*domain.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, notFoundOr(err, "Board not found", "Failed to load board")
	}
	if _, err := s.RequireRole(ctx, userID, board.CompanyID, min); err != nil {
		return nil, err
	}
	return board, nil
}
