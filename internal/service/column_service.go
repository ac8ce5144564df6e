package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamup-board-api/internal/cellvalue"
	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/metrics"
	"teamup-board-api/internal/realtime"
	"teamup-board-api/internal/repository"
	"teamup-board-api/internal/response"
)

// ColumnService defines the interface for board column logic
type ColumnService interface {
	AddColumn(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error)
	ListColumns(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ColumnResponse, error)
	UpdateColumn(ctx context.Context, userID, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error)
}

type columnServiceImpl struct {
	columnRepo repository.ColumnRepository
	membership MembershipService
	notifier   changeNotifier
	logger     *zap.Logger
}

// NewColumnService creates a new instance of ColumnService
func NewColumnService(
	columnRepo repository.ColumnRepository,
	membership MembershipService,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) ColumnService {
	return &columnServiceImpl{
		columnRepo: columnRepo,
		membership: membership,
		notifier:   changeNotifier{publisher: publisher, metrics: m, logger: logger},
		logger:     logger,
	}
}

// AddColumn appends a column to the board. Status and priority columns
// without options get the default lists. Existing items are not backfilled.
func (s *columnServiceImpl) AddColumn(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
	if _, err := s.membership.RequireBoardRole(ctx, userID, boardID, domain.RoleMember); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Column name is required", "")
	}

	columnType := cellvalue.Normalize(req.Type)
	options := cleanOptions(req.Options)
	if len(options) == 0 {
		options = cellvalue.DefaultOptions(columnType)
	}

	maxOrder, err := s.columnRepo.MaxOrder(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to determine column order", err)
	}

	column := &domain.BoardColumn{
		BoardID:    boardID,
		Name:       name,
		Type:       string(columnType),
		Order:      maxOrder + 1,
		Options:    options,
		IsReadonly: req.IsReadonly,
	}
	if err := s.columnRepo.Create(ctx, column); err != nil {
		s.logger.Error("Failed to create column", zap.String("board_id", boardID.String()), zap.Error(err))
		return nil, internalError("Failed to create column", err)
	}

	s.notifier.notify(ctx, realtime.TableColumns, realtime.EventInsert, boardID, column, nil)
	s.logger.Info("Column added",
		zap.String("board_id", boardID.String()),
		zap.String("column_id", column.ID.String()),
		zap.String("type", column.Type))
	return toColumnResponse(column), nil
}

// ListColumns returns a board's columns by order
func (s *columnServiceImpl) ListColumns(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ColumnResponse, error) {
	if _, err := s.membership.RequireBoardRole(ctx, userID, boardID, domain.RoleViewer); err != nil {
		return nil, err
	}
	columns, err := s.columnRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to list columns", err)
	}
	responses := make([]*dto.ColumnResponse, 0, len(columns))
	for _, c := range columns {
		responses = append(responses, toColumnResponse(c))
	}
	return responses, nil
}

// UpdateColumn changes name, options or readonly. The type is immutable.
func (s *columnServiceImpl) UpdateColumn(ctx context.Context, userID, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error) {
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return nil, notFoundOr(err, "Column not found", "Failed to load column")
	}
	if _, err := s.membership.RequireBoardRole(ctx, userID, column.BoardID, domain.RoleMember); err != nil {
		return nil, err
	}
	previous := *column

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewValidationError("Column name is required", "")
		}
		column.Name = name
	}
	if req.Options != nil {
		column.Options = cleanOptions(req.Options)
	}
	if req.IsReadonly != nil {
		column.IsReadonly = *req.IsReadonly
	}

	if err := s.columnRepo.Update(ctx, column); err != nil {
		return nil, internalError("Failed to update column", err)
	}

	s.notifier.notify(ctx, realtime.TableColumns, realtime.EventUpdate, column.BoardID, column, &previous)
	s.logger.Info("Column updated",
		zap.String("board_id", column.BoardID.String()),
		zap.String("column_id", columnID.String()))
	return toColumnResponse(column), nil
}

// cleanOptions trims options and drops blanks and duplicates, keeping order
func cleanOptions(options []string) []string {
	if options == nil {
		return nil
	}
	seen := make(map[string]bool, len(options))
	cleaned := make([]string, 0, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		cleaned = append(cleaned, o)
	}
	return cleaned
}

func toColumnResponse(c *domain.BoardColumn) *dto.ColumnResponse {
	options := []string(c.Options)
	if options == nil {
		options = []string{}
	}
	return &dto.ColumnResponse{
		ID:         c.ID,
		BoardID:    c.BoardID,
		Name:       c.Name,
		Type:       c.Type,
		Order:      c.Order,
		Options:    options,
		IsReadonly: c.IsReadonly,
		CreatedAt:  c.CreatedAt,
	}
}
