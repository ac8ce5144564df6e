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

// CellService defines the interface for reading and writing typed cells
type CellService interface {
	GetGrid(ctx context.Context, userID, boardID uuid.UUID, filters *dto.GridFilters) (*dto.GridResponse, error)
	CommitCellValue(ctx context.Context, userID, itemID, columnID uuid.UUID, req *dto.CommitCellRequest) (*dto.CellResponse, error)
	ResolveCellValue(ctx context.Context, userID, itemID, columnID uuid.UUID) (*dto.CellResponse, error)
}

type cellServiceImpl struct {
	itemRepo   repository.ItemRepository
	columnRepo repository.ColumnRepository
	valueRepo  repository.ItemValueRepository
	membership MembershipService
	notifier   changeNotifier
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewCellService creates a new instance of CellService
func NewCellService(
	itemRepo repository.ItemRepository,
	columnRepo repository.ColumnRepository,
	valueRepo repository.ItemValueRepository,
	membership MembershipService,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) CellService {
	return &cellServiceImpl{
		itemRepo:   itemRepo,
		columnRepo: columnRepo,
		valueRepo:  valueRepo,
		membership: membership,
		notifier:   changeNotifier{publisher: publisher, metrics: m, logger: logger},
		metrics:    m,
		logger:     logger,
	}
}

// GetGrid returns the board with its columns, items, stored values and
// resolved cells. Filters narrow the items; stats always cover every item.
func (s *cellServiceImpl) GetGrid(ctx context.Context, userID, boardID uuid.UUID, filters *dto.GridFilters) (*dto.GridResponse, error) {
	board, err := s.membership.RequireBoardRole(ctx, userID, boardID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	columns, err := s.columnRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to load columns", err)
	}
	items, err := s.itemRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to load items", err)
	}
	values, err := s.valueRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to load values", err)
	}

	g := newGrid(columns, values)
	visible := g.filter(items, filters)

	resp := &dto.GridResponse{
		Board:   *toBoardResponse(board),
		Columns: make([]dto.ColumnResponse, 0, len(columns)),
		Items:   make([]dto.ItemResponse, 0, len(visible)),
		Values:  make([]dto.ItemValueResponse, 0, len(values)),
		Cells:   make(map[uuid.UUID]map[uuid.UUID]cellvalue.CellValue, len(visible)),
		Stats:   g.stats(items),
	}
	for _, c := range columns {
		resp.Columns = append(resp.Columns, *toColumnResponse(c))
	}
	for _, item := range visible {
		resp.Items = append(resp.Items, *toItemResponse(item))
		row := make(map[uuid.UUID]cellvalue.CellValue, len(columns))
		for _, c := range columns {
			row[c.ID] = g.resolve(item.ID, c)
		}
		resp.Cells[item.ID] = row
	}
	for _, v := range values {
		if _, ok := resp.Cells[v.ItemID]; ok {
			resp.Values = append(resp.Values, *toItemValueResponse(v))
		}
	}
	return resp, nil
}

// CommitCellValue converts raw input to the column's storage shape and
// upserts the cell. Last write wins.
func (s *cellServiceImpl) CommitCellValue(ctx context.Context, userID, itemID, columnID uuid.UUID, req *dto.CommitCellRequest) (*dto.CellResponse, error) {
	item, column, err := s.loadCell(ctx, userID, itemID, columnID, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	spec := cellvalue.SpecOf(column)
	if spec.IsReadonly() {
		s.metrics.RecordCellCommit(string(spec.Type), false)
		return nil, response.NewAppError(response.ErrCodeReadonlyColumn, "This column is read-only", "")
	}
	stored, err := cellvalue.Commit(spec, req.Value)
	if err != nil {
		s.metrics.RecordCellCommit(string(spec.Type), false)
		return nil, response.NewValidationError("Invalid value for "+string(spec.Type)+" column", err.Error())
	}

	var previous interface{}
	if old, err := s.valueRepo.Find(ctx, itemID, columnID); err == nil {
		previous = old
	} else if !isNotFound(err) {
		return nil, internalError("Failed to load cell", err)
	}

	row := &domain.ItemValue{ItemID: itemID, ColumnID: columnID}
	stored.ApplyTo(row)
	inserted, err := s.valueRepo.Upsert(ctx, row)
	if err != nil {
		s.logger.Error("Failed to save cell",
			zap.String("item_id", itemID.String()),
			zap.String("column_id", columnID.String()),
			zap.Error(err))
		return nil, internalError("Failed to save cell", err)
	}
	s.metrics.RecordCellCommit(string(spec.Type), true)

	eventType := realtime.EventUpdate
	if inserted {
		eventType = realtime.EventInsert
		previous = nil
	}
	s.notifier.notify(ctx, realtime.TableValues, eventType, item.BoardID, row, previous)

	s.logger.Info("Cell committed",
		zap.String("board_id", item.BoardID.String()),
		zap.String("item_id", itemID.String()),
		zap.String("column_id", columnID.String()),
		zap.String("user_id", userID.String()))
	return toCellResponse(itemID, column, row), nil
}

// ResolveCellValue returns the stored row and resolved value of one cell
func (s *cellServiceImpl) ResolveCellValue(ctx context.Context, userID, itemID, columnID uuid.UUID) (*dto.CellResponse, error) {
	_, column, err := s.loadCell(ctx, userID, itemID, columnID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	row, err := s.valueRepo.Find(ctx, itemID, columnID)
	if err != nil {
		if !isNotFound(err) {
			return nil, internalError("Failed to load cell", err)
		}
		row = nil
	}
	return toCellResponse(itemID, column, row), nil
}

// loadCell loads the item and column of a cell and checks the caller's role
func (s *cellServiceImpl) loadCell(ctx context.Context, userID, itemID, columnID uuid.UUID, min domain.Role) (*domain.BoardItem, *domain.BoardColumn, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, notFoundOr(err, "Item not found", "Failed to load item")
	}
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return nil, nil, notFoundOr(err, "Column not found", "Failed to load column")
	}
	if column.BoardID != item.BoardID {
		return nil, nil, response.NewValidationError("Column does not belong to the item's board", "")
	}
	if _, err := s.membership.RequireBoardRole(ctx, userID, item.BoardID, min); err != nil {
		return nil, nil, err
	}
	return item, column, nil
}

// grid indexes a board's values by cell
type grid struct {
	columns []*domain.BoardColumn
	values  map[realtime.CellKey]*domain.ItemValue
}

func newGrid(columns []*domain.BoardColumn, values []*domain.ItemValue) *grid {
	g := &grid{columns: columns, values: make(map[realtime.CellKey]*domain.ItemValue, len(values))}
	for _, v := range values {
		g.values[realtime.CellKey{ItemID: v.ItemID, ColumnID: v.ColumnID}] = v
	}
	return g
}

func (g *grid) resolve(itemID uuid.UUID, column *domain.BoardColumn) cellvalue.CellValue {
	v := g.values[realtime.CellKey{ItemID: itemID, ColumnID: column.ID}]
	return cellvalue.Resolve(cellvalue.SpecOf(column), cellvalue.FromItemValue(v))
}

// firstOfType returns the lowest-ordered column of a type
func (g *grid) firstOfType(t cellvalue.ColumnType) *domain.BoardColumn {
	for _, c := range g.columns {
		if cellvalue.Normalize(c.Type) == t {
			return c
		}
	}
	return nil
}

func (g *grid) filter(items []*domain.BoardItem, f *dto.GridFilters) []*domain.BoardItem {
	if f == nil || (f.Query == "" && f.Status == "" && f.Priority == "") {
		return items
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	status := g.firstOfType(cellvalue.TypeStatus)
	priority := g.firstOfType(cellvalue.TypePriority)

	matches := func(item *domain.BoardItem, column *domain.BoardColumn, want string) bool {
		if want == "" {
			return true
		}
		if column == nil {
			return false
		}
		return strings.EqualFold(g.resolve(item.ID, column).Display(), strings.TrimSpace(want))
	}

	filtered := make([]*domain.BoardItem, 0, len(items))
	for _, item := range items {
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		if !matches(item, status, f.Status) || !matches(item, priority, f.Priority) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// stats counts items by the first status column
func (g *grid) stats(items []*domain.BoardItem) dto.BoardStats {
	stats := dto.BoardStats{Total: len(items)}
	status := g.firstOfType(cellvalue.TypeStatus)
	if status == nil {
		return stats
	}
	for _, item := range items {
		switch strings.ToLower(g.resolve(item.ID, status).Display()) {
		case "done":
			stats.Completed++
		case "working on it":
			stats.InProgress++
		case "stuck":
			stats.Stuck++
		}
	}
	return stats
}

func toItemValueResponse(v *domain.ItemValue) *dto.ItemValueResponse {
	return &dto.ItemValueResponse{
		ID:           v.ID,
		ItemID:       v.ItemID,
		ColumnID:     v.ColumnID,
		Value:        v.Value,
		NumberValue:  v.NumberValue,
		DateValue:    v.DateValue,
		BooleanValue: v.BooleanValue,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toCellResponse(itemID uuid.UUID, column *domain.BoardColumn, row *domain.ItemValue) *dto.CellResponse {
	spec := cellvalue.SpecOf(column)
	value := cellvalue.Resolve(spec, cellvalue.FromItemValue(row))
	resp := &dto.CellResponse{
		ItemID:   itemID,
		ColumnID: column.ID,
		Type:     string(spec.Type),
		Value:    value,
		Display:  value.Display(),
	}
	if row != nil {
		resp.Stored = toItemValueResponse(row)
	}
	return resp
}
