package service

import (
	"context"
	"strings"
	"time"

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

// ItemService defines the interface for board item logic
type ItemService interface {
	AddItem(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateItemRequest) (*dto.ItemResponse, error)
	ListItems(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ItemResponse, error)
	RenameItem(ctx context.Context, userID, itemID uuid.UUID, req *dto.UpdateItemRequest) (*dto.ItemResponse, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
}

type itemServiceImpl struct {
	itemRepo   repository.ItemRepository
	columnRepo repository.ColumnRepository
	membership MembershipService
	notifier   changeNotifier
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewItemService creates a new instance of ItemService
func NewItemService(
	itemRepo repository.ItemRepository,
	columnRepo repository.ColumnRepository,
	membership MembershipService,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) ItemService {
	return &itemServiceImpl{
		itemRepo:   itemRepo,
		columnRepo: columnRepo,
		membership: membership,
		notifier:   changeNotifier{publisher: publisher, metrics: m, logger: logger},
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// AddItem appends an item and, in the same transaction, one default value per existing column
func (s *itemServiceImpl) AddItem(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if _, err := s.membership.RequireBoardRole(ctx, userID, boardID, domain.RoleMember); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Item name is required", "")
	}

	columns, err := s.columnRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to load columns", err)
	}
	maxOrder, err := s.itemRepo.MaxOrder(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to determine item order", err)
	}

	item := &domain.BoardItem{
		BoardID:   boardID,
		Name:      name,
		Order:     maxOrder + 1,
		CreatedBy: &userID,
	}
	values := defaultValues(columns, s.now())
	if err := s.itemRepo.CreateWithValues(ctx, item, values); err != nil {
		s.logger.Error("Failed to create item", zap.String("board_id", boardID.String()), zap.Error(err))
		return nil, internalError("Failed to create item", err)
	}

	s.notifier.notify(ctx, realtime.TableItems, realtime.EventInsert, boardID, item, nil)
	for _, v := range values {
		s.notifier.notify(ctx, realtime.TableValues, realtime.EventInsert, boardID, v, nil)
	}

	s.metrics.IncrementItemCreated()
	s.logger.Info("Item added",
		zap.String("board_id", boardID.String()),
		zap.String("item_id", item.ID.String()),
		zap.Int("default_values", len(values)))
	return toItemResponse(item), nil
}

// defaultValues builds the value row each column gives a new item
func defaultValues(columns []*domain.BoardColumn, now time.Time) []*domain.ItemValue {
	values := make([]*domain.ItemValue, 0, len(columns))
	for _, c := range columns {
		v := &domain.ItemValue{ColumnID: c.ID}
		cellvalue.Default(cellvalue.SpecOf(c), now).ApplyTo(v)
		values = append(values, v)
	}
	return values
}

// ListItems returns a board's items by order
func (s *itemServiceImpl) ListItems(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ItemResponse, error) {
	if _, err := s.membership.RequireBoardRole(ctx, userID, boardID, domain.RoleViewer); err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to list items", err)
	}
	responses := make([]*dto.ItemResponse, 0, len(items))
	for _, i := range items {
		responses = append(responses, toItemResponse(i))
	}
	return responses, nil
}

// RenameItem changes an item's name
func (s *itemServiceImpl) RenameItem(ctx context.Context, userID, itemID uuid.UUID, req *dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := s.memberItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Item name is required", "")
	}
	previous := *item

	if err := s.itemRepo.UpdateName(ctx, itemID, name); err != nil {
		return nil, notFoundOr(err, "Item not found", "Failed to rename item")
	}
	item.Name = name
	item.UpdatedAt = s.now()

	s.notifier.notify(ctx, realtime.TableItems, realtime.EventUpdate, item.BoardID, item, &previous)
	s.logger.Info("Item renamed",
		zap.String("board_id", item.BoardID.String()),
		zap.String("item_id", itemID.String()))
	return toItemResponse(item), nil
}

// DeleteItem removes an item with its values and attachments
func (s *itemServiceImpl) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.memberItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	removed, err := s.itemRepo.Delete(ctx, itemID)
	if err != nil {
		return notFoundOr(err, "Item not found", "Failed to delete item")
	}

	for _, v := range removed {
		s.notifier.notify(ctx, realtime.TableValues, realtime.EventDelete, item.BoardID, nil, v)
	}
	s.notifier.notify(ctx, realtime.TableItems, realtime.EventDelete, item.BoardID, nil, item)

	s.logger.Info("Item deleted",
		zap.String("board_id", item.BoardID.String()),
		zap.String("item_id", itemID.String()),
		zap.Int("values", len(removed)))
	return nil
}

// memberItem loads an item the caller may write
func (s *itemServiceImpl) memberItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.BoardItem, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, notFoundOr(err, "Item not found", "Failed to load item")
	}
	if _, err := s.membership.RequireBoardRole(ctx, userID, item.BoardID, domain.RoleMember); err != nil {
		return nil, err
	}
	return item, nil
}

func toItemResponse(i *domain.BoardItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        i.ID,
		BoardID:   i.BoardID,
		Name:      i.Name,
		Order:     i.Order,
		CreatedBy: i.CreatedBy,
		CreatedAt: i.CreatedAt,
	}
}
