package realtime

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"teamup-board-api/internal/cellvalue"
	"teamup-board-api/internal/domain"
)

// CellKey identifies a cell. Values are matched by key, never by row id.
type CellKey struct {
	ItemID   uuid.UUID
	ColumnID uuid.UUID
}

// KeyOf returns the cell key of a stored value
func KeyOf(v domain.ItemValue) CellKey {
	return CellKey{ItemID: v.ItemID, ColumnID: v.ColumnID}
}

// Msg is an input to BoardState.Apply
type Msg interface {
	isMsg()
}

// LocalEdit is an optimistic edit made before the server answered
type LocalEdit struct {
	Key    CellKey
	Value  cellvalue.Stored
	TempID uuid.UUID
}

// RemoteConfirm carries the authoritative row for a pending edit
type RemoteConfirm struct {
	Key CellKey
	Row domain.ItemValue
}

// RemoteReject rolls a pending edit back
type RemoteReject struct {
	Key CellKey
}

// RemoteEvent is a change published by any writer
type RemoteEvent struct {
	Event ChangeEvent
}

func (LocalEdit) isMsg()     {}
func (RemoteConfirm) isMsg() {}
func (RemoteReject) isMsg()  {}
func (RemoteEvent) isMsg()   {}

type pendingEdit struct {
	prior *domain.ItemValue
}

// BoardState is a client's view of one board. It is not safe for concurrent use.
type BoardState struct {
	Items   map[uuid.UUID]domain.BoardItem
	Columns map[uuid.UUID]domain.BoardColumn
	Values  map[CellKey]domain.ItemValue
	pending map[CellKey]pendingEdit
}

// NewBoardState seeds a state from a loaded grid
func NewBoardState(items []domain.BoardItem, columns []domain.BoardColumn, values []domain.ItemValue) *BoardState {
	s := &BoardState{
		Items:   make(map[uuid.UUID]domain.BoardItem, len(items)),
		Columns: make(map[uuid.UUID]domain.BoardColumn, len(columns)),
		Values:  make(map[CellKey]domain.ItemValue, len(values)),
		pending: make(map[CellKey]pendingEdit),
	}
	for _, it := range items {
		s.Items[it.ID] = it
	}
	for _, col := range columns {
		s.Columns[col.ID] = col
	}
	for _, v := range values {
		s.Values[KeyOf(v)] = v
	}
	return s
}

// IsPending reports whether the cell has an unconfirmed local edit
func (s *BoardState) IsPending(key CellKey) bool {
	_, ok := s.pending[key]
	return ok
}

// Apply folds one message into the state. Messages must be applied in arrival order.
func (s *BoardState) Apply(msg Msg) error {
	switch m := msg.(type) {
	case LocalEdit:
		s.applyLocalEdit(m)
	case RemoteConfirm:
		s.Values[m.Key] = m.Row
		delete(s.pending, m.Key)
	case RemoteReject:
		s.rollback(m.Key)
	case RemoteEvent:
		return s.applyEvent(m.Event)
	default:
		return fmt.Errorf("unknown message %T", msg)
	}
	return nil
}

func (s *BoardState) applyLocalEdit(m LocalEdit) {
	current, exists := s.Values[m.Key]
	if _, open := s.pending[m.Key]; !open {
		var prior *domain.ItemValue
		if exists {
			p := current
			prior = &p
		}
		s.pending[m.Key] = pendingEdit{prior: prior}
	}

	row := domain.ItemValue{ItemID: m.Key.ItemID, ColumnID: m.Key.ColumnID}
	if exists {
		row = current
	} else {
		row.ID = m.TempID
	}
	m.Value.ApplyTo(&row)
	s.Values[m.Key] = row
}

func (s *BoardState) rollback(key CellKey) {
	p, ok := s.pending[key]
	if !ok {
		return
	}
	if p.prior != nil {
		s.Values[key] = *p.prior
	} else {
		delete(s.Values, key)
	}
	delete(s.pending, key)
}

func (s *BoardState) applyEvent(e ChangeEvent) error {
	switch e.Table {
	case TableItems:
		var item domain.BoardItem
		if err := e.Decode(&item); err != nil {
			return err
		}
		if e.EventType == EventDelete {
			s.dropItem(item.ID)
			return nil
		}
		if _, exists := s.Items[item.ID]; exists && e.EventType == EventInsert {
			return nil
		}
		s.Items[item.ID] = item

	case TableColumns:
		var col domain.BoardColumn
		if err := e.Decode(&col); err != nil {
			return err
		}
		if e.EventType == EventDelete {
			s.dropColumn(col.ID)
			return nil
		}
		if _, exists := s.Columns[col.ID]; exists && e.EventType == EventInsert {
			return nil
		}
		s.Columns[col.ID] = col

	case TableValues:
		var v domain.ItemValue
		if err := e.Decode(&v); err != nil {
			return err
		}
		if _, known := s.Items[v.ItemID]; !known {
			return nil
		}
		key := KeyOf(v)
		if e.EventType == EventDelete {
			delete(s.Values, key)
			delete(s.pending, key)
			return nil
		}
		// A remote row replaces any optimistic one for the same cell. A later
		// rollback restores the server's row rather than the older prior.
		s.Values[key] = v
		if p, ok := s.pending[key]; ok {
			row := v
			p.prior = &row
			s.pending[key] = p
		}

	default:
		return fmt.Errorf("unknown table %q", e.Table)
	}
	return nil
}

func (s *BoardState) dropItem(id uuid.UUID) {
	delete(s.Items, id)
	for key := range s.Values {
		if key.ItemID == id {
			delete(s.Values, key)
		}
	}
	for key := range s.pending {
		if key.ItemID == id {
			delete(s.pending, key)
		}
	}
}

func (s *BoardState) dropColumn(id uuid.UUID) {
	delete(s.Columns, id)
	for key := range s.Values {
		if key.ColumnID == id {
			delete(s.Values, key)
		}
	}
	for key := range s.pending {
		if key.ColumnID == id {
			delete(s.pending, key)
		}
	}
}

// Snapshot is an ordered copy of a BoardState
type Snapshot struct {
	Items   []domain.BoardItem
	Columns []domain.BoardColumn
	Values  []domain.ItemValue
}

// Snapshot returns items and columns by order, values by item then column
func (s *BoardState) Snapshot() Snapshot {
	snap := Snapshot{
		Items:   make([]domain.BoardItem, 0, len(s.Items)),
		Columns: make([]domain.BoardColumn, 0, len(s.Columns)),
		Values:  make([]domain.ItemValue, 0, len(s.Values)),
	}
	for _, it := range s.Items {
		snap.Items = append(snap.Items, it)
	}
	for _, col := range s.Columns {
		snap.Columns = append(snap.Columns, col)
	}
	for _, v := range s.Values {
		snap.Values = append(snap.Values, v)
	}

	sort.Slice(snap.Items, func(i, j int) bool {
		a, b := snap.Items[i], snap.Items[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID.String() < b.ID.String()
	})
	sort.Slice(snap.Columns, func(i, j int) bool {
		a, b := snap.Columns[i], snap.Columns[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID.String() < b.ID.String()
	})
	sort.Slice(snap.Values, func(i, j int) bool {
		a, b := snap.Values[i], snap.Values[j]
		if a.ItemID != b.ItemID {
			return a.ItemID.String() < b.ItemID.String()
		}
		return a.ColumnID.String() < b.ColumnID.String()
	})
	return snap
}
