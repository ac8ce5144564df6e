package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func receive(t *testing.T, ch <-chan ChangeEvent) ChangeEvent {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return ChangeEvent{}
}

func TestLocalBroker_PublishReachesOnlyThatBoard(t *testing.T) {
	b := NewLocalBroker(zap.NewNop())
	boardA, boardB := uuid.New(), uuid.New()

	subA, unsubA := b.Subscribe(context.Background(), boardA)
	defer unsubA()
	subB, unsubB := b.Subscribe(context.Background(), boardB)
	defer unsubB()

	event := ChangeEvent{Table: TableItems, EventType: EventInsert, BoardID: boardA}
	require.NoError(t, b.Publish(context.Background(), event))

	got := receive(t, subA)
	assert.Equal(t, boardA, got.BoardID)

	select {
	case <-subB:
		t.Fatal("board B should not receive board A events")
	default:
	}
}

func TestLocalBroker_UnsubscribeIsScopedToOneSubscription(t *testing.T) {
	b := NewLocalBroker(zap.NewNop())
	boardID := uuid.New()

	first, unsubFirst := b.Subscribe(context.Background(), boardID)
	second, unsubSecond := b.Subscribe(context.Background(), boardID)
	defer unsubSecond()
	require.Equal(t, 2, b.Subscribers(boardID))

	unsubFirst()
	unsubFirst()
	assert.Equal(t, 1, b.Subscribers(boardID))

	_, open := <-first
	assert.False(t, open)

	require.NoError(t, b.Publish(context.Background(), ChangeEvent{BoardID: boardID, Table: TableValues}))
	assert.Equal(t, TableValues, receive(t, second).Table)
}

func TestLocalBroker_ContextCancelUnsubscribes(t *testing.T) {
	b := NewLocalBroker(zap.NewNop())
	boardID := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())

	ch, _ := b.Subscribe(ctx, boardID)
	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed after cancel")
	}
	assert.Equal(t, 0, b.Subscribers(boardID))
}

func TestRedisBroker_NilClientYieldsClosedStream(t *testing.T) {
	b := NewRedisBroker(nil, zap.NewNop())

	ch, unsubscribe := b.Subscribe(context.Background(), uuid.New())
	defer unsubscribe()
	_, open := <-ch
	assert.False(t, open)

	assert.Error(t, b.Publish(context.Background(), ChangeEvent{BoardID: uuid.New()}))
}

func TestChangeEvent_Decode(t *testing.T) {
	item := newItem(4)
	e, err := NewChangeEvent(TableItems, EventDelete, uuid.New(), nil, item)
	require.NoError(t, err)
	assert.Empty(t, e.New)

	var decoded struct {
		ID    uuid.UUID `json:"id"`
		Order int       `json:"order"`
	}
	require.NoError(t, e.Decode(&decoded))
	assert.Equal(t, item.ID, decoded.ID)
	assert.Equal(t, 4, decoded.Order)
}
