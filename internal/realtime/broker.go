package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamup-board-api/internal/database"
)

const subscriberBuffer = 64

// Broker delivers change events to every subscriber of a board
type Broker interface {
	Publish(ctx context.Context, event ChangeEvent) error
	// Subscribe returns the event stream of a board and a function that ends
	// only this subscription.
	Subscribe(ctx context.Context, boardID uuid.UUID) (<-chan ChangeEvent, func())
}

// RedisBroker fans events out across instances through Redis pub/sub
type RedisBroker struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisBroker creates a broker on an established Redis client
func NewRedisBroker(client *redis.Client, logger *zap.Logger) *RedisBroker {
	return &RedisBroker{client: client, logger: logger}
}

// Publish encodes the event onto the board's channel
func (b *RedisBroker) Publish(ctx context.Context, event ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return database.PublishBoardEvent(ctx, b.client, event.BoardID.String(), payload)
}

// Subscribe listens on the board's channel until the returned function is called
func (b *RedisBroker) Subscribe(ctx context.Context, boardID uuid.UUID) (<-chan ChangeEvent, func()) {
	out := make(chan ChangeEvent, subscriberBuffer)
	pubsub := database.SubscribeBoardEvents(ctx, b.client, boardID.String())
	if pubsub == nil {
		close(out)
		return out, func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					b.logger.Warn("Discarding malformed board event",
						zap.String("board_id", boardID.String()), zap.Error(err))
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var once sync.Once
	return out, func() {
		once.Do(func() {
			cancel()
			if err := pubsub.Close(); err != nil {
				b.logger.Warn("Failed to close board subscription",
					zap.String("board_id", boardID.String()), zap.Error(err))
			}
		})
	}
}

// LocalBroker fans events out within the process. Used when Redis is not configured.
type LocalBroker struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]map[*localSub]struct{}
	logger *zap.Logger
}

type localSub struct {
	ch   chan ChangeEvent
	done chan struct{}
	once sync.Once
}

// NewLocalBroker creates an in-process broker
func NewLocalBroker(logger *zap.Logger) *LocalBroker {
	return &LocalBroker{
		subs:   make(map[uuid.UUID]map[*localSub]struct{}),
		logger: logger,
	}
}

// Publish delivers the event to current subscribers. A subscriber whose
// buffer is full misses the event.
func (b *LocalBroker) Publish(_ context.Context, event ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[event.BoardID] {
		select {
		case sub.ch <- event:
		default:
			b.logger.Warn("Subscriber buffer full, dropping board event",
				zap.String("board_id", event.BoardID.String()),
				zap.String("table", string(event.Table)))
		}
	}
	return nil
}

// Subscribe registers a subscriber for the board
func (b *LocalBroker) Subscribe(ctx context.Context, boardID uuid.UUID) (<-chan ChangeEvent, func()) {
	sub := &localSub{ch: make(chan ChangeEvent, subscriberBuffer), done: make(chan struct{})}

	b.mu.Lock()
	if b.subs[boardID] == nil {
		b.subs[boardID] = make(map[*localSub]struct{})
	}
	b.subs[boardID][sub] = struct{}{}
	b.mu.Unlock()

	unsubscribe := func() {
		sub.once.Do(func() {
			b.mu.Lock()
			delete(b.subs[boardID], sub)
			if len(b.subs[boardID]) == 0 {
				delete(b.subs, boardID)
			}
			b.mu.Unlock()
			close(sub.done)
			close(sub.ch)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-sub.done:
		}
	}()

	return sub.ch, unsubscribe
}

// Subscribers returns the number of live subscriptions on a board
func (b *LocalBroker) Subscribers(boardID uuid.UUID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[boardID])
}
