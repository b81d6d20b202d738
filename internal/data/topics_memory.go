package data

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nosorae/nowinandroid-topic-sample/internal/domain"
	"github.com/nosorae/nowinandroid-topic-sample/internal/pubsub"
	"github.com/nosorae/nowinandroid-topic-sample/internal/stream"
)

// MemoryTopicsRepository holds topics and the user's followed-ID set in
// memory and notifies observers through the pub/sub bridge.
type MemoryTopicsRepository struct {
	mu       sync.RWMutex
	topics   map[int64]domain.Topic
	followed map[int64]struct{}

	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber
	logger     *slog.Logger
}

// NewMemoryTopicsRepository creates a repository seeded with the given
// topics. Nothing is followed initially.
func NewMemoryTopicsRepository(publisher pubsub.Publisher, subscriber pubsub.Subscriber, seed ...domain.Topic) *MemoryTopicsRepository {
	topics := make(map[int64]domain.Topic, len(seed))
	for _, t := range seed {
		topics[t.ID] = t
	}
	return &MemoryTopicsRepository{
		topics:     topics,
		followed:   make(map[int64]struct{}),
		publisher:  publisher,
		subscriber: subscriber,
		logger:     slog.Default().With("repository", "topics"),
	}
}

// GetTopic implements domain.TopicsRepository.
func (r *MemoryTopicsRepository) GetTopic(ctx context.Context, id int64) (domain.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.topics[id]
	if !ok {
		return domain.Topic{}, fmt.Errorf("topic %d: %w", id, domain.ErrTopicNotFound)
	}
	return t, nil
}

// SetTopicFollowed implements domain.TopicsRepository. The new followed-ID
// snapshot is published on the bus after the map is updated.
func (r *MemoryTopicsRepository) SetTopicFollowed(ctx context.Context, id int64, followed bool) error {
	r.mu.Lock()
	if followed {
		r.followed[id] = struct{}{}
	} else {
		delete(r.followed, id)
	}
	ids := followedIDsLocked(r.followed)
	r.mu.Unlock()

	r.logger.Debug("followed set changed", "topic_id", id, "followed", followed, "total", len(ids))
	return pubsub.Publish(ctx, r.publisher, EventFollowedTopicsChanged, FollowedTopicsChanged{TopicIDs: ids})
}

// ObserveFollowedTopicIDs implements domain.TopicsRepository. The stream
// starts with the current set; every change event triggers a re-read of the
// repository so the stream always converges on the latest state.
func (r *MemoryTopicsRepository) ObserveFollowedTopicIDs(ctx context.Context) <-chan stream.Event[map[int64]struct{}] {
	out := make(chan stream.Event[map[int64]struct{}], 16)

	err := pubsub.Subscribe(ctx, r.subscriber, EventFollowedTopicsChanged, func(ctx context.Context, _ FollowedTopicsChanged) error {
		send(ctx, out, stream.Next(r.followedSnapshot()))
		return nil
	})
	if err != nil {
		out <- stream.Fail[map[int64]struct{}](err)
		return out
	}

	out <- stream.Next(r.followedSnapshot())
	return out
}

func (r *MemoryTopicsRepository) followedSnapshot() map[int64]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[int64]struct{}, len(r.followed))
	for id := range r.followed {
		snapshot[id] = struct{}{}
	}
	return snapshot
}

func followedIDsLocked(followed map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(followed))
	for id := range followed {
		ids = append(ids, id)
	}
	return ids
}

// send delivers an event unless the observer's context has ended.
func send[T any](ctx context.Context, out chan<- stream.Event[T], ev stream.Event[T]) {
	select {
	case out <- ev:
	case <-ctx.Done():
	}
}
