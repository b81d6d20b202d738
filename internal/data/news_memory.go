package data

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/nosorae/nowinandroid-topic-sample/internal/domain"
	"github.com/nosorae/nowinandroid-topic-sample/internal/pubsub"
	"github.com/nosorae/nowinandroid-topic-sample/internal/stream"
)

// MemoryNewsRepository holds news resources in memory and notifies observers
// through the pub/sub bridge.
type MemoryNewsRepository struct {
	mu        sync.RWMutex
	resources []domain.NewsResource

	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber
	logger     *slog.Logger
}

// NewMemoryNewsRepository creates a repository seeded with the given
// resources. Seeded resources without an ID get one assigned.
func NewMemoryNewsRepository(publisher pubsub.Publisher, subscriber pubsub.Subscriber, seed ...domain.NewsResource) *MemoryNewsRepository {
	resources := make([]domain.NewsResource, 0, len(seed))
	for _, res := range seed {
		if res.ID == "" {
			res.ID = uuid.NewString()
		}
		resources = append(resources, res)
	}
	return &MemoryNewsRepository{
		resources:  resources,
		publisher:  publisher,
		subscriber: subscriber,
		logger:     slog.Default().With("repository", "news"),
	}
}

// AddNewsResource stores a new resource and publishes a change event. An
// empty ID is replaced with a fresh UUID. Returns the stored resource.
func (r *MemoryNewsRepository) AddNewsResource(ctx context.Context, res domain.NewsResource) (domain.NewsResource, error) {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}

	r.mu.Lock()
	r.resources = append(r.resources, res)
	ids := make([]string, 0, len(r.resources))
	for _, existing := range r.resources {
		ids = append(ids, existing.ID)
	}
	r.mu.Unlock()

	r.logger.Debug("news resource added", "id", res.ID, "title", res.Title)
	if err := pubsub.Publish(ctx, r.publisher, EventNewsChanged, NewsChanged{ResourceIDs: ids}); err != nil {
		return domain.NewsResource{}, err
	}
	return res, nil
}

// ObserveNewsResources implements domain.NewsRepository. The stream starts
// with the current list filtered by topicIDs; change events trigger a
// re-read and re-filter.
func (r *MemoryNewsRepository) ObserveNewsResources(ctx context.Context, topicIDs map[int64]struct{}) <-chan stream.Event[[]domain.NewsResource] {
	out := make(chan stream.Event[[]domain.NewsResource], 16)

	err := pubsub.Subscribe(ctx, r.subscriber, EventNewsChanged, func(ctx context.Context, _ NewsChanged) error {
		send(ctx, out, stream.Next(r.snapshotFor(topicIDs)))
		return nil
	})
	if err != nil {
		out <- stream.Fail[[]domain.NewsResource](err)
		return out
	}

	out <- stream.Next(r.snapshotFor(topicIDs))
	return out
}

func (r *MemoryNewsRepository) snapshotFor(topicIDs map[int64]struct{}) []domain.NewsResource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.NewsResource, 0)
	for _, res := range r.resources {
		if res.HasTopic(topicIDs) {
			matched = append(matched, res)
		}
	}
	return matched
}
