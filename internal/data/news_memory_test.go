package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosorae/nowinandroid-topic-sample/internal/domain"
	"github.com/nosorae/nowinandroid-topic-sample/internal/pubsub"
	"github.com/nosorae/nowinandroid-topic-sample/internal/stream"
)

func testNews() []domain.NewsResource {
	return []domain.NewsResource{
		{ID: "n1", Title: "Tech story", TopicIDs: []int64{42}},
		{ID: "n2", Title: "Science story", TopicIDs: []int64{7}},
		{ID: "n3", Title: "Crossover story", TopicIDs: []int64{7, 42}},
	}
}

// waitForNews reads events until one satisfies the predicate.
func waitForNews(t *testing.T, ch <-chan stream.Event[[]domain.NewsResource], pred func([]domain.NewsResource) bool) []domain.NewsResource {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			require.NoError(t, ev.Err)
			if pred(ev.Value) {
				return ev.Value
			}
		case <-deadline:
			t.Fatal("timed out waiting for news snapshot")
		}
	}
}

func newsIDs(resources []domain.NewsResource) []string {
	ids := make([]string, 0, len(resources))
	for _, res := range resources {
		ids = append(ids, res.ID)
	}
	return ids
}

func TestMemoryNewsRepository_ObserveFiltersByTopic(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()
	repo := NewMemoryNewsRepository(bridge, bridge, testNews()...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := repo.ObserveNewsResources(ctx, map[int64]struct{}{42: {}})
	snapshot := waitForNews(t, ch, func(resources []domain.NewsResource) bool {
		return len(resources) == 2
	})
	assert.ElementsMatch(t, []string{"n1", "n3"}, newsIDs(snapshot))
}

func TestMemoryNewsRepository_ObserveEmitsOnAdd(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()
	repo := NewMemoryNewsRepository(bridge, bridge, testNews()...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := repo.ObserveNewsResources(ctx, map[int64]struct{}{42: {}})
	waitForNews(t, ch, func(resources []domain.NewsResource) bool {
		return len(resources) == 2
	})

	added, err := repo.AddNewsResource(ctx, domain.NewsResource{
		Title:    "Fresh tech story",
		TopicIDs: []int64{42},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID, "an ID should be assigned")

	snapshot := waitForNews(t, ch, func(resources []domain.NewsResource) bool {
		return len(resources) == 3
	})
	assert.Contains(t, newsIDs(snapshot), added.ID)
}

func TestMemoryNewsRepository_UnrelatedTopicsNotDelivered(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()
	repo := NewMemoryNewsRepository(bridge, bridge, testNews()...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := repo.ObserveNewsResources(ctx, map[int64]struct{}{99: {}})
	snapshot := waitForNews(t, ch, func(resources []domain.NewsResource) bool {
		return resources != nil
	})
	assert.Empty(t, snapshot)
}

func TestMemoryNewsRepository_SeedAssignsIDs(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()
	repo := NewMemoryNewsRepository(bridge, bridge, domain.NewsResource{Title: "No ID", TopicIDs: []int64{1}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := repo.ObserveNewsResources(ctx, map[int64]struct{}{1: {}})
	snapshot := waitForNews(t, ch, func(resources []domain.NewsResource) bool {
		return len(resources) == 1
	})
	assert.NotEmpty(t, snapshot[0].ID)
}
