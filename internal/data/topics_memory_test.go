package data

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosorae/nowinandroid-topic-sample/internal/domain"
	"github.com/nosorae/nowinandroid-topic-sample/internal/pubsub"
	"github.com/nosorae/nowinandroid-topic-sample/internal/stream"
)

func testTopics() []domain.Topic {
	return []domain.Topic{
		{ID: 42, Name: "Tech"},
		{ID: 7, Name: "Science"},
	}
}

// waitForIDSet reads events until one matches the wanted set. Converging
// streams may deliver intermediate or duplicate snapshots on the way.
func waitForIDSet(t *testing.T, ch <-chan stream.Event[map[int64]struct{}], want map[int64]struct{}) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			require.NoError(t, ev.Err)
			if reflect.DeepEqual(ev.Value, want) {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for followed set %v", want)
		}
	}
}

func TestMemoryTopicsRepository_GetTopic(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()
	repo := NewMemoryTopicsRepository(bridge, bridge, testTopics()...)

	topic, err := repo.GetTopic(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Tech", topic.Name)

	_, err = repo.GetTopic(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrTopicNotFound)
}

func TestMemoryTopicsRepository_ObserveFollowedTopicIDs(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()
	repo := NewMemoryTopicsRepository(bridge, bridge, testTopics()...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := repo.ObserveFollowedTopicIDs(ctx)

	// Initial snapshot: nothing followed.
	waitForIDSet(t, ch, map[int64]struct{}{})

	require.NoError(t, repo.SetTopicFollowed(ctx, 42, true))
	waitForIDSet(t, ch, map[int64]struct{}{42: {}})

	require.NoError(t, repo.SetTopicFollowed(ctx, 7, true))
	waitForIDSet(t, ch, map[int64]struct{}{42: {}, 7: {}})

	require.NoError(t, repo.SetTopicFollowed(ctx, 42, false))
	waitForIDSet(t, ch, map[int64]struct{}{7: {}})
}

func TestMemoryTopicsRepository_MultipleObservers(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()
	repo := NewMemoryTopicsRepository(bridge, bridge, testTopics()...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch1 := repo.ObserveFollowedTopicIDs(ctx)
	ch2 := repo.ObserveFollowedTopicIDs(ctx)
	waitForIDSet(t, ch1, map[int64]struct{}{})
	waitForIDSet(t, ch2, map[int64]struct{}{})

	require.NoError(t, repo.SetTopicFollowed(ctx, 42, true))
	waitForIDSet(t, ch1, map[int64]struct{}{42: {}})
	waitForIDSet(t, ch2, map[int64]struct{}{42: {}})
}
