package domain

import (
	"context"

	"github.com/nosorae/nowinandroid-topic-sample/internal/stream"
)

// TopicsRepository defines the contract for topic data access. It lives in
// the domain because it's a requirement OF the domain, not of any particular
// storage implementation.
//
// ObserveFollowedTopicIDs emits the full followed-ID set on every change,
// starting with the current set. A failed emission carries an error in the
// event; the channel stays open and later emissions may carry values again.
// The stream ends when ctx is cancelled.
type TopicsRepository interface {
	ObserveFollowedTopicIDs(ctx context.Context) <-chan stream.Event[map[int64]struct{}]

	// GetTopic is a one-shot read of a single topic record.
	GetTopic(ctx context.Context, id int64) (Topic, error)

	// SetTopicFollowed writes the followed flag for a topic.
	SetTopicFollowed(ctx context.Context, id int64, followed bool) error
}

// NewsRepository defines the contract for news data access.
//
// ObserveNewsResources emits the list of resources tagged with any of the
// given topic IDs, re-emitting on every change, starting with the current
// list. Stream semantics match ObserveFollowedTopicIDs.
type NewsRepository interface {
	ObserveNewsResources(ctx context.Context, topicIDs map[int64]struct{}) <-chan stream.Event[[]NewsResource]
}
