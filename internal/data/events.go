// Package data provides in-memory implementations of the domain repository
// contracts. State lives in mutex-guarded maps; every mutation publishes a
// snapshot event on the pub/sub bridge, and observe streams are implemented
// as an initial snapshot followed by a bus subscription.
package data

import (
	"github.com/nosorae/nowinandroid-topic-sample/internal/domain"
	"github.com/nosorae/nowinandroid-topic-sample/internal/pubsub"
)

// FollowedTopicsChanged is published whenever the followed-ID set changes.
// Observers treat it as a tick and re-read the repository, so a lost or
// reordered event can never leave them on a stale snapshot for good.
type FollowedTopicsChanged struct {
	TopicIDs []int64 `json:"topicIds"`
}

// NewsChanged is published whenever the news resource set changes.
type NewsChanged struct {
	ResourceIDs []string `json:"resourceIds"`
}

var (
	EventFollowedTopicsChanged = pubsub.NewEvent[FollowedTopicsChanged]("topics.followed.changed")
	EventNewsChanged           = pubsub.NewEvent[NewsChanged]("news.resources.changed")
)

// interface guards
var (
	_ domain.TopicsRepository = (*MemoryTopicsRepository)(nil)
	_ domain.NewsRepository   = (*MemoryNewsRepository)(nil)
)
