// Package topicscreen holds the state for the topic detail screen: it
// combines the followed-topic-ID set, the topic record and the topic's news
// resources into one observable UI state, and exposes the follow toggle.
package topicscreen

import (
	"context"
	"log/slog"
	"time"

	"github.com/nosorae/nowinandroid-topic-sample/internal/domain"
	"github.com/nosorae/nowinandroid-topic-sample/internal/result"
	"github.com/nosorae/nowinandroid-topic-sample/internal/stream"
)

// sentinelTopicID stands in for the missing navigation argument in the news
// query. Whatever the news repository returns for it is masked by the topic
// region's permanent Error, so nothing meaningful is ever rendered from it.
const sentinelTopicID int64 = 0

// Args are the screen's navigation arguments, resolved once at construction.
// A nil TopicID is a valid, permanent state, not a transient condition.
type Args struct {
	TopicID *int64
}

// Service aggregates the three upstream sources into the screen's UI state.
// The upstream subscriptions start lazily on the first state observer and
// stay warm for a grace period after the last one detaches.
type Service struct {
	topicID *int64
	topics  domain.TopicsRepository
	news    domain.NewsRepository
	logger  *slog.Logger

	scope  context.Context
	cancel context.CancelFunc
	grace  time.Duration

	state *stream.State[UiState]
}

// Option is a function that configures a Service.
type Option func(*Service)

// WithSubscriptionGrace overrides how long upstream subscriptions survive
// after the last state observer detaches. Set to 0 to tear down immediately
// (useful for testing).
func WithSubscriptionGrace(d time.Duration) Option {
	return func(s *Service) {
		s.grace = d
	}
}

// NewService creates the state holder for one topic detail screen.
func NewService(args Args, topics domain.TopicsRepository, news domain.NewsRepository, opts ...Option) *Service {
	scope, cancel := context.WithCancel(context.Background())
	s := &Service{
		topicID: args.TopicID,
		topics:  topics,
		news:    news,
		logger:  slog.Default().With("service", "topicscreen"),
		scope:   scope,
		cancel:  cancel,
		grace:   stream.DefaultGrace,
	}

	for _, opt := range opts {
		opt(s)
	}

	initial := UiState{Topic: TopicLoading{}, News: NewsLoading{}}
	s.state = stream.NewState(scope, initial, s.run, stream.WithGrace(s.grace))
	return s
}

// State returns the observable screen state. The value is always defined;
// before any upstream emission it is (Loading, Loading).
func (s *Service) State() *stream.State[UiState] {
	return s.state
}

// SetTopicFollowed requests the followed flag be written for the screen's
// topic. The write is fire and forget: it runs in the service scope, its
// outcome is never surfaced in the UI state, and it is a no-op when the
// screen has no topic ID.
func (s *Service) SetTopicFollowed(followed bool) {
	if s.topicID == nil {
		return
	}
	id := *s.topicID
	go func() {
		if err := s.topics.SetTopicFollowed(s.scope, id, followed); err != nil {
			s.logger.Error("follow toggle failed", "topic_id", id, "followed", followed, "error", err)
		}
	}()
}

// Shutdown ends the service scope: upstream subscriptions, the state stream
// and any in-flight follow write are cancelled.
func (s *Service) Shutdown() {
	s.cancel()
	s.state.Close()
}

// run is the state producer. It subscribes to the three upstream sources and
// republishes the combined state whenever any of them emits. Emissions may
// interleave in any order; the combination only depends on the latest value
// of each source.
func (s *Service) run(ctx context.Context, set func(UiState)) {
	followedCh := s.topics.ObserveFollowedTopicIDs(ctx)
	newsCh := s.news.ObserveNewsResources(ctx, s.newsQuery())
	topicCh := s.readTopic(ctx)

	followed := result.Loading[map[int64]struct{}]()
	topic := result.Loading[domain.Topic]()
	news := result.Loading[[]domain.NewsResource]()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-followedCh:
			if !ok {
				followedCh = nil
				continue
			}
			if ev.Err != nil {
				s.logger.Error("followed topic ids stream failed", "error", ev.Err)
			}
			followed = toResult(ev)

		case r, ok := <-topicCh:
			if !ok {
				topicCh = nil
				continue
			}
			topic = r

		case ev, ok := <-newsCh:
			if !ok {
				newsCh = nil
				continue
			}
			if ev.Err != nil {
				s.logger.Error("news stream failed", "error", ev.Err)
			}
			news = toResult(ev)
		}

		set(combine(followed, topic, news))
	}
}

// readTopic performs the one-shot topic read. When no ID was supplied the
// repository is never called and the result is a permanent synthetic Error.
func (s *Service) readTopic(ctx context.Context) <-chan result.Result[domain.Topic] {
	out := make(chan result.Result[domain.Topic], 1)

	if s.topicID == nil {
		out <- result.Err[domain.Topic](domain.ErrNoTopicID)
		close(out)
		return out
	}

	id := *s.topicID
	go func() {
		defer close(out)
		t, err := s.topics.GetTopic(ctx, id)
		if err != nil {
			s.logger.Error("topic read failed", "topic_id", id, "error", err)
			out <- result.Err[domain.Topic](err)
			return
		}
		out <- result.Ok(t)
	}()
	return out
}

// newsQuery builds the singleton topic-ID set for the news subscription.
func (s *Service) newsQuery() map[int64]struct{} {
	id := sentinelTopicID
	if s.topicID != nil {
		id = *s.topicID
	}
	return map[int64]struct{}{id: {}}
}

// combine derives the root state from the latest snapshot of each source.
// The topic region is Success only when both of its inputs are; it stays
// Loading while either input still is, and is Error otherwise. The news
// region mirrors its stream's tag directly.
func combine(
	followed result.Result[map[int64]struct{}],
	topic result.Result[domain.Topic],
	news result.Result[[]domain.NewsResource],
) UiState {
	var topicState TopicUiState
	switch {
	case followed.Tag() == result.TagSuccess && topic.Tag() == result.TagSuccess:
		t := topic.Value()
		_, isFollowed := followed.Value()[t.ID]
		topicState = TopicSuccess{
			Topic: domain.FollowableTopic{Topic: t, IsFollowed: isFollowed},
		}
	case followed.Tag() == result.TagLoading || topic.Tag() == result.TagLoading:
		topicState = TopicLoading{}
	default:
		topicState = TopicError{}
	}

	var newsState NewsUiState
	switch news.Tag() {
	case result.TagSuccess:
		newsState = NewsSuccess{News: news.Value()}
	case result.TagError:
		newsState = NewsError{}
	default:
		newsState = NewsLoading{}
	}

	return UiState{Topic: topicState, News: newsState}
}

func toResult[T any](ev stream.Event[T]) result.Result[T] {
	if ev.Err != nil {
		return result.Err[T](ev.Err)
	}
	return result.Ok(ev.Value)
}
