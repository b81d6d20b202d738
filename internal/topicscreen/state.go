package topicscreen

import "github.com/nosorae/nowinandroid-topic-sample/internal/domain"

// TopicUiState is the render-ready state of the topic header region: a
// closed union of Loading, Error and Success. Consumers type-switch over the
// three variants.
type TopicUiState interface {
	topicUiState()
}

// TopicLoading means at least one of the topic's inputs has produced nothing
// yet and none has failed.
type TopicLoading struct{}

// TopicError means a topic input failed, including the permanent synthetic
// failure when no topic ID was supplied.
type TopicError struct{}

// TopicSuccess carries the topic record paired with the user's follow flag.
type TopicSuccess struct {
	Topic domain.FollowableTopic
}

func (TopicLoading) topicUiState() {}
func (TopicError) topicUiState()   {}
func (TopicSuccess) topicUiState() {}

// NewsUiState is the render-ready state of the news list region. It mirrors
// the news stream directly and never cross-references the topic region.
type NewsUiState interface {
	newsUiState()
}

type NewsLoading struct{}

type NewsError struct{}

// NewsSuccess carries the resources tagged with the screen's topic.
type NewsSuccess struct {
	News []domain.NewsResource
}

func (NewsLoading) newsUiState() {}
func (NewsError) newsUiState()   {}
func (NewsSuccess) newsUiState() {}

// UiState is the root screen state: both regions, replaced wholesale on
// every recombination.
type UiState struct {
	Topic TopicUiState
	News  NewsUiState
}
