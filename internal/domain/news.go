package domain

import "time"

// NewsResource is a single content item. A resource can be tagged with any
// number of topics.
type NewsResource struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	PublishDate time.Time `json:"publishDate"`
	Type        string    `json:"type"`
	TopicIDs    []int64   `json:"topicIds"`
}

// HasTopic reports whether the resource is tagged with any of the given
// topic IDs.
func (n NewsResource) HasTopic(topicIDs map[int64]struct{}) bool {
	for _, id := range n.TopicIDs {
		if _, ok := topicIDs[id]; ok {
			return true
		}
	}
	return false
}
