package domain

// Topic is a content category users can follow. News resources reference
// topics by ID.
type Topic struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
	URL              string `json:"url"`
	ImageURL         string `json:"imageUrl"`
}

// FollowableTopic pairs a Topic with the current user's follow flag.
// It is derived at read time, never stored.
type FollowableTopic struct {
	Topic      Topic `json:"topic"`
	IsFollowed bool  `json:"isFollowed"`
}
