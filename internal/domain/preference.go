package domain

// PreferenceCounter is one persisted like-count for a (requester, tag) pair.
type PreferenceCounter struct {
	RequesterID int64
	TagType     TagType
	TagID       int
	LikeCount   int64
}
