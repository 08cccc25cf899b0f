package models

// SeedEvent describes a finished seed run. It is what gets published to the
// configured queue once both batches are written.
type SeedEvent struct {
	Mode             string `json:"mode"`
	Database         string `json:"database"`
	UserCollection   string `json:"user_collection"`
	ReviewCollection string `json:"review_collection"`
	Users            int    `json:"users"`
	Reviews          int    `json:"reviews"`
	FirstUserId      int    `json:"first_user_id"`
	LastUserId       int    `json:"last_user_id"`
	FirstReviewId    int    `json:"first_review_id"`
	LastReviewId     int    `json:"last_review_id"`
	Timestamp        int64  `json:"timestamp"`
}
