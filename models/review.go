package models

import "time"

// DefaultReviewLikes are the counters shown before anyone liked a review.
var DefaultReviewLikes = map[string]int{
	"review1": 87,
	"review2": 32,
	"review3": 69,
}

type ReviewLike struct {
	ReviewID  string    `json:"review_id" db:"review_id"`
	LikeCount int       `json:"like_count" db:"like_count"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type ReviewUserLike struct {
	ReviewID    string    `json:"review_id" db:"review_id"`
	UserSession string    `json:"user_session" db:"user_session"`
	Liked       bool      `json:"liked" db:"liked"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type ReviewLikesSummary struct {
	Likes map[string]int `json:"likes"`
	Liked []string       `json:"liked"`
}

type ReviewToggleResult struct {
	ReviewID  string `json:"review_id"`
	LikeCount int    `json:"like_count"`
	Liked     bool   `json:"liked"`
}
