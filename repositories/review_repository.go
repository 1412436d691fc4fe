package repositories

import (
	"context"
	"errors"
	"fmt"

	"gummy-store/models"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

type ReviewRepository struct {
	db TxBeginner
}

func NewReviewRepository(db TxBeginner) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Toggle flips the session's like on reviewID and moves the shared counter
// by one in the same transaction. The counter starts from the review's
// default when no row exists yet and never drops below zero.
func (r *ReviewRepository) Toggle(ctx context.Context, reviewID, sessionID string) (*models.ReviewToggleResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		INSERT INTO review_user_likes (review_id, user_session, liked, updated_at)
		VALUES ($1, $2, true, now())
		ON CONFLICT (review_id, user_session)
		DO UPDATE SET liked = NOT review_user_likes.liked, updated_at = now()
		RETURNING review_id, user_session, liked, updated_at
	`, reviewID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("toggle user like: %w", err)
	}
	like, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ReviewUserLike])
	if err != nil {
		return nil, fmt.Errorf("toggle user like: %w", err)
	}

	delta := -1
	if like.Liked {
		delta = 1
	}

	var count int
	err = tx.QueryRow(ctx, `
		INSERT INTO review_likes (review_id, like_count, updated_at)
		VALUES ($1, GREATEST($2::int + $3::int, 0), now())
		ON CONFLICT (review_id)
		DO UPDATE SET like_count = GREATEST(review_likes.like_count + $3::int, 0), updated_at = now()
		RETURNING like_count
	`, reviewID, models.DefaultReviewLikes[reviewID], delta).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("update like count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit toggle: %w", err)
	}

	return &models.ReviewToggleResult{ReviewID: reviewID, LikeCount: count, Liked: like.Liked}, nil
}

// Counts returns stored counters merged over the defaults.
func (r *ReviewRepository) Counts(ctx context.Context) (map[string]int, error) {
	likes := make(map[string]int, len(models.DefaultReviewLikes))
	for id, n := range models.DefaultReviewLikes {
		likes[id] = n
	}

	rows, err := r.db.Query(ctx, `SELECT review_id, like_count, updated_at FROM review_likes`)
	if err != nil {
		return nil, fmt.Errorf("select review likes: %w", err)
	}
	stored, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ReviewLike])
	if err != nil {
		return nil, fmt.Errorf("collect review likes: %w", err)
	}
	for _, l := range stored {
		likes[l.ReviewID] = l.LikeCount
	}
	return likes, nil
}

// LikedBy lists the reviews the session currently likes.
func (r *ReviewRepository) LikedBy(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT review_id FROM review_user_likes
		WHERE user_session = $1 AND liked
		ORDER BY review_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("select user likes: %w", err)
	}
	liked, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("collect user likes: %w", err)
	}
	if liked == nil {
		liked = []string{}
	}
	return liked, nil
}
