package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gummy-store/models"

	"github.com/redis/go-redis/v9"
)

const reviewCountsKey = "reviews:likes"

type ReviewStore interface {
	Toggle(ctx context.Context, reviewID, sessionID string) (*models.ReviewToggleResult, error)
	Counts(ctx context.Context) (map[string]int, error)
	LikedBy(ctx context.Context, sessionID string) ([]string, error)
}

type ReviewService struct {
	store ReviewStore
	cache *redis.Client
	ttl   time.Duration
}

func NewReviewService(store ReviewStore, cache *redis.Client) *ReviewService {
	return &ReviewService{store: store, cache: cache, ttl: time.Minute}
}

func (s *ReviewService) Summary(ctx context.Context, session models.Session) (*models.ReviewLikesSummary, error) {
	likes, err := s.counts(ctx)
	if err != nil {
		return nil, err
	}

	liked, err := s.store.LikedBy(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return &models.ReviewLikesSummary{Likes: likes, Liked: liked}, nil
}

func (s *ReviewService) counts(ctx context.Context) (map[string]int, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, reviewCountsKey).Bytes()
		if err == nil {
			var likes map[string]int
			if json.Unmarshal(cached, &likes) == nil {
				return likes, nil
			}
		} else if err != redis.Nil {
			log.Printf("[reviews] cache read: %v", err)
		}
	}

	likes, err := s.store.Counts(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(likes); err == nil {
			if err := s.cache.Set(ctx, reviewCountsKey, data, s.ttl).Err(); err != nil {
				log.Printf("[reviews] cache write: %v", err)
			}
		}
	}
	return likes, nil
}

func (s *ReviewService) Toggle(ctx context.Context, session models.Session, reviewID string) (*models.ReviewToggleResult, error) {
	if _, known := models.DefaultReviewLikes[reviewID]; !known {
		return nil, models.ErrNotFound
	}

	result, err := s.store.Toggle(ctx, reviewID, session.ID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, reviewCountsKey).Err(); err != nil {
			log.Printf("[reviews] cache invalidate: %v", err)
		}
	}
	return result, nil
}
