package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebook/internal/domain"
)

type SubscriptionRepository interface {
	Add(ctx context.Context, followerID, authorID int64) error
	Remove(ctx context.Context, followerID, authorID int64) error
	Exists(ctx context.Context, followerID, authorID int64) (bool, error)
	ListByFollower(ctx context.Context, followerID int64) ([]domain.Subscription, error)
	AuthorIDsFor(ctx context.Context, followerID int64, candidates []int64) (map[int64]bool, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Add(ctx context.Context, followerID, authorID int64) error {
	return r.db.WithContext(ctx).Create(&domain.Subscription{
		FollowerID: followerID,
		AuthorID:   authorID,
	}).Error
}

func (r *subscriptionRepository) Remove(ctx context.Context, followerID, authorID int64) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&domain.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, followerID, authorID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) ListByFollower(ctx context.Context, followerID int64) ([]domain.Subscription, error) {
	var out []domain.Subscription
	err := r.db.WithContext(ctx).
		Where("follower_id = ?", followerID).
		Preload("Author").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *subscriptionRepository) AuthorIDsFor(ctx context.Context, followerID int64, candidates []int64) (map[int64]bool, error) {
	marked := make(map[int64]bool, len(candidates))
	if followerID == 0 || len(candidates) == 0 {
		return marked, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("follower_id = ? AND author_id IN ?", followerID, candidates).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		marked[id] = true
	}
	return marked, nil
}
