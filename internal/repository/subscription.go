package repository

import (
	"context"

	"foodgram/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository manages the subscriber -> author membership set.
type SubscriptionRepository interface {
	Add(ctx context.Context, subscriberID, authorID uint) (bool, error)
	Remove(ctx context.Context, subscriberID, authorID uint) (bool, error)
	ListAuthors(ctx context.Context, subscriberID uint, limit, offset int) ([]models.User, int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a new SubscriptionRepository implementation.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Add inserts the subscription row. Returns false if it already existed.
func (r *subscriptionRepository) Add(ctx context.Context, subscriberID, authorID uint) (bool, error) {
	sub := models.Subscription{SubscriberID: subscriberID, AuthorID: authorID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&sub)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Remove deletes the subscription row. Returns false if it was absent.
func (r *subscriptionRepository) Remove(ctx context.Context, subscriberID, authorID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListAuthors returns the authors the subscriber follows, most recent first.
// is_subscribed is true on every row by construction.
func (r *subscriptionRepository) ListAuthors(ctx context.Context, subscriberID uint, limit, offset int) ([]models.User, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var authors []models.User
	err := base.
		Select("users.*, 1 = 1 AS is_subscribed").
		Order("subscriptions.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return authors, total, nil
}
