package mysql

import (
	"inkwell/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

// Subscribe is an idempotent insert on the (follower, author) pair. Returns
// whether this call actually created the subscription.
func (r *SubscriptionRepository) Subscribe(followerID, authorID uint64) (bool, error) {
	tx := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "author_id"}},
		DoNothing: true,
	}).Create(&model.Subscription{FollowerID: followerID, AuthorID: authorID})
	if tx.Error != nil {
		return false, wrapErr(tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// Unsubscribe is idempotent as well; unsubscribing twice is not an error.
func (r *SubscriptionRepository) Unsubscribe(followerID, authorID uint64) (bool, error) {
	tx := r.DB.Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&model.Subscription{})
	if tx.Error != nil {
		return false, wrapErr(tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (r *SubscriptionRepository) IsSubscribed(followerID, authorID uint64) (bool, error) {
	var n int64
	err := r.DB.Model(&model.Subscription{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&n).Error
	return n > 0, wrapErr(err)
}

// AuthorIDs lists the authors a user follows.
func (r *SubscriptionRepository) AuthorIDs(followerID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.Model(&model.Subscription{}).
		Where("follower_id = ?", followerID).
		Pluck("author_id", &ids).Error
	return ids, wrapErr(err)
}
