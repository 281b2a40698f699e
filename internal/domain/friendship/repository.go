package friendship

import (
	"context"
	"fmt"

	"socialhub/internal/database"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a, b int64) error
	ListByUser(ctx context.Context, userID int64) ([]int64, error)
	Exists(ctx context.Context, a, b int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a, b int64) error {
	lo, hi := orderedPair(a, b)
	err := r.db.WithContext(ctx).Create(&Friendship{FriendA: lo, FriendB: hi}).Error
	if database.IsUniqueViolation(err) {
		return ErrAlreadyFriends
	}
	if err != nil {
		return fmt.Errorf("create friendship %d-%d: %w", lo, hi, err)
	}
	return nil
}

// ListByUser returns the ids of userID's friends, oldest friendship first.
func (r *repository) ListByUser(ctx context.Context, userID int64) ([]int64, error) {
	var rows []Friendship
	err := r.db.WithContext(ctx).
		Where("friend_a = ? OR friend_b = ?", userID, userID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list friends of %d: %w", userID, err)
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		if row.FriendA == userID {
			ids = append(ids, row.FriendB)
		} else {
			ids = append(ids, row.FriendA)
		}
	}
	return ids, nil
}

func (r *repository) Exists(ctx context.Context, a, b int64) (bool, error) {
	lo, hi := orderedPair(a, b)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Friendship{}).
		Where("friend_a = ? AND friend_b = ?", lo, hi).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check friendship %d-%d: %w", lo, hi, err)
	}
	return count > 0, nil
}
