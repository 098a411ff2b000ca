package repositories

import (
	"github.com/sociallink-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(id uint) error
	GetLike(userID, postID uint) (*models.Like, error)
	CountLikes(userID, postID uint) (int64, error)
}

// GormLikeRepository implements LikeRepository on GORM
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GormLikeRepository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// CreateLike inserts a like row. A concurrent duplicate for the same
// (user, post) pair surfaces as gorm.ErrDuplicatedKey via the unique index.
func (r *GormLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like row by primary key
func (r *GormLikeRepository) DeleteLike(id uint) error {
	return r.db.Delete(&models.Like{}, id).Error
}

// GetLike retrieves the like for a (user, post) pair
func (r *GormLikeRepository) GetLike(userID, postID uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// CountLikes counts like rows for a (user, post) pair
func (r *GormLikeRepository) CountLikes(userID, postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
