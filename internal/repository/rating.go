package repository

import (
	"github.com/user/sixdegrees/internal/model"
	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// BatchInsert 批量插入一批评分（一次调用一个事务，即一个提交边界）
func (r *RatingRepository) BatchInsert(ratings []model.Rating) error {
	if len(ratings) == 0 {
		return nil
	}
	return r.db.Create(&ratings).Error
}

// Count 评分总数
func (r *RatingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Table("ratings").Count(&count).Error
	return count, err
}
