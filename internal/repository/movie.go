package repository

import (
	"errors"
	"strings"

	"github.com/user/sixdegrees/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// BatchInsert 批量插入一批影片（一次调用一个事务，即一个提交边界）
func (r *MovieRepository) BatchInsert(movies []model.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	return r.db.Create(&movies).Error
}

// FindByID 根据 ID 查找影片，不存在时返回 nil
func (r *MovieRepository) FindByID(id int64) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Table("movies").Where("id = ?", id).Take(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// TitlesByIDs 批量查询片名（代表作展示用）
func (r *MovieRepository) TitlesByIDs(ids []int64) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var titles []string
	err := r.db.Table("movies").
		Where("id IN ?", ids).
		Pluck("title", &titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// IDSet 取出全部影片 ID，用于评分与边导入前的端点校验
func (r *MovieRepository) IDSet() (map[int64]struct{}, error) {
	rows, err := r.db.Table("movies").Select("id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = struct{}{}
	}
	return set, rows.Err()
}

// DeleteAdult 删除成人内容影片
func (r *MovieRepository) DeleteAdult() (int64, error) {
	result := r.db.Exec("DELETE FROM movies WHERE is_adult = 1")
	return result.RowsAffected, result.Error
}

// DeleteByTitleType 删除类别不在保留集合内的影片
func (r *MovieRepository) DeleteByTitleType(retained []string) (int64, error) {
	result := r.db.Exec("DELETE FROM movies WHERE title_type NOT IN ?", retained)
	return result.RowsAffected, result.Error
}

// DeleteBelowVotes 删除票数低于阈值的影片（没有评分记录视同低于阈值）
func (r *MovieRepository) DeleteBelowVotes(minVotes int) (int64, error) {
	result := r.db.Exec(`DELETE FROM movies
		WHERE id IN (
			SELECT movies.id
			FROM movies
			LEFT JOIN ratings ON movies.id = ratings.movie_id
			WHERE ratings.num_votes IS NULL
			OR ratings.num_votes < ?
		)`, minVotes)
	return result.RowsAffected, result.Error
}

// DeleteByGenres 删除类型标签命中排除集合的影片
// genres 是逗号分隔文本，按原始文本做包含匹配
func (r *MovieRepository) DeleteByGenres(excluded []string) (int64, error) {
	if len(excluded) == 0 {
		return 0, nil
	}
	conditions := make([]string, 0, len(excluded))
	args := make([]interface{}, 0, len(excluded))
	for _, genre := range excluded {
		conditions = append(conditions, "genres LIKE ?")
		args = append(args, "%"+genre+"%")
	}
	result := r.db.Exec("DELETE FROM movies WHERE "+strings.Join(conditions, " OR "), args...)
	return result.RowsAffected, result.Error
}

// Count 影片总数
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Table("movies").Count(&count).Error
	return count, err
}
