package repository

import (
	"errors"
	"strings"

	"github.com/user/sixdegrees/internal/model"
	"gorm.io/gorm"
)

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// BatchInsert 批量插入一批人物（一次调用一个事务，即一个提交边界）
func (r *PersonRepository) BatchInsert(people []model.Person) error {
	if len(people) == 0 {
		return nil
	}
	return r.db.Create(&people).Error
}

// FindByID 根据 ID 查找人物，不存在时返回 nil
func (r *PersonRepository) FindByID(id int64) (*model.Person, error) {
	var person model.Person
	err := r.db.Table("people").Where("id = ?", id).Take(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// SearchCandidates 按姓名做大小写不敏感的包含查询
// 整词匹配在上层完成，这里只负责一次方言无关的候选预筛
func (r *PersonRepository) SearchCandidates(name string) ([]model.Person, error) {
	var people []model.Person
	pattern := "%" + strings.ToLower(name) + "%"
	err := r.db.Table("people").
		Where("LOWER(name) LIKE ?", pattern).
		Find(&people).Error
	if err != nil {
		return nil, err
	}
	return people, nil
}

// IDSet 取出全部人物 ID，用于边导入前的端点校验
func (r *PersonRepository) IDSet() (map[int64]struct{}, error) {
	rows, err := r.db.Table("people").Select("id").Rows()
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

// DeleteIsolated 删除没有任何出演边的人物，返回删除行数
func (r *PersonRepository) DeleteIsolated() (int64, error) {
	result := r.db.Exec(`DELETE FROM people
		WHERE id IN (
			SELECT people.id
			FROM people
			LEFT JOIN stars ON people.id = stars.person_id
			WHERE stars.movie_id IS NULL
		)`)
	return result.RowsAffected, result.Error
}

// Count 人物总数
func (r *PersonRepository) Count() (int64, error) {
	var count int64
	err := r.db.Table("people").Count(&count).Error
	return count, err
}
