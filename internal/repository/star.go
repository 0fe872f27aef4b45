package repository

import (
	"database/sql"
	"errors"

	"github.com/user/sixdegrees/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StarRepository struct {
	db *gorm.DB
}

func NewStarRepository(db *gorm.DB) *StarRepository {
	return &StarRepository{db: db}
}

// BatchInsert 批量插入一批出演边（一次调用一个事务，即一个提交边界）
// (person_id, movie_id) 已存在时忽略，源数据里的重复行是良性的
func (r *StarRepository) BatchInsert(stars []model.Star) error {
	if len(stars) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "person_id"}, {Name: "movie_id"}},
		DoNothing: true,
	}).Create(&stars).Error
}

// Contacts 查询与给定人物共演过至少一部影片的全部人物 ID（排除本人）
// 共演图从不整体物化，邻接集合全部按需由这条 JOIN 计算
func (r *StarRepository) Contacts(personID int64) ([]int64, error) {
	var contacts []int64
	err := r.db.Raw(`
		SELECT DISTINCT s2.person_id
		FROM stars s1
		JOIN stars s2 ON s1.movie_id = s2.movie_id
		WHERE s1.person_id = ? AND s2.person_id != ?
	`, personID, personID).Scan(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// PairDetail 相邻两人的共演详情
type PairDetail struct {
	Person1ID    int64
	Person1Name  string
	Person1Role  string
	MovieID      int64
	MovieTitle   string
	MovieYear    *int
	MovieAverage *float64
	Person2ID    int64
	Person2Name  string
	Person2Role  string
}

// FindPairDetail 查询两人共演的影片及双方角色，按票数取最著名的一部
// 两人没有共演影片时返回 nil
func (r *StarRepository) FindPairDetail(person1ID, person2ID int64) (*PairDetail, error) {
	row := r.db.Raw(`
		SELECT p1.id, p1.name, s1.category,
			movies.id, movies.title, movies.year, ratings.average,
			p2.id, p2.name, s2.category
		FROM stars s1
		JOIN stars s2 ON s1.movie_id = s2.movie_id
		JOIN people p1 ON p1.id = s1.person_id
		JOIN people p2 ON p2.id = s2.person_id
		JOIN movies ON movies.id = s1.movie_id
		JOIN ratings ON ratings.movie_id = movies.id
		WHERE s1.person_id = ? AND s2.person_id = ?
		ORDER BY ratings.num_votes DESC
	`, person1ID, person2ID).Row()

	var detail PairDetail
	err := row.Scan(
		&detail.Person1ID, &detail.Person1Name, &detail.Person1Role,
		&detail.MovieID, &detail.MovieTitle, &detail.MovieYear, &detail.MovieAverage,
		&detail.Person2ID, &detail.Person2Name, &detail.Person2Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Count 出演边总数
func (r *StarRepository) Count() (int64, error) {
	var count int64
	err := r.db.Table("stars").Count(&count).Error
	return count, err
}
