package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// SchemaRepository 建表、索引与启动前置检查
type SchemaRepository struct {
	db *gorm.DB
}

func NewSchemaRepository(db *gorm.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// 全量重建时按依赖顺序先删子表再删父表，避免方言不一的 CASCADE 语法
var dropOrder = []string{"stars", "ratings", "movies", "people"}

var createStatements = []string{
	`CREATE TABLE movies (
		id BIGINT PRIMARY KEY,
		title TEXT NOT NULL,
		year INTEGER,
		title_type TEXT,
		is_adult INTEGER,
		runtime INTEGER,
		genres TEXT
	)`,
	`CREATE TABLE people (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		birth INTEGER,
		death INTEGER,
		known_for TEXT
	)`,
	`CREATE TABLE ratings (
		movie_id BIGINT REFERENCES movies (id) ON DELETE CASCADE,
		average NUMERIC,
		num_votes INTEGER
	)`,
	`CREATE TABLE stars (
		person_id BIGINT REFERENCES people (id) ON DELETE CASCADE,
		movie_id BIGINT REFERENCES movies (id) ON DELETE CASCADE,
		category TEXT,
		UNIQUE (person_id, movie_id)
	)`,
}

// CheckTables 检查必需表是否齐全，任一缺失直接报错
func (r *SchemaRepository) CheckTables() error {
	for _, table := range []string{"people", "movies", "ratings", "stars"} {
		if !r.db.Migrator().HasTable(table) {
			return fmt.Errorf("必需的数据表 %s 不存在，请先执行全量导入", table)
		}
	}
	return nil
}

// Reset 删除并重建全部数据表（全量重建的起点）
func (r *SchemaRepository) Reset() error {
	for _, table := range dropOrder {
		if err := r.db.Exec("DROP TABLE IF EXISTS " + table).Error; err != nil {
			return fmt.Errorf("删除表 %s 失败: %w", table, err)
		}
	}
	for _, stmt := range createStatements {
		if err := r.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("建表失败: %w", err)
		}
	}
	return nil
}

// CreateIndexes 创建邻接查询用到的索引
// 延迟到批量导入与清洗之后执行，避免写入阶段的索引维护开销；重复执行是空操作
func (r *SchemaRepository) CreateIndexes() error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS ratings_movie_id_index ON ratings (movie_id)",
		"CREATE INDEX IF NOT EXISTS stars_movie_id_index ON stars (movie_id)",
		"CREATE INDEX IF NOT EXISTS stars_person_id_index ON stars (person_id)",
	}
	for _, stmt := range statements {
		if err := r.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("创建索引失败: %w", err)
		}
	}
	return nil
}
