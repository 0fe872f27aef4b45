package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/user/sixdegrees/internal/config"
	"github.com/user/sixdegrees/internal/model"
	"github.com/user/sixdegrees/internal/repository"
	"github.com/user/sixdegrees/internal/utils"
	"golang.org/x/sync/errgroup"
)

// LoadReport 单表导入的结构化结果
// 跳过行不再只打日志，调用方和测试都能直接断言
type LoadReport struct {
	Table    string `json:"table"`
	Inserted int64  `json:"inserted"`
	Skipped  int64  `json:"skipped"`
}

// SkipRatio 跳过行占比
func (r LoadReport) SkipRatio() float64 {
	total := r.Inserted + r.Skipped
	if total == 0 {
		return 0
	}
	return float64(r.Skipped) / float64(total)
}

// LoaderService 全量导入服务
// 流式读取四个制表符分隔的数据集文件，按固定批次提交
type LoaderService struct {
	repos *repository.Repositories
	cfg   *config.Config
}

// NewLoaderService 创建导入服务
func NewLoaderService(repos *repository.Repositories, cfg *config.Config) *LoaderService {
	return &LoaderService{repos: repos, cfg: cfg}
}

// Rebuild 全量重建数据库
// 固定顺序：重建表结构 -> 影片与人物（互不依赖，并发装载）-> 评分 -> 出演边；
// 评分与出演边的跳过占比超过阈值时判定导入失败
func (s *LoaderService) Rebuild() ([]LoadReport, error) {
	if err := s.repos.Schema.Reset(); err != nil {
		return nil, err
	}

	var movieReport, peopleReport LoadReport
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		movieReport, err = s.LoadMovies()
		return err
	})
	g.Go(func() error {
		var err error
		peopleReport, err = s.LoadPeople()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ratingReport, err := s.LoadRatings()
	if err != nil {
		return nil, err
	}
	starReport, err := s.LoadStars()
	if err != nil {
		return nil, err
	}

	reports := []LoadReport{movieReport, peopleReport, ratingReport, starReport}
	for _, report := range reports[2:] {
		if ratio := report.SkipRatio(); ratio > s.cfg.MaxSkipRatio {
			return reports, fmt.Errorf("表 %s 跳过占比 %.2f%% 超过阈值 %.2f%%，判定导入失败",
				report.Table, ratio*100, s.cfg.MaxSkipRatio*100)
		}
	}
	return reports, nil
}

// LoadMovies 导入影片表
func (s *LoaderService) LoadMovies() (LoadReport, error) {
	report := LoadReport{Table: "movies"}
	reader, err := newTSVReader(filepath.Join(s.cfg.DataDir, "movies.tsv"))
	if err != nil {
		return report, err
	}
	defer reader.Close()

	batch := make([]model.Movie, 0, s.cfg.BatchSize)
	for {
		record, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("读取 movies.tsv 失败: %w", err)
		}

		id, err := utils.ParseExternalID(reader.Field(record, "tconst"), "tt")
		if err != nil {
			return report, err
		}
		year, err := utils.NullableInt(reader.Field(record, "startYear"))
		if err != nil {
			return report, err
		}
		isAdult, err := utils.NullableInt(reader.Field(record, "isAdult"))
		if err != nil {
			return report, err
		}
		runtime, err := utils.NullableInt(reader.Field(record, "runtimeMinutes"))
		if err != nil {
			return report, err
		}

		movie := model.Movie{
			ID:        id,
			Title:     reader.Field(record, "primaryTitle"),
			Year:      year,
			TitleType: utils.NullableText(reader.Field(record, "titleType")),
			Runtime:   runtime,
			Genres:    utils.NullableText(reader.Field(record, "genres")),
		}
		if isAdult != nil {
			movie.IsAdult = *isAdult
		}

		batch = append(batch, movie)
		if len(batch) == s.cfg.BatchSize {
			if err := s.repos.Movie.BatchInsert(batch); err != nil {
				return report, fmt.Errorf("插入 movies 失败: %w", err)
			}
			report.Inserted += int64(len(batch))
			batch = batch[:0]
			log.Printf("[Loader] movies 已插入 %d 条记录", report.Inserted)
		}
	}

	if err := s.repos.Movie.BatchInsert(batch); err != nil {
		return report, fmt.Errorf("插入 movies 失败: %w", err)
	}
	report.Inserted += int64(len(batch))
	log.Printf("[Loader] movies 导入完成，共 %d 条", report.Inserted)
	return report, nil
}

// LoadPeople 导入人物表
func (s *LoaderService) LoadPeople() (LoadReport, error) {
	report := LoadReport{Table: "people"}
	reader, err := newTSVReader(filepath.Join(s.cfg.DataDir, "names.tsv"))
	if err != nil {
		return report, err
	}
	defer reader.Close()

	batch := make([]model.Person, 0, s.cfg.BatchSize)
	for {
		record, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("读取 names.tsv 失败: %w", err)
		}

		id, err := utils.ParseExternalID(reader.Field(record, "nconst"), "nm")
		if err != nil {
			return report, err
		}
		birth, err := utils.NullableInt(reader.Field(record, "birthYear"))
		if err != nil {
			return report, err
		}
		death, err := utils.NullableInt(reader.Field(record, "deathYear"))
		if err != nil {
			return report, err
		}

		batch = append(batch, model.Person{
			ID:       id,
			Name:     reader.Field(record, "primaryName"),
			Birth:    birth,
			Death:    death,
			KnownFor: utils.NullableText(reader.Field(record, "knownForTitles")),
		})
		if len(batch) == s.cfg.BatchSize {
			if err := s.repos.Person.BatchInsert(batch); err != nil {
				return report, fmt.Errorf("插入 people 失败: %w", err)
			}
			report.Inserted += int64(len(batch))
			batch = batch[:0]
			log.Printf("[Loader] people 已插入 %d 条记录", report.Inserted)
		}
	}

	if err := s.repos.Person.BatchInsert(batch); err != nil {
		return report, fmt.Errorf("插入 people 失败: %w", err)
	}
	report.Inserted += int64(len(batch))
	log.Printf("[Loader] people 导入完成，共 %d 条", report.Inserted)
	return report, nil
}

// LoadRatings 导入评分表
// 影片端点不存在的行跳过并计数，不中断导入
func (s *LoaderService) LoadRatings() (LoadReport, error) {
	report := LoadReport{Table: "ratings"}
	movieIDs, err := s.repos.Movie.IDSet()
	if err != nil {
		return report, err
	}

	reader, err := newTSVReader(filepath.Join(s.cfg.DataDir, "ratings.tsv"))
	if err != nil {
		return report, err
	}
	defer reader.Close()

	batch := make([]model.Rating, 0, s.cfg.BatchSize)
	for {
		record, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("读取 ratings.tsv 失败: %w", err)
		}

		movieID, err := utils.ParseExternalID(reader.Field(record, "tconst"), "tt")
		if err != nil {
			return report, err
		}
		if _, ok := movieIDs[movieID]; !ok {
			report.Skipped++
			continue
		}

		average, err := utils.NullableFloat(reader.Field(record, "averageRating"))
		if err != nil {
			return report, err
		}
		numVotes, err := utils.NullableInt(reader.Field(record, "numVotes"))
		if err != nil {
			return report, err
		}

		batch = append(batch, model.Rating{
			MovieID:  movieID,
			Average:  average,
			NumVotes: numVotes,
		})
		if len(batch) == s.cfg.BatchSize {
			if err := s.repos.Rating.BatchInsert(batch); err != nil {
				return report, fmt.Errorf("插入 ratings 失败: %w", err)
			}
			report.Inserted += int64(len(batch))
			batch = batch[:0]
			log.Printf("[Loader] ratings 已插入 %d 条记录", report.Inserted)
		}
	}

	if err := s.repos.Rating.BatchInsert(batch); err != nil {
		return report, fmt.Errorf("插入 ratings 失败: %w", err)
	}
	report.Inserted += int64(len(batch))
	log.Printf("[Loader] ratings 导入完成，共 %d 条，跳过 %d 条", report.Inserted, report.Skipped)
	return report, nil
}

// LoadStars 导入出演边表
// 任一端点不存在的行跳过并计数；(person_id, movie_id) 重复时由插入侧忽略
func (s *LoaderService) LoadStars() (LoadReport, error) {
	report := LoadReport{Table: "stars"}
	personIDs, err := s.repos.Person.IDSet()
	if err != nil {
		return report, err
	}
	movieIDs, err := s.repos.Movie.IDSet()
	if err != nil {
		return report, err
	}

	reader, err := newTSVReader(filepath.Join(s.cfg.DataDir, "stars.tsv"))
	if err != nil {
		return report, err
	}
	defer reader.Close()

	batch := make([]model.Star, 0, s.cfg.BatchSize)
	for {
		record, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("读取 stars.tsv 失败: %w", err)
		}

		personID, err := utils.ParseExternalID(reader.Field(record, "nconst"), "nm")
		if err != nil {
			return report, err
		}
		movieID, err := utils.ParseExternalID(reader.Field(record, "tconst"), "tt")
		if err != nil {
			return report, err
		}

		if _, ok := personIDs[personID]; !ok {
			report.Skipped++
			continue
		}
		if _, ok := movieIDs[movieID]; !ok {
			report.Skipped++
			continue
		}

		batch = append(batch, model.Star{
			PersonID: personID,
			MovieID:  movieID,
			Category: reader.Field(record, "category"),
		})
		if len(batch) == s.cfg.BatchSize {
			if err := s.repos.Star.BatchInsert(batch); err != nil {
				return report, fmt.Errorf("插入 stars 失败: %w", err)
			}
			report.Inserted += int64(len(batch))
			batch = batch[:0]
			log.Printf("[Loader] stars 已插入 %d 条记录", report.Inserted)
		}
	}

	if err := s.repos.Star.BatchInsert(batch); err != nil {
		return report, fmt.Errorf("插入 stars 失败: %w", err)
	}
	report.Inserted += int64(len(batch))
	log.Printf("[Loader] stars 导入完成，共 %d 条，跳过 %d 条", report.Inserted, report.Skipped)
	return report, nil
}

// tsvReader 制表符分隔文件的流式读取器，首行为列名
type tsvReader struct {
	file   *os.File
	reader *csv.Reader
	cols   map[string]int
}

func newTSVReader(path string) (*tsvReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开数据文件失败: %w", err)
	}

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	return &tsvReader{file: file, reader: reader, cols: cols}, nil
}

// Next 读取下一条记录，文件结束返回 io.EOF
func (t *tsvReader) Next() ([]string, error) {
	return t.reader.Read()
}

// Field 按列名取字段，缺列按哨兵值处理
func (t *tsvReader) Field(record []string, name string) string {
	idx, ok := t.cols[name]
	if !ok || idx >= len(record) {
		return utils.NullSentinel
	}
	return record[idx]
}

func (t *tsvReader) Close() {
	t.file.Close()
}
