package service

import (
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/user/sixdegrees/internal/model"
	"github.com/user/sixdegrees/internal/repository"
	"github.com/user/sixdegrees/internal/utils"
)

// ResolverService 人物解析服务
// 把用户输入（数字 ID 或姓名片段）解析为零个、一个或多个候选人物
type ResolverService struct {
	people *repository.PersonRepository
	movies *repository.MovieRepository
}

// NewResolverService 创建解析服务
func NewResolverService(people *repository.PersonRepository, movies *repository.MovieRepository) *ResolverService {
	return &ResolverService{people: people, movies: movies}
}

// Resolve 解析用户输入
// 能解析为整数时按 ID 精确查找（ID 唯一，结果只会是命中或未命中）；
// 否则按姓名做大小写不敏感的整词匹配
func (s *ResolverService) Resolve(input string) (*model.Resolution, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return &model.Resolution{Status: model.ResolveNotFound}, nil
	}

	if id, err := strconv.ParseInt(input, 10, 64); err == nil && id >= 0 {
		person, err := s.people.FindByID(id)
		if err != nil {
			return nil, err
		}
		if person == nil {
			return &model.Resolution{Status: model.ResolveNotFound}, nil
		}
		return &model.Resolution{Status: model.ResolveExact, Person: person}, nil
	}

	return s.resolveByName(input)
}

func (s *ResolverService) resolveByName(name string) (*model.Resolution, error) {
	candidates, err := s.people.SearchCandidates(name)
	if err != nil {
		return nil, err
	}

	// 输入必须作为独立词元出现，不允许跨词边界的子串命中
	pattern, err := regexp.Compile(`(?i)(^|\s)` + regexp.QuoteMeta(name) + `($|\s)`)
	if err != nil {
		return nil, err
	}
	matches := make([]model.Person, 0, len(candidates))
	for _, person := range candidates {
		if pattern.MatchString(person.Name) {
			matches = append(matches, person)
		}
	}

	switch len(matches) {
	case 0:
		return &model.Resolution{Status: model.ResolveNotFound}, nil
	case 1:
		return &model.Resolution{Status: model.ResolveExact, Person: &matches[0]}, nil
	}

	// known_for 文本越长越可能是用户要找的人，排到后面；没有 known_for 的排最后
	sort.SliceStable(matches, func(i, j int) bool {
		return knownForLength(matches[i].KnownFor) < knownForLength(matches[j].KnownFor)
	})

	// 解析不出任何代表作片名的人不进展示列表，但仍留在全量命中里，
	// 可以通过精确 ID 或全名再次选中
	display := make([]model.Candidate, 0, len(matches))
	for _, person := range matches {
		titles := s.KnownForTitles(person.KnownFor)
		if len(titles) == 0 {
			continue
		}
		display = append(display, model.Candidate{Person: person, KnownForTitles: titles})
	}

	return &model.Resolution{
		Status:     model.ResolveAmbiguous,
		Matches:    matches,
		Candidates: display,
	}, nil
}

// KnownForTitles 把 known_for 的外部 ID 列表解析为片名
// 已被清洗掉的影片查不到片名，属于正常情况
func (s *ResolverService) KnownForTitles(knownFor *string) []string {
	if knownFor == nil {
		return nil
	}

	cacheKey := "knownfor:" + *knownFor
	if cached, ok := utils.CacheGet(cacheKey); ok {
		return cached.([]string)
	}

	ids, err := utils.SplitExternalIDs(*knownFor, "tt")
	if err != nil {
		log.Printf("[Resolver] 解析 known_for 字段失败: %v", err)
		return nil
	}
	titles, err := s.movies.TitlesByIDs(ids)
	if err != nil {
		log.Printf("[Resolver] 查询代表作片名失败: %v", err)
		return nil
	}

	utils.CacheSet(cacheKey, titles, 5*time.Minute)
	return titles
}

func knownForLength(knownFor *string) int {
	if knownFor == nil {
		// NULL 永远排在有值之后
		return int(^uint(0) >> 1)
	}
	return len(*knownFor)
}
