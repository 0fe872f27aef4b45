package service

import (
	"fmt"

	"github.com/user/sixdegrees/internal/model"
	"github.com/user/sixdegrees/internal/repository"
)

// HydrateService 路径详情补全服务
// 对路径上每对相邻人物查出最著名的共演影片与双方角色，并生成描述语句
type HydrateService struct {
	stars *repository.StarRepository
}

// NewHydrateService 创建详情补全服务
func NewHydrateService(stars *repository.StarRepository) *HydrateService {
	return &HydrateService{stars: stars}
}

// Hydrate 补全一条人物 ID 路径
// 路径由搜索产出，相邻两人必然共演过至少一部影片，查不到反而说明存储坏了
func (s *HydrateService) Hydrate(path []int64) ([]model.PathStep, error) {
	if len(path) < 2 {
		return nil, nil
	}

	steps := make([]model.PathStep, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		detail, err := s.stars.FindPairDetail(path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		if detail == nil {
			return nil, fmt.Errorf("人物 %d 与 %d 之间不存在共演记录，路径无效", path[i], path[i+1])
		}

		role1, err := model.ParseRole(detail.Person1Role)
		if err != nil {
			return nil, err
		}
		role2, err := model.ParseRole(detail.Person2Role)
		if err != nil {
			return nil, err
		}

		step := model.PathStep{
			Person1ID:   detail.Person1ID,
			Person1Name: detail.Person1Name,
			Person1Role: role1,
			MovieID:     detail.MovieID,
			MovieTitle:  detail.MovieTitle,
			MovieYear:   detail.MovieYear,
			MovieRating: detail.MovieAverage,
			Person2ID:   detail.Person2ID,
			Person2Name: detail.Person2Name,
			Person2Role: role2,
		}
		step.Sentence = makeSentence(step)
		steps = append(steps, step)
	}
	return steps, nil
}

func makeSentence(step model.PathStep) string {
	title := step.MovieTitle
	if step.MovieYear != nil {
		title = fmt.Sprintf("%s (%d)", title, *step.MovieYear)
	}
	return fmt.Sprintf("%s %s in %s where %s %s.",
		step.Person1Name, step.Person1Role.Phrase(),
		title,
		step.Person2Name, step.Person2Role.Phrase(),
	)
}
