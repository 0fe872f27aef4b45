package service

import (
	"fmt"
	"log"

	"github.com/user/sixdegrees/internal/config"
	"github.com/user/sixdegrees/internal/repository"
)

// 清洗阶段的保留与排除集合
var (
	retainedTitleTypes = []string{"movie", "short", "tvSeries", "tvMiniSeries"}
	excludedGenres     = []string{"News", "Talk-Show", "Reality-TV", "Adult"}
)

// CleanupService 数据清洗服务
// 按固定顺序对影片表应用保留规则，外键级联清掉失去端点的评分与出演边，
// 最后删除没有任何出演边的人物；整个过程可重复执行，第二次不会再删任何行
type CleanupService struct {
	repos *repository.Repositories
	cfg   *config.Config
}

// NewCleanupService 创建清洗服务
func NewCleanupService(repos *repository.Repositories, cfg *config.Config) *CleanupService {
	return &CleanupService{repos: repos, cfg: cfg}
}

// Clean 执行全部清洗规则
func (s *CleanupService) Clean() error {
	log.Println("[Cleanup] 开始清洗数据...")

	affected, err := s.repos.Movie.DeleteAdult()
	if err != nil {
		return fmt.Errorf("清除成人内容失败: %w", err)
	}
	log.Printf("[Cleanup] 已删除 %d 部成人内容影片", affected)

	affected, err = s.repos.Movie.DeleteByTitleType(retainedTitleTypes)
	if err != nil {
		return fmt.Errorf("按类别清洗失败: %w", err)
	}
	log.Printf("[Cleanup] 已删除 %d 部类别不在保留集合内的影片", affected)

	affected, err = s.repos.Movie.DeleteBelowVotes(s.cfg.MinVotes)
	if err != nil {
		return fmt.Errorf("按票数清洗失败: %w", err)
	}
	log.Printf("[Cleanup] 已删除 %d 部票数不足 %d 的影片", affected, s.cfg.MinVotes)

	affected, err = s.repos.Movie.DeleteByGenres(excludedGenres)
	if err != nil {
		return fmt.Errorf("按类型标签清洗失败: %w", err)
	}
	log.Printf("[Cleanup] 已删除 %d 部类型标签被排除的影片", affected)

	affected, err = s.repos.Person.DeleteIsolated()
	if err != nil {
		return fmt.Errorf("清除孤立人物失败: %w", err)
	}
	log.Printf("[Cleanup] 已删除 %d 个没有出演记录的人物", affected)

	log.Println("[Cleanup] 清洗完成")
	return nil
}
