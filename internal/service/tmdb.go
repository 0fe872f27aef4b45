package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/user/sixdegrees/internal/config"
	"github.com/user/sixdegrees/internal/utils"
	"golang.org/x/sync/singleflight"
)

// TMDBService 人物头像与影片海报获取服务
// 用数据库内部 ID 还原出外部标识符后走 TMDB 的 find 接口；
// 图片属于锦上添花，任何失败都只降级为空路径，不影响主流程
type TMDBService struct {
	cfg    *config.Config
	client *utils.HTTPClient
	group  singleflight.Group
}

// NewTMDBService 创建 TMDB 服务
func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		cfg: cfg,
		client: utils.NewHTTPClient(30*time.Second, map[string]string{
			"Authorization": "Bearer " + cfg.TMDBToken,
			"Content-Type":  "application/json",
		}),
	}
}

type tmdbFindResponse struct {
	MovieResults []struct {
		PosterPath string `json:"poster_path"`
	} `json:"movie_results"`
	PersonResults []struct {
		ProfilePath string `json:"profile_path"`
	} `json:"person_results"`
}

// PosterPath 下载影片海报，返回本地路径，找不到时返回空串
func (s *TMDBService) PosterPath(movieID int64) string {
	externalID := utils.FormatExternalID(movieID, "tt")
	path, err, _ := s.group.Do(externalID, func() (interface{}, error) {
		result, err := s.find(externalID)
		if err != nil {
			return "", err
		}
		if len(result.MovieResults) == 0 || result.MovieResults[0].PosterPath == "" {
			return "", nil
		}
		return s.downloadImage(externalID, result.MovieResults[0].PosterPath)
	})
	if err != nil {
		log.Printf("[TMDB] 获取海报失败 (%s): %v", externalID, err)
		return ""
	}
	return path.(string)
}

// PortraitPath 下载人物头像，返回本地路径，找不到时返回空串
func (s *TMDBService) PortraitPath(personID int64) string {
	externalID := utils.FormatExternalID(personID, "nm")
	path, err, _ := s.group.Do(externalID, func() (interface{}, error) {
		result, err := s.find(externalID)
		if err != nil {
			return "", err
		}
		if len(result.PersonResults) == 0 || result.PersonResults[0].ProfilePath == "" {
			return "", nil
		}
		return s.downloadImage(externalID, result.PersonResults[0].ProfilePath)
	})
	if err != nil {
		log.Printf("[TMDB] 获取头像失败 (%s): %v", externalID, err)
		return ""
	}
	return path.(string)
}

func (s *TMDBService) find(externalID string) (*tmdbFindResponse, error) {
	url := fmt.Sprintf("https://api.themoviedb.org/3/find/%s?external_source=imdb_id", externalID)
	var result tmdbFindResponse
	if err := s.client.GetJSON(url, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *TMDBService) downloadImage(externalID, imagePath string) (string, error) {
	if err := os.MkdirAll(s.cfg.ImageDir, 0o755); err != nil {
		return "", err
	}
	localPath := filepath.Join(s.cfg.ImageDir, externalID+".jpg")
	if err := s.client.Download("https://image.tmdb.org/t/p/original"+imagePath, localPath); err != nil {
		return "", err
	}
	return localPath, nil
}
