package service

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/user/sixdegrees/internal/config"
	"github.com/user/sixdegrees/internal/utils"
)

// datasetFiles 四个非商用数据集文件与解压后的本地文件名
var datasetFiles = []struct {
	URL     string
	Archive string
	Target  string
}{
	{"https://datasets.imdbws.com/name.basics.tsv.gz", "name.basics.tsv.gz", "names.tsv"},
	{"https://datasets.imdbws.com/title.basics.tsv.gz", "title.basics.tsv.gz", "movies.tsv"},
	{"https://datasets.imdbws.com/title.principals.tsv.gz", "title.principals.tsv.gz", "stars.tsv"},
	{"https://datasets.imdbws.com/title.ratings.tsv.gz", "title.ratings.tsv.gz", "ratings.tsv"},
}

// DatasetService 数据集下载与解压服务
type DatasetService struct {
	cfg    *config.Config
	client *utils.HTTPClient
}

// NewDatasetService 创建下载服务
func NewDatasetService(cfg *config.Config) *DatasetService {
	return &DatasetService{
		cfg:    cfg,
		client: utils.NewHTTPClient(10*time.Minute, nil),
	}
}

// Fetch 下载并解压全部数据集文件到数据目录
func (s *DatasetService) Fetch() error {
	if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}

	for _, file := range datasetFiles {
		archivePath := filepath.Join(s.cfg.DataDir, file.Archive)
		targetPath := filepath.Join(s.cfg.DataDir, file.Target)

		log.Printf("[Dataset] 开始下载 %s ...", file.URL)
		if err := s.client.Download(file.URL, archivePath); err != nil {
			return fmt.Errorf("下载 %s 失败: %w", file.Archive, err)
		}
		log.Printf("[Dataset] %s 下载完成", file.Archive)

		if err := extractGzip(archivePath, targetPath); err != nil {
			return fmt.Errorf("解压 %s 失败: %w", file.Archive, err)
		}
		log.Printf("[Dataset] %s 解压完成", file.Target)
	}
	return nil
}

func extractGzip(archivePath, targetPath string) error {
	archive, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	reader, err := gzip.NewReader(archive)
	if err != nil {
		return err
	}
	defer reader.Close()

	target, err := os.Create(targetPath)
	if err != nil {
		return err
	}
	defer target.Close()

	_, err = io.Copy(target, reader)
	return err
}
