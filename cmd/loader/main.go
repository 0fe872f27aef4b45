package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/user/sixdegrees/internal/config"
	"github.com/user/sixdegrees/internal/repository"
	"github.com/user/sixdegrees/internal/service"
)

func main() {
	fetch := flag.Bool("fetch", false, "先下载并解压最新数据集")
	flag.Parse()

	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化数据库
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	repos := repository.NewRepositories(db)

	// 可选：先取最新数据集
	if *fetch {
		if err := service.NewDatasetService(cfg).Fetch(); err != nil {
			log.Fatalf("获取数据集失败: %v", err)
		}
	}

	// 全量重建：导入 -> 清洗 -> 建索引
	loader := service.NewLoaderService(repos, cfg)
	reports, err := loader.Rebuild()
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}
	for _, report := range reports {
		log.Printf("[Loader] %s: 插入 %d 条，跳过 %d 条", report.Table, report.Inserted, report.Skipped)
	}

	cleaner := service.NewCleanupService(repos, cfg)
	if err := cleaner.Clean(); err != nil {
		log.Fatalf("清洗失败: %v", err)
	}

	if err := repos.Schema.CreateIndexes(); err != nil {
		log.Fatalf("建索引失败: %v", err)
	}

	log.Println("[Loader] 全量重建完成")
}
