package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/sixdegrees/internal/config"
	"github.com/user/sixdegrees/internal/model"
	"github.com/user/sixdegrees/internal/repository"
	"github.com/user/sixdegrees/internal/service"
	"github.com/user/sixdegrees/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos    *repository.Repositories
	Config   *config.Config
	Resolver *service.ResolverService
	Path     *service.PathService
	Hydrator *service.HydrateService
	TMDB     *service.TMDBService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:    repos,
		Config:   cfg,
		Resolver: service.NewResolverService(repos.Person, repos.Movie),
		Path:     service.NewPathService(repos.Star, cfg.MaxNodes, cfg.ContactsCache),
		Hydrator: service.NewHydrateService(repos.Star),
		TMDB:     service.NewTMDBService(cfg),
	}
}

// PathResult 路径查询响应
type PathResult struct {
	Found bool             `json:"found"`
	Path  []int64          `json:"path,omitempty"`
	Hops  int              `json:"hops"`
	Steps []model.PathStep `json:"steps,omitempty"`
}

// ResolvePerson 人物解析接口
// GET /api/resolve?q=输入（数字 ID 或姓名片段）
func (h *Handler) ResolvePerson(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.BadRequest(c, "缺少查询参数 q")
		return
	}

	resolution, err := h.Resolver.Resolve(query)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Success(c, resolution)
}

// FindPath 最短路径查询接口
// GET /api/path?from=人物ID&to=人物ID
func (h *Handler) FindPath(c *gin.Context) {
	from, err := strconv.ParseInt(c.Query("from"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "参数 from 必须是人物 ID")
		return
	}
	to, err := strconv.ParseInt(c.Query("to"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "参数 to 必须是人物 ID")
		return
	}

	for _, id := range []int64{from, to} {
		person, err := h.Repos.Person.FindByID(id)
		if err != nil {
			utils.InternalServerError(c, err.Error())
			return
		}
		if person == nil {
			utils.NotFound(c, "人物不存在: "+strconv.FormatInt(id, 10))
			return
		}
	}

	path, err := h.Path.FindPath(from, to)
	if errors.Is(err, service.ErrNoPath) {
		utils.Success(c, PathResult{Found: false})
		return
	}
	if err != nil {
		// 熔断与其它搜索故障一样向上暴露，与"没有路径"严格区分
		utils.InternalServerError(c, err.Error())
		return
	}

	steps, err := h.Hydrator.Hydrate(path)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Success(c, PathResult{
		Found: true,
		Path:  path,
		Hops:  len(path) - 1,
		Steps: steps,
	})
}

// PersonImage 人物头像接口
// GET /api/person/:id/image
func (h *Handler) PersonImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "非法的人物 ID")
		return
	}
	path := h.TMDB.PortraitPath(id)
	if path == "" {
		utils.NotFound(c, "没有可用的头像")
		return
	}
	c.File(path)
}

// MoviePoster 影片海报接口
// GET /api/movie/:id/poster
func (h *Handler) MoviePoster(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "非法的影片 ID")
		return
	}
	path := h.TMDB.PosterPath(id)
	if path == "" {
		utils.NotFound(c, "没有可用的海报")
		return
	}
	c.File(path)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	utils.Success(c, gin.H{"status": "ok"})
}
