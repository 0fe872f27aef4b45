package router

import (
	"github.com/gin-gonic/gin"
	"github.com/user/sixdegrees/internal/handler"
)

// RegisterRoutes 注册路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/resolve", h.ResolvePerson)
		api.GET("/path", h.FindPath)
		api.GET("/person/:id/image", h.PersonImage)
		api.GET("/movie/:id/poster", h.MoviePoster)
	}
}
