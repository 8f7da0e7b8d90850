package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-user-registry/internal/transport/http/handler"
	mdw "go-user-registry/internal/transport/http/middleware"
)

func NewAPIEngine(l *zap.Logger, h *handler.UserHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/users", h.List)
		api.POST("/users", h.Register)
		api.POST("/register", h.Register) // 旧注册路径，语义与 /users 完全一致
		api.POST("/login", h.Login)
		api.DELETE("/users/:id", h.Delete)
		api.PUT("/users/:id/password", h.ChangePassword)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return r
}
