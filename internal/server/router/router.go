package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(ref *handlers.ReferenceHandler, sessions *handlers.SessionHandler, eval *handlers.EvaluationHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	reference := r.Group("/reference")
	{
		reference.POST("/upload", ref.Upload)
		reference.POST("/reload", ref.Reload)
		reference.GET("/status", ref.Status)
		reference.GET("/foods", ref.SearchFoods)
	}

	factors := r.Group("/factors")
	{
		factors.GET("", ref.ListFactors)
		factors.POST("/override", ref.UploadFactors)
	}

	r.GET("/akg/groups", eval.Groups)

	s := r.Group("/sessions")
	{
		s.POST("", sessions.Create)
		s.GET("/:id", sessions.Get)
		s.DELETE("/:id", sessions.Delete)

		s.POST("/:id/menus", sessions.AddMenu)
		s.PUT("/:id/menus/:menu", sessions.RenameMenu)
		s.DELETE("/:id/menus/:menu", sessions.DeleteMenu)

		s.POST("/:id/menus/:menu/ingredients", sessions.AddIngredient)
		s.PUT("/:id/menus/:menu/ingredients/:position", sessions.ReplaceIngredient)
		s.DELETE("/:id/menus/:menu/ingredients/:position", sessions.DeleteIngredient)

		s.GET("/:id/compute", eval.Compute)
		s.POST("/:id/evaluate", eval.Evaluate)
		s.POST("/:id/export", eval.Export)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
