package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edubot/edubot-backend/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(nil),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	api := router.Group("/api/v1")
	{
		api.POST("/studysets", handler.CreateStudySet)
		api.GET("/studysets", handler.ListStudySets)
		api.GET("/studysets/:id", handler.GetStudySet)
		api.GET("/studysets/:id/related", handler.RelatedStudySets)
		api.GET("/studysets/:id/export", handler.ExportStudySet)

		api.POST("/documents", handler.UploadDocument)
		api.GET("/documents", handler.ListDocuments)
		api.GET("/documents/:id", handler.GetDocument)

		api.POST("/transcriptions", handler.CreateTranscription)
		api.POST("/narrations", handler.CreateNarration)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
