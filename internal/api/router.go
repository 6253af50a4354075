package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/examgen/internal/questiongen"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svc *questiongen.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	h := NewHandler(svc, logger)
	questions := r.Group("/api/questions")
	{
		questions.POST("/generate", h.Generate)
		questions.POST("/regenerate", h.Regenerate)
	}

	return r
}
