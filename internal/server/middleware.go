package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/azaliaz/bookipedia/internal/logger"
)

func (s *Server) RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		log := logger.Get()
		rid := uuid.New().String()
		ctx.Set("rid", rid)
		start := time.Now()

		ctx.Next()

		log.Info().
			Str("rid", rid).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}
