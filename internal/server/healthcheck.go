package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	obslogger "github.com/smallbiznis/motorpool/internal/observability/logger"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func (s *Server) Healthcheck(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context(), readpref.Primary()); err != nil {
		obslogger.FromContext(c.Request.Context()).Warn("healthcheck ping failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "MongoDB connection failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "MongoDB connection successful"})
}
