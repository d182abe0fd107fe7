package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Health reports process liveness and Redis connectivity.
func Health(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		redisStatus := "ok"
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "down"
		}

		status := http.StatusOK
		if redisStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status": "ok",
			"redis":  redisStatus,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
