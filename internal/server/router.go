package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"avaliacoes/internal/feed"
	"avaliacoes/internal/middleware"
	"avaliacoes/internal/reviews"
	"avaliacoes/pkg/config"
	"avaliacoes/pkg/logger"
)

type Deps struct {
	DB      *sql.DB
	Reviews *reviews.Repo
	Feed    *feed.Hub
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS))
	router.Use(middleware.BodyLimit(cfg.BodyLimitBytes))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := deps.DB.PingContext(ctx); err != nil {
			logger.WithFields(logrus.Fields{
				"op":         "ready",
				"request_id": middleware.GetRequestID(c),
			}).Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"subscribers": deps.Feed.Count(),
		})
	})

	router.GET("/ws", feed.WSHandler(deps.Feed))

	reviewHandler := reviews.NewHandler(deps.Reviews, deps.Feed)
	reviewHandler.RegisterRoutes(router.Group("/api"))

	router.NoRoute(spaHandler(cfg.StaticDir))

	return router
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	all := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			all = true
		}
	}
	if all {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cc
}
