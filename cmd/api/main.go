package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barberflow/agenda-api/internal/cache"
	"github.com/barberflow/agenda-api/internal/config"
	dbpkg "github.com/barberflow/agenda-api/internal/db"
	"github.com/barberflow/agenda-api/internal/logging"
	"github.com/barberflow/agenda-api/internal/middleware"
	"github.com/barberflow/agenda-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logging.New(cfg)
	defer log.Sync() //nolint:errcheck

	db := dbpkg.NewDB(cfg, log)
	rdb := cache.NewRedis(cfg, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
