package main

import (
	"github.com/circlet-app/backend/internal/router"
	"github.com/circlet-app/backend/pkg/config"
	"github.com/circlet-app/backend/pkg/database"
	"github.com/circlet-app/backend/pkg/logger"
	circletredis "github.com/circlet-app/backend/pkg/redis"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg := config.Load()

	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database: " + err.Error())
	}
	defer database.CloseDB(db)

	// Redis only backs the unread-count cache; the service runs
	// without it.
	var unreadCache *circletredis.UnreadCache
	if cfg.Redis.Enabled {
		client, err := circletredis.NewClient(cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis: " + err.Error())
		}
		defer client.Close()
		unreadCache = circletredis.NewUnreadCache(client)
	}

	e := echo.New()
	router.SetupMiddleware(e)
	router.SetupRoutes(e, db, cfg, unreadCache)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Logger.Fatal(e.Start(":" + cfg.Server.Port))
}
