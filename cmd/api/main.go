package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/scheduly/booking-core/internal/config"
	dbpkg "github.com/scheduly/booking-core/internal/db"
	"github.com/scheduly/booking-core/internal/logging"
	"github.com/scheduly/booking-core/internal/routes"
)

func main() {

	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Env)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := routes.RegisterRoutes(r, db, cfg, logger); err != nil {
		logger.Fatal("failed to register routes", zap.Error(err))
	}

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
