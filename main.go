package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/config"
	"github.com/rkhasan/dhakastore-api/models"
	"github.com/rkhasan/dhakastore-api/routes"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("starting dhakastore API")

	cfg := config.Load()
	db := initDatabase(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.Category{},
		&models.Product{},
		&models.Size{},
		&models.Color{},
		&models.Image{},
		&models.Cart{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		logrus.WithError(err).Fatal("auto-migrate failed")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, cfg)

	logrus.WithField("port", cfg.Port).Info("server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}

func initDatabase(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	return db
}
