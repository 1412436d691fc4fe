package main

import (
	"log"

	"gummy-store/config"
	_ "gummy-store/docs"
	"gummy-store/middleware"
	"gummy-store/models"
	"gummy-store/routes"

	"github.com/gin-gonic/gin"
)

// @title Gummy Store API
// @version 1.0
// @description Storefront backend: cart, checkout with PIX or card, review likes and the store assistant.
// @BasePath /
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	models.InitRedis(config.AppConfig.Redis())
	defer models.CloseRedis()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, config.DB)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
