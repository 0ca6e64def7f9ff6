package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/logger"
	"backend/internal/middleware"
	"backend/internal/vision"
)

func main() {
	config.Load()

	zlog, err := logger.New(config.AppEnv.LogLevel, os.Getenv("APP_ENV") == "development")
	if err != nil {
		log.Fatal("failed to initialize logger:", err)
	}
	defer zlog.Sync()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		zlog.Fatalw("mongodb connect failed", "error", err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			zlog.Warnw("mongodb disconnect failed", "error", err)
		}
	}()

	db := client.Database(config.AppEnv.DBName)
	zlog.Infow("mongodb connected", "db", db.Name())

	if err := database.EnsureInvoiceIndexes(db, handlers.InvoiceCollection); err != nil {
		zlog.Warnw("invoice index warning", "error", err)
	}

	visionClient := vision.NewClient(
		config.AppEnv.MistralAPIKey,
		config.AppEnv.VisionModel,
		config.AppEnv.VisionBaseURL,
		config.AppEnv.AuditDir,
		config.AppEnv.VisionTimeout,
		zlog,
	)

	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/", handlers.Home())
	r.GET("/health", handlers.Health())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/analyze", handlers.AnalyzeInvoice(db, visionClient, config.AppEnv.TempUploadDir, zlog))
		api.GET("/products", handlers.GetProducts(db, zlog))
		api.POST("/products", handlers.CreateProduct(db, zlog))
		api.GET("/products/stats", handlers.GetProductStats(db, zlog))
		api.DELETE("/products/:product_id", handlers.DeleteProduct(db, zlog))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		zlog.Fatalw("server stopped", "error", err)
	}
}
