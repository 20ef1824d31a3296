package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wichananm65/shop-admin-console/internal/catalog"
	"github.com/wichananm65/shop-admin-console/internal/config"
	"github.com/wichananm65/shop-admin-console/internal/console"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	svc, imageBase := buildCatalog(cfg, log)

	app := fiber.New()
	setupCORS(app)

	handler := console.NewHandler(svc, imageBase, log)
	handler.RegisterRoutes(app)

	log.Info("starting admin console",
		zap.String("addr", cfg.Addr),
		zap.String("catalogMode", cfg.CatalogMode),
		zap.String("catalogBaseUrl", cfg.CatalogBaseURL),
	)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func buildCatalog(cfg config.Config, log *zap.Logger) (catalog.Service, string) {
	if cfg.CatalogMode == "inmemory" {
		// local development without a running catalog service
		return catalog.NewInMemory(sampleCategories, nil), ""
	}
	client := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, log)
	return client, cfg.CatalogBaseURL
}

var sampleCategories = []catalog.Category{
	{CategoryID: "cat-electronics", Title: "Electronics"},
	{CategoryID: "cat-accessories", Title: "Accessories"},
	{CategoryID: "cat-home", Title: "Home Appliances"},
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))
}
