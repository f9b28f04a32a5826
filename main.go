package main

import (
	"log"

	"github.com/kiyuzo/shop-tcg/config"
	"github.com/kiyuzo/shop-tcg/internal/cart"
	"github.com/kiyuzo/shop-tcg/internal/checkout"
	"github.com/kiyuzo/shop-tcg/internal/live"
	"github.com/kiyuzo/shop-tcg/middleware"
	"github.com/kiyuzo/shop-tcg/models"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.LoadConfig()

	db := config.ConnectDatabase(cfg)
	if cfg.Reset {
		if err := config.ResetAndMigrate(db); err != nil {
			log.Fatalf("Database reset failed: %v", err)
		}
	} else {
		if err := config.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		if cfg.Seed {
			config.SeedUsers(db)
			config.SeedCatalog(db)
		}
	}

	hub := live.NewHub()
	go hub.Run()

	engine := checkout.NewEngine(db, hub)
	cartSvc := cart.NewService(db)

	app := fiber.New(fiber.Config{
		AppName:      "KON TCG Store",
		ServerHeader: "KON TCG Store Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(models.SuccessResponse("API is healthy", nil, nil))
	})

	setupRoutes(app, db, cfg, engine, cartSvc, hub)

	middleware.SetupErrorHandler(app)

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
