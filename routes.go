package main

import (
	"github.com/kiyuzo/shop-tcg/config"
	"github.com/kiyuzo/shop-tcg/handlers"
	"github.com/kiyuzo/shop-tcg/internal/cart"
	"github.com/kiyuzo/shop-tcg/internal/checkout"
	"github.com/kiyuzo/shop-tcg/internal/live"
	"github.com/kiyuzo/shop-tcg/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func setupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, engine *checkout.Engine, cartSvc *cart.Service, hub *live.Hub) {
	authHandler := handlers.NewAuthHandler(db)
	productHandler := handlers.NewProductHandler(db, hub)
	cartHandler := handlers.NewCartHandler(cartSvc)
	wishlistHandler := handlers.NewWishlistHandler(db)
	orderHandler := handlers.NewOrderHandler(db, engine, cartSvc)
	reviewHandler := handlers.NewReviewHandler(db)
	newsletterHandler := handlers.NewNewsletterHandler(db)
	chatHandler := handlers.NewChatHandler(cfg)
	uploadHandler := handlers.NewUploadHandler()
	liveHandler := handlers.NewLiveHandler(hub)

	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.Protect, authHandler.Me)

	// Catalog (public reads, admin writes)
	api.Get("/products", productHandler.GetAllProducts)
	api.Get("/products/games", productHandler.GetGames)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Get("/products/:id/reviews", reviewHandler.GetProductReviews)
	api.Post("/products", middleware.Protect, middleware.AdminOnly, productHandler.CreateProduct)
	api.Post("/products/:id/listings", middleware.Protect, middleware.AdminOnly, productHandler.CreateListing)
	api.Put("/listings/:id", middleware.Protect, middleware.AdminOnly, productHandler.UpdateListing)
	api.Delete("/products/:id", middleware.Protect, middleware.AdminOnly, productHandler.DeleteProduct)

	// Cart
	api.Get("/cart", middleware.Protect, cartHandler.GetCart)
	api.Post("/cart/items", middleware.Protect, cartHandler.AddItem)
	api.Put("/cart/items/:id", middleware.Protect, cartHandler.UpdateItem)
	api.Delete("/cart/items/:id", middleware.Protect, cartHandler.RemoveItem)
	api.Delete("/cart", middleware.Protect, cartHandler.ClearCart)

	// Wishlist
	api.Get("/wishlist", middleware.Protect, wishlistHandler.GetWishlist)
	api.Post("/wishlist", middleware.Protect, wishlistHandler.AddItem)
	api.Delete("/wishlist/:productId", middleware.Protect, wishlistHandler.RemoveItem)

	// Orders
	api.Post("/orders", middleware.Protect, orderHandler.CreateOrder)
	api.Get("/orders/user/my-orders", middleware.Protect, orderHandler.GetMyOrders)
	api.Get("/orders/:id", middleware.Protect, orderHandler.GetOrder)
	api.Put("/orders/:id/status", middleware.Protect, middleware.AdminOnly, orderHandler.UpdateOrderStatus)

	// Reviews
	api.Post("/reviews", middleware.Protect, reviewHandler.CreateReview)

	// Newsletter
	api.Post("/newsletter/subscribe", newsletterHandler.Subscribe)

	// AI chat widget
	api.Post("/chat", chatHandler.Chat)

	// Upload
	api.Post("/upload", middleware.Protect, middleware.AdminOnly, uploadHandler.UploadImage)

	// Static card images
	app.Static("/uploads", "./uploads")

	// Live stock update feed
	app.Use("/ws/stock", liveHandler.WebSocketUpgradeMiddleware)
	app.Get("/ws/stock", liveHandler.Handler())
}
