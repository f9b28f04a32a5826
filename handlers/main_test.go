package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/kiyuzo/shop-tcg/config"
	"github.com/kiyuzo/shop-tcg/internal/cart"
	"github.com/kiyuzo/shop-tcg/internal/checkout"
	"github.com/kiyuzo/shop-tcg/middleware"
	"github.com/kiyuzo/shop-tcg/models"
	"github.com/kiyuzo/shop-tcg/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestApp wires the API routes against an in-memory database, mirroring
// the production route table.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "shop.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	engine := checkout.NewEngine(db, nil)
	cartSvc := cart.NewService(db)

	authHandler := NewAuthHandler(db)
	productHandler := NewProductHandler(db, nil)
	cartHandler := NewCartHandler(cartSvc)
	wishlistHandler := NewWishlistHandler(db)
	orderHandler := NewOrderHandler(db, engine, cartSvc)
	reviewHandler := NewReviewHandler(db)
	newsletterHandler := NewNewsletterHandler(db)

	app := fiber.New()
	api := app.Group("/api")

	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/me", middleware.Protect, authHandler.Me)

	api.Get("/products", productHandler.GetAllProducts)
	api.Get("/products/games", productHandler.GetGames)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Get("/products/:id/reviews", reviewHandler.GetProductReviews)
	api.Post("/products", middleware.Protect, middleware.AdminOnly, productHandler.CreateProduct)
	api.Post("/products/:id/listings", middleware.Protect, middleware.AdminOnly, productHandler.CreateListing)
	api.Put("/listings/:id", middleware.Protect, middleware.AdminOnly, productHandler.UpdateListing)
	api.Delete("/products/:id", middleware.Protect, middleware.AdminOnly, productHandler.DeleteProduct)

	api.Get("/cart", middleware.Protect, cartHandler.GetCart)
	api.Post("/cart/items", middleware.Protect, cartHandler.AddItem)

	api.Get("/wishlist", middleware.Protect, wishlistHandler.GetWishlist)
	api.Post("/wishlist", middleware.Protect, wishlistHandler.AddItem)
	api.Delete("/wishlist/:productId", middleware.Protect, wishlistHandler.RemoveItem)

	api.Post("/orders", middleware.Protect, orderHandler.CreateOrder)
	api.Get("/orders/user/my-orders", middleware.Protect, orderHandler.GetMyOrders)
	api.Get("/orders/:id", middleware.Protect, orderHandler.GetOrder)
	api.Put("/orders/:id/status", middleware.Protect, middleware.AdminOnly, orderHandler.UpdateOrderStatus)

	api.Post("/reviews", middleware.Protect, reviewHandler.CreateReview)
	api.Post("/newsletter/subscribe", newsletterHandler.Subscribe)

	return app, db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) (models.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return user, token
}

func seedProductWithListing(t *testing.T, db *gorm.DB, name, game string, price int64, stock int) (models.Product, models.InventoryListing) {
	t.Helper()
	p := models.Product{Name: name, Game: game}
	require.NoError(t, db.Create(&p).Error)
	l := models.InventoryListing{ProductID: p.ID, Price: price, Stock: stock, Condition: models.ConditionNearMint}
	require.NoError(t, db.Create(&l).Error)
	return p, l
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
