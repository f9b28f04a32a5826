package handlers

import (
	"strconv"
	"time"

	"github.com/kiyuzo/shop-tcg/internal/checkout"
	"github.com/kiyuzo/shop-tcg/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB       *gorm.DB
	Notifier checkout.Notifier
}

func NewProductHandler(db *gorm.DB, notifier checkout.Notifier) *ProductHandler {
	return &ProductHandler{DB: db, Notifier: notifier}
}

// ProductSummary is a catalog row joined to its lowest-priced listing.
type ProductSummary struct {
	ID          uint      `json:"id"`
	APICardID   *string   `json:"api_card_id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url"`
	SetName     string    `json:"set_name"`
	Rarity      string    `json:"rarity"`
	Game        string    `json:"game"`
	CreatedAt   time.Time `json:"created_at"`
	LowestPrice *int64    `json:"lowest_price"`
	TotalStock  int       `json:"total_stock"`
}

// GetAllProducts - GET /api/products
//
// Filters: game, rarity, set, condition, search, minPrice, maxPrice, inStock.
// Sorts: price-asc, price-desc, name-asc, name-desc, newest (default).
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "12"))
	if limit < 1 || limit > 100 {
		limit = 12
	}

	query := h.DB.Model(&models.Product{}).
		Select("products.*, MIN(inventory_listings.price) AS lowest_price, COALESCE(SUM(inventory_listings.stock_quantity), 0) AS total_stock").
		Joins("LEFT JOIN inventory_listings ON inventory_listings.product_id = products.id").
		Group("products.id")

	if game := c.Query("game"); game != "" {
		query = query.Where("products.game = ?", game)
	}
	if rarity := c.Query("rarity"); rarity != "" {
		query = query.Where("products.rarity = ?", rarity)
	}
	if set := c.Query("set"); set != "" {
		query = query.Where("products.set_name = ?", set)
	}
	if condition := c.Query("condition"); condition != "" {
		query = query.Where("inventory_listings.condition = ?", condition)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("products.name LIKE ?", "%"+search+"%")
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseInt(minPrice, 10, 64); err == nil {
			query = query.Having("MIN(inventory_listings.price) >= ?", v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseInt(maxPrice, 10, 64); err == nil {
			query = query.Having("MIN(inventory_listings.price) <= ?", v)
		}
	}
	if c.Query("inStock") == "true" {
		query = query.Having("COALESCE(SUM(inventory_listings.stock_quantity), 0) > 0")
	}

	// Count before ordering so the subquery stays valid.
	var total int64
	countQuery := query.Session(&gorm.Session{}).Select("products.id")
	if err := h.DB.Table("(?) AS filtered", countQuery).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not fetch products"})
	}

	switch c.Query("sort") {
	case "price-asc":
		query = query.Order("lowest_price ASC")
	case "price-desc":
		query = query.Order("lowest_price DESC")
	case "name-asc":
		query = query.Order("products.name ASC")
	case "name-desc":
		query = query.Order("products.name DESC")
	default:
		query = query.Order("products.created_at DESC")
	}

	var products []ProductSummary
	if err := query.Limit(limit).Offset((page - 1) * limit).Scan(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not fetch products"})
	}

	return c.JSON(fiber.Map{
		"data": products,
		"meta": models.NewPaginationMeta(page, limit, total),
	})
}

// GetProduct - GET /api/products/:id
//
// Returns the product with ALL its listings, cheapest first.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	var product models.Product
	if err := h.DB.Preload("Listings", func(db *gorm.DB) *gorm.DB {
		return db.Order("price ASC")
	}).First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}

	return c.JSON(fiber.Map{"data": product})
}

// GetGames - GET /api/products/games
func (h *ProductHandler) GetGames(c *fiber.Ctx) error {
	var games []string
	if err := h.DB.Model(&models.Product{}).
		Distinct().
		Order("game ASC").
		Pluck("game", &games).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not fetch games"})
	}
	return c.JSON(fiber.Map{"data": games})
}

// CreateProductRequest
type CreateProductRequest struct {
	APICardID *string `json:"api_card_id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	SetName   string  `json:"set_name"`
	Rarity    string  `json:"rarity"`
	Game      string  `json:"game"`
}

// CreateProduct - POST /api/products (Admin)
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Product name is required"})
	}

	product := models.Product{
		APICardID: req.APICardID,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		SetName:   req.SetName,
		Rarity:    req.Rarity,
		Game:      req.Game,
	}

	if err := h.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

// CreateListingRequest
type CreateListingRequest struct {
	Price     int64  `json:"price"`
	Stock     int    `json:"stock_quantity"`
	Condition string `json:"condition"`
}

// CreateListing - POST /api/products/:id/listings (Admin)
func (h *ProductHandler) CreateListing(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	var product models.Product
	if err := h.DB.First(&product, productID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}

	var req CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}
	if req.Price < 0 || req.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Price and stock must not be negative"})
	}
	if req.Condition == "" {
		req.Condition = models.ConditionNearMint
	}

	listing := models.InventoryListing{
		ProductID: product.ID,
		Price:     req.Price,
		Stock:     req.Stock,
		Condition: req.Condition,
	}

	if err := h.DB.Create(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not create listing"})
	}

	h.publish(listing)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Listing created", "data": listing})
}

// UpdateListingRequest carries optional fields; absent fields stay unchanged.
type UpdateListingRequest struct {
	Price *int64 `json:"price"`
	Stock *int   `json:"stock_quantity"`
}

// UpdateListing - PUT /api/listings/:id (Admin)
//
// Restock / reprice path. Stock changes are pushed to the live feed.
func (h *ProductHandler) UpdateListing(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid listing id"})
	}

	var listing models.InventoryListing
	if err := h.DB.First(&listing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Listing not found"})
	}

	var req UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if req.Price != nil {
		if *req.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Price must not be negative"})
		}
		listing.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Stock must not be negative"})
		}
		listing.Stock = *req.Stock
	}

	if err := h.DB.Save(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not update listing"})
	}

	h.publish(listing)
	return c.JSON(fiber.Map{"message": "Listing updated", "data": listing})
}

// DeleteProduct - DELETE /api/products/:id (Admin)
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}

	// Listings, cart lines, wishlist entries and reviews go with the product.
	// Order items keep their snapshots; their inventory reference is nulled
	// so history never points at a deleted listing.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		listingIDs := func() *gorm.DB {
			return tx.Model(&models.InventoryListing{}).Select("id").Where("product_id = ?", product.ID)
		}

		if err := tx.Model(&models.OrderItem{}).
			Where("inventory_id IN (?)", listingIDs()).
			Update("inventory_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("inventory_id IN (?)", listingIDs()).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.InventoryListing{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not delete product"})
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *ProductHandler) publish(listing models.InventoryListing) {
	if h.Notifier == nil {
		return
	}
	h.Notifier.PublishStockUpdate(checkout.StockUpdate{
		ProductID:   listing.ProductID,
		InventoryID: listing.ID,
		Condition:   listing.Condition,
		Price:       listing.Price,
		Stock:       listing.Stock,
	})
}
