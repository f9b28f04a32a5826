package checkout

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/kiyuzo/shop-tcg/config"
	"github.com/kiyuzo/shop-tcg/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "shop.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name, game string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Game: game, SetName: "Test Set", Rarity: "Rare"}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func createListing(t *testing.T, db *gorm.DB, productID uint, price int64, stock int, condition string) models.InventoryListing {
	t.Helper()
	l := models.InventoryListing{ProductID: productID, Price: price, Stock: stock, Condition: condition}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func testAddress() ShippingAddress {
	return ShippingAddress{
		Street:  "Jl. Sudirman 1",
		City:    "Jakarta",
		State:   "DKI Jakarta",
		ZipCode: "10110",
		Country: "Indonesia",
	}
}

type recordingNotifier struct {
	updates []StockUpdate
}

func (n *recordingNotifier) PublishStockUpdate(u StockUpdate) {
	n.updates = append(n.updates, u)
}

func TestPlaceOrder_Scenario(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Charizard", "Pokemon")
	listing := createListing(t, db, product.ID, 1000, 5, models.ConditionNearMint)

	engine := NewEngine(db, nil)
	order, err := engine.PlaceOrder(1, []LineRequest{{ProductID: product.ID, Quantity: 2}}, testAddress(), 2000, "transfer")
	require.NoError(t, err)

	assert.Equal(t, uint(1), order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2000), order.TotalPrice)
	assert.Equal(t, "Jl. Sudirman 1, Jakarta, DKI Jakarta, 10110, Indonesia", order.ShippingAddress)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "Charizard", item.ProductName)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, int64(1000), item.PriceAtPurchase)
	require.NotNil(t, item.InventoryID)
	assert.Equal(t, listing.ID, *item.InventoryID)

	var after models.InventoryListing
	require.NoError(t, db.First(&after, listing.ID).Error)
	assert.Equal(t, 3, after.Stock)
}

func TestPlaceOrder_Atomicity(t *testing.T) {
	db := newTestDB(t)
	pikachu := createProduct(t, db, "Pikachu", "Pokemon")
	zoro := createProduct(t, db, "Roronoa Zoro", "One Piece")
	okListing := createListing(t, db, pikachu.ID, 500, 10, models.ConditionNearMint)
	shortListing := createListing(t, db, zoro.ID, 800, 1, models.ConditionMint)

	engine := NewEngine(db, nil)
	_, err := engine.PlaceOrder(1, []LineRequest{
		{ProductID: pikachu.ID, Quantity: 3},
		{ProductID: zoro.ID, Quantity: 2}, // exceeds stock, must abort everything
	}, testAddress(), 2600, "transfer")

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Roronoa Zoro", stockErr.ProductName)
	assert.Equal(t, 2, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	var first, second models.InventoryListing
	require.NoError(t, db.First(&first, okListing.ID).Error)
	require.NoError(t, db.First(&second, shortListing.ID).Error)
	assert.Equal(t, 10, first.Stock)
	assert.Equal(t, 1, second.Stock)
}

func TestPlaceOrder_CheapestListingWins(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Blue-Eyes White Dragon", "Yu-Gi-Oh!")
	cheap := createListing(t, db, product.ID, 500, 5, models.ConditionPlayed)
	expensive := createListing(t, db, product.ID, 800, 5, models.ConditionNearMint)

	engine := NewEngine(db, nil)
	order, err := engine.PlaceOrder(1, []LineRequest{{ProductID: product.ID, Quantity: 1}}, testAddress(), 500, "")
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	require.NotNil(t, order.Items[0].InventoryID)
	assert.Equal(t, cheap.ID, *order.Items[0].InventoryID)
	assert.Equal(t, int64(500), order.Items[0].PriceAtPurchase)

	var cheapAfter, expensiveAfter models.InventoryListing
	require.NoError(t, db.First(&cheapAfter, cheap.ID).Error)
	require.NoError(t, db.First(&expensiveAfter, expensive.ID).Error)
	assert.Equal(t, 4, cheapAfter.Stock)
	assert.Equal(t, 5, expensiveAfter.Stock)
}

func TestPlaceOrder_StockConservation(t *testing.T) {
	db := newTestDB(t)
	a := createProduct(t, db, "Card A", "MTG")
	b := createProduct(t, db, "Card B", "MTG")
	la := createListing(t, db, a.ID, 100, 7, models.ConditionNearMint)
	lb := createListing(t, db, b.ID, 250, 4, models.ConditionNearMint)

	engine := NewEngine(db, nil)
	lines := []LineRequest{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 3},
	}
	order, err := engine.PlaceOrder(1, lines, testAddress(), 950, "transfer")
	require.NoError(t, err)

	requested := 0
	for _, l := range lines {
		requested += l.Quantity
	}
	got := 0
	for _, item := range order.Items {
		got += item.Quantity
	}
	assert.Equal(t, requested, got)

	var laAfter, lbAfter models.InventoryListing
	require.NoError(t, db.First(&laAfter, la.ID).Error)
	require.NoError(t, db.First(&lbAfter, lb.ID).Error)
	assert.Equal(t, 5, laAfter.Stock)
	assert.Equal(t, 1, lbAfter.Stock)
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	db := newTestDB(t)
	// Product exists but has no listing: still not purchasable.
	bare := createProduct(t, db, "Unlisted Card", "MTG")

	engine := NewEngine(db, nil)
	_, err := engine.PlaceOrder(1, []LineRequest{{ProductID: bare.ID, Quantity: 1}}, testAddress(), 100, "")

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, bare.ID, notFound.ProductID)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	_, err := engine.PlaceOrder(1, nil, testAddress(), 0, "")
	assert.True(t, errors.Is(err, ErrEmptyCart))
}

func TestPlaceOrder_InvalidQuantity(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Card", "MTG")
	createListing(t, db, product.ID, 100, 5, models.ConditionNearMint)

	engine := NewEngine(db, nil)
	_, err := engine.PlaceOrder(1, []LineRequest{{ProductID: product.ID, Quantity: 0}}, testAddress(), 0, "")
	assert.True(t, errors.Is(err, ErrInvalidQuantity))
}

func TestPlaceOrder_PriceSnapshotSurvivesReprice(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Black Lotus", "MTG")
	listing := createListing(t, db, product.ID, 1000, 5, models.ConditionLightlyPlayed)

	engine := NewEngine(db, nil)
	order, err := engine.PlaceOrder(1, []LineRequest{{ProductID: product.ID, Quantity: 1}}, testAddress(), 1000, "")
	require.NoError(t, err)

	// Reprice the listing after purchase; history must not move.
	require.NoError(t, db.Model(&models.InventoryListing{}).Where("id = ?", listing.ID).Update("price", 9999).Error)

	var reread models.Order
	require.NoError(t, db.Preload("Items").First(&reread, order.ID).Error)
	require.Len(t, reread.Items, 1)
	assert.Equal(t, int64(1000), reread.Items[0].PriceAtPurchase)
}

func TestPlaceOrder_PublishesStockUpdates(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Charizard", "Pokemon")
	listing := createListing(t, db, product.ID, 1000, 5, models.ConditionNearMint)

	notifier := &recordingNotifier{}
	engine := NewEngine(db, notifier)
	_, err := engine.PlaceOrder(1, []LineRequest{{ProductID: product.ID, Quantity: 2}}, testAddress(), 2000, "")
	require.NoError(t, err)

	require.Len(t, notifier.updates, 1)
	update := notifier.updates[0]
	assert.Equal(t, listing.ID, update.InventoryID)
	assert.Equal(t, product.ID, update.ProductID)
	assert.Equal(t, 3, update.Stock)
	assert.Equal(t, int64(1000), update.Price)
}

func TestShippingAddress_Validate(t *testing.T) {
	addr := testAddress()
	assert.NoError(t, addr.Validate())

	addr.City = "  "
	err := addr.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "city")
}
