package cart

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

func seedListing(t *testing.T, db *gorm.DB, price int64, stock int, condition string) models.InventoryListing {
	t.Helper()
	p := models.Product{Name: "Charizard", Game: "Pokemon"}
	require.NoError(t, db.Create(&p).Error)
	l := models.InventoryListing{ProductID: p.ID, Price: price, Stock: stock, Condition: condition}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func TestAddItem_MergesSameListing(t *testing.T) {
	db := newTestDB(t)
	listing := seedListing(t, db, 1000, 10, models.ConditionNearMint)
	svc := NewService(db)

	first, err := svc.AddItem(1, listing.ID, 2)
	require.NoError(t, err)
	second, err := svc.AddItem(1, listing.ID, 3)
	require.NoError(t, err)

	// Same line merged, not duplicated
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	items, err := svc.Items(1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddItem_DifferentConditionsStaySeparate(t *testing.T) {
	db := newTestDB(t)
	p := models.Product{Name: "Blue-Eyes White Dragon", Game: "Yu-Gi-Oh!"}
	require.NoError(t, db.Create(&p).Error)
	mint := models.InventoryListing{ProductID: p.ID, Price: 800, Stock: 3, Condition: models.ConditionMint}
	played := models.InventoryListing{ProductID: p.ID, Price: 500, Stock: 3, Condition: models.ConditionPlayed}
	require.NoError(t, db.Create(&mint).Error)
	require.NoError(t, db.Create(&played).Error)

	svc := NewService(db)
	_, err := svc.AddItem(1, mint.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(1, played.ID, 1)
	require.NoError(t, err)

	items, err := svc.Items(1)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAddItem_ClampsToStockCeiling(t *testing.T) {
	db := newTestDB(t)
	listing := seedListing(t, db, 1000, 4, models.ConditionNearMint)
	svc := NewService(db)

	item, err := svc.AddItem(1, listing.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	// Merge would exceed stock; stays at the ceiling.
	item, err = svc.AddItem(1, listing.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
}

func TestAddItem_OutOfStock(t *testing.T) {
	db := newTestDB(t)
	listing := seedListing(t, db, 1000, 0, models.ConditionNearMint)
	svc := NewService(db)

	_, err := svc.AddItem(1, listing.ID, 1)
	assert.True(t, errors.Is(err, ErrOutOfStock))
}

func TestUpdateQuantity_ClampsAndRemoves(t *testing.T) {
	db := newTestDB(t)
	listing := seedListing(t, db, 1000, 5, models.ConditionNearMint)
	svc := NewService(db)

	item, err := svc.AddItem(1, listing.ID, 2)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(1, item.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	removed, err := svc.UpdateQuantity(1, item.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, removed)

	items, err := svc.Items(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateQuantity_OtherUsersItemInvisible(t *testing.T) {
	db := newTestDB(t)
	listing := seedListing(t, db, 1000, 5, models.ConditionNearMint)
	svc := NewService(db)

	item, err := svc.AddItem(1, listing.ID, 2)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(2, item.ID, 1)
	assert.True(t, errors.Is(err, ErrItemNotFound))
}

func TestTotalPrice(t *testing.T) {
	db := newTestDB(t)
	p := models.Product{Name: "Card", Game: "MTG"}
	require.NoError(t, db.Create(&p).Error)
	a := models.InventoryListing{ProductID: p.ID, Price: 1000, Stock: 10, Condition: models.ConditionNearMint}
	b := models.InventoryListing{ProductID: p.ID, Price: 250, Stock: 10, Condition: models.ConditionPlayed}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	svc := NewService(db)
	_, err := svc.AddItem(1, a.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(1, b.ID, 4)
	require.NoError(t, err)

	total, err := svc.TotalPrice(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2*1000+4*250), total)
}

func TestClear(t *testing.T) {
	db := newTestDB(t)
	listing := seedListing(t, db, 1000, 5, models.ConditionNearMint)
	svc := NewService(db)

	_, err := svc.AddItem(1, listing.ID, 2)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(1))

	items, err := svc.Items(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
