// Package testutil builds in-memory databases and fixtures for checkout tests.
package testutil

import (
	"testing"

	"github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite("")
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(gdb))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func NewRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: NewDB(t)}
}

// SeedProduct creates a visible product priced in VND with the given stock.
func SeedProduct(t *testing.T, r *repo.GormRepo, name string, price int64, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:        name,
		PriceAmount: decimal.NewFromInt(price),
		Currency:    "VND",
		Visible:     true,
	}
	require.NoError(t, r.DB.Create(p).Error)
	require.NoError(t, r.DB.Create(&models.InventoryRecord{ProductID: p.ID, Available: stock}).Error)
	return p
}

func Stock(t *testing.T, r *repo.GormRepo, productID uint) int {
	t.Helper()

	var rec models.InventoryRecord
	require.NoError(t, r.DB.Where("product_id = ?", productID).First(&rec).Error)
	return rec.Available
}

// SeedCart puts lines into the customer's cart, bypassing stock checks.
func SeedCart(t *testing.T, r *repo.GormRepo, customerID uint, lines ...models.CartLine) {
	t.Helper()

	cart := models.Cart{CustomerID: customerID}
	require.NoError(t, r.DB.Where("customer_id = ?", customerID).FirstOrCreate(&cart).Error)
	for _, l := range lines {
		l.CartID = cart.ID
		require.NoError(t, r.DB.Create(&l).Error)
	}
}

func CartLines(t *testing.T, r *repo.GormRepo, customerID uint) []models.CartLine {
	t.Helper()

	var lines []models.CartLine
	require.NoError(t, r.DB.
		Joins("JOIN carts ON carts.id = cart_lines.cart_id").
		Where("carts.customer_id = ?", customerID).
		Order("cart_lines.id ASC").
		Find(&lines).Error)
	return lines
}

func CountOrders(t *testing.T, r *repo.GormRepo) int64 {
	t.Helper()

	var n int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&n).Error)
	return n
}
