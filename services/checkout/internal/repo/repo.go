package repo

import (
	"context"

	"github.com/Skotchmaster/storefront/services/checkout/internal/models"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Transaction runs fn against a repo bound to one database transaction. Any
// error returned by fn rolls back every write made through tx.
func (r *GormRepo) Transaction(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&GormRepo{DB: db})
	})
}
