package storage

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("storage",
	fx.Provide(func(db *gorm.DB) (Store, error) {
		return NewGormStore(db)
	}),
)
