package entity

import (
	"context"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"gorm.io/gorm"
)

type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&OAuth2{},
		&Category{},
		&Nominee{},
		&Ballot{},
		&Vote{},
	)
}
