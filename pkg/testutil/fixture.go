package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
)

var (
	// Users
	User1 = &entity.User{
		Base:  entity.Base{ID: "user1"},
		Name:  "Admin",
		Email: "admin@example.com",
		Role:  entity.RoleSuperAdmin,
	}

	User2 = &entity.User{
		Base:      entity.Base{ID: "user2"},
		Name:      "Alice",
		Email:     "alice@example.com",
		AvatarURL: "https://cdn.example.com/alice.png",
		Role:      entity.RoleUser,
	}

	User3 = &entity.User{
		Base:  entity.Base{ID: "user3"},
		Name:  "Bob",
		Email: "bob@example.com",
		Role:  entity.RoleUser,
	}

	Users = []*entity.User{User1, User2, User3}

	// Categories
	Category1 = &entity.Category{
		Base:         entity.Base{ID: "category1"},
		Slug:         "game-of-the-year",
		Name:         "Game of the Year",
		DisplayOrder: 1,
		IsActive:     true,
	}

	Category2 = &entity.Category{
		Base:         entity.Base{ID: "category2"},
		Slug:         "best-indie",
		Name:         "Best Indie",
		DisplayOrder: 2,
		IsActive:     true,
	}

	// Inactive
	Category3 = &entity.Category{
		Base:         entity.Base{ID: "category3"},
		Slug:         "best-esports",
		Name:         "Best Esports",
		DisplayOrder: 3,
		IsActive:     false,
	}

	// Its own voting period already ended.
	Category4 = &entity.Category{
		Base:         entity.Base{ID: "category4"},
		Slug:         "best-narrative",
		Name:         "Best Narrative",
		DisplayOrder: 4,
		IsActive:     true,
		VotingEnd:    sql.NullTime{Valid: true, Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	Categories = []*entity.Category{Category1, Category2, Category3, Category4}

	// Nominees
	Nominee1A = &entity.Nominee{Base: entity.Base{ID: "nominee1a"}, CategoryID: "category1", Name: "Astral Quest", DisplayOrder: 1}
	Nominee1B = &entity.Nominee{Base: entity.Base{ID: "nominee1b"}, CategoryID: "category1", Name: "Blade Runner", DisplayOrder: 2}
	Nominee1C = &entity.Nominee{Base: entity.Base{ID: "nominee1c"}, CategoryID: "category1", Name: "Cosmic Drift", DisplayOrder: 3}
	Nominee2A = &entity.Nominee{Base: entity.Base{ID: "nominee2a"}, CategoryID: "category2", Name: "Dust Bunny", DisplayOrder: 1}
	Nominee2B = &entity.Nominee{Base: entity.Base{ID: "nominee2b"}, CategoryID: "category2", Name: "Ember Vale", DisplayOrder: 2}
	Nominee3A = &entity.Nominee{Base: entity.Base{ID: "nominee3a"}, CategoryID: "category3", Name: "Frag Masters", DisplayOrder: 1}
	Nominee4A = &entity.Nominee{Base: entity.Base{ID: "nominee4a"}, CategoryID: "category4", Name: "Grim Tales", DisplayOrder: 1}

	Nominees = []*entity.Nominee{Nominee1A, Nominee1B, Nominee1C, Nominee2A, Nominee2B, Nominee3A, Nominee4A}
)

// CreateFixtureDb inserts the users, categories and nominees above into the database of ctx.
func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertCategories(ctx)
	InsertNominees(ctx)
}

func InsertUsers(ctx context.Context) {
	for _, u := range Users {
		user := *u
		if err := xcontext.DB(ctx).Create(&user).Error; err != nil {
			panic(err)
		}
	}
}

func InsertCategories(ctx context.Context) {
	for _, c := range Categories {
		category := *c
		if err := xcontext.DB(ctx).Create(&category).Error; err != nil {
			panic(err)
		}
	}
}

func InsertNominees(ctx context.Context) {
	for _, n := range Nominees {
		nominee := *n
		if err := xcontext.DB(ctx).Create(&nominee).Error; err != nil {
			panic(err)
		}
	}
}
