package testutil

import (
	"context"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/config"
	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/authenticator"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/logger"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/gorilla/sessions"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "test",
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 2,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
			LandingURL: "http://localhost:3000",
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "awards_session",
		},
		Voting: config.VotingConfigs{
			TimezoneOffset:  "+08:00",
			Deadline:        "2026-01-07 23:59:59",
			LiveVotingStart: "2025-10-01 00:00:00",
			LockEnabled:     true,
		},
		Results: config.ResultConfigs{
			CacheTTL:         time.Hour,
			SnapshotInterval: time.Minute,
		},
	}
}

// MockContext returns a context holding an empty in-memory database with every table migrated.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens a distinct database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

// FixedClock returns a clock function always answering t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
