package main

import (
	"context"
	"fmt"

	"github.com/danishayman/bobo-game-awards-sub000/config"
	"github.com/danishayman/bobo-game-awards-sub000/internal/domain"
	"github.com/danishayman/bobo-game-awards-sub000/internal/domain/votewindow"
	"github.com/danishayman/bobo-game-awards-sub000/internal/repository"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/authenticator"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/logger"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/router"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xredis"
	"github.com/gorilla/sessions"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context

	gate        *votewindow.Gate
	redisClient xredis.Client

	userRepo     repository.UserRepository
	oauth2Repo   repository.OAuth2Repository
	categoryRepo repository.CategoryRepository
	nomineeRepo  repository.NomineeRepository
	voteRepo     repository.VoteRepository
	ballotRepo   repository.BallotRepository

	authDomain     domain.AuthDomain
	userDomain     domain.UserDomain
	categoryDomain domain.CategoryDomain
	nomineeDomain  domain.NomineeDomain
	voteDomain     domain.VoteDomain
	ballotDomain   domain.BallotDomain
	resultDomain   domain.ResultDomain

	router *router.Router
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	window, err := votewindow.FromConfigs(cfg.Voting)
	if err != nil {
		return err
	}

	s.gate = votewindow.NewGate(window)

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewZapLogger(cfg.Logger.Level, cfg.Logger.IsJSON))
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))

	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.Env != "local"
	s.ctx = xcontext.WithSessionStore(s.ctx, store)

	return nil
}

func (s *srv) loadDatabase() error {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		return fmt.Errorf("unsupported database driver %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

// loadRedisClient falls back to a process-local cache when no redis address is configured.
func (s *srv) loadRedisClient() error {
	if xcontext.Configs(s.ctx).Redis.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("Redis is not configured, results are cached in memory")
		s.redisClient = xredis.NewLocalClient()
		return nil
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		return err
	}

	s.redisClient = client
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.oauth2Repo = repository.NewOAuth2Repository()
	s.categoryRepo = repository.NewCategoryRepository()
	s.nomineeRepo = repository.NewNomineeRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.ballotRepo = repository.NewBallotRepository()
}

func (s *srv) loadDomains() error {
	oauth2Services := []authenticator.IOAuth2Service{}
	for _, cfg := range xcontext.Configs(s.ctx).Auth.OAuth2 {
		service, err := authenticator.NewOAuth2Service(s.ctx, cfg)
		if err != nil {
			return fmt.Errorf("cannot setup oauth2 provider %s: %w", cfg.Name, err)
		}

		oauth2Services = append(oauth2Services, service)
	}

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.oauth2Repo, oauth2Services)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.categoryDomain = domain.NewCategoryDomain(s.categoryRepo, s.userRepo)
	s.nomineeDomain = domain.NewNomineeDomain(s.nomineeRepo, s.categoryRepo, s.userRepo)
	s.voteDomain = domain.NewVoteDomain(s.voteRepo, s.userRepo, s.gate)
	s.ballotDomain = domain.NewBallotDomain(s.ballotRepo, s.voteRepo, s.userRepo, s.categoryRepo, s.gate)
	s.resultDomain = domain.NewResultDomain(s.categoryRepo, s.voteRepo, s.userRepo, s.redisClient, s.gate)
	return nil
}
