package main

import (
	"os/signal"
	"syscall"

	"github.com/danishayman/bobo-game-awards-sub000/internal/domain/cron"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	s.loadRepos()
	if err := s.loadDomains(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewResultsSnapshotCronJob(
		s.resultDomain, xcontext.Configs(s.ctx).Results.SnapshotInterval))
	cronJobManager.Start(ctx)

	return nil
}
