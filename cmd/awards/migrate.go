package main

import (
	"github.com/danishayman/bobo-game-awards-sub000/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if n := cctx.Int("rollback"); n > 0 {
		return migration.Rollback(s.ctx, n)
	}

	return migration.Migrate(s.ctx)
}
