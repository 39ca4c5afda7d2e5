package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/testutil"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestMigrate_AutoMigrate(t *testing.T) {
	ctx := testutil.MockContext()

	cfg := xcontext.Configs(ctx)
	cfg.Database.Driver = "sqlite"
	ctx = xcontext.WithConfigs(ctx, cfg)

	require.NoError(t, Migrate(ctx))
	for _, table := range []any{&entity.User{}, &entity.Category{}, &entity.Nominee{}, &entity.Ballot{}, &entity.Vote{}} {
		require.True(t, xcontext.DB(ctx).Migrator().HasTable(table))
	}

	require.Error(t, Rollback(ctx, 1))
}

func TestMigrationFiles(t *testing.T) {
	files, err := fs.Glob(postgresFS, "postgres/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups, downs := 0, 0
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, ".up.sql"):
			ups++
		case strings.HasSuffix(f, ".down.sql"):
			downs++
		}
	}

	require.Equal(t, ups, downs)
}
