package domain

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/internal/common"
	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/internal/repository"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	mathUtil "github.com/pkg/math"
	"gorm.io/gorm"
)

const MaxBatchVotes = 20

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// convertVoteError translates a repository error of the vote write path into an error which is
// safe to show to the user.
func convertVoteError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrBallotFinalized):
		return errorx.New(errorx.BallotFinalized, "Ballot has already been finalized")
	case errors.Is(err, repository.ErrInvalidNominee):
		return errorx.New(errorx.InvalidNominee, "Nominee does not belong to this category")
	case errors.Is(err, repository.ErrCategoryInactive):
		return errorx.New(errorx.CategoryInactive, "Category is not active")
	case errors.Is(err, repository.ErrCategoryNotFound):
		return errorx.New(errorx.NotFound, "Not found category")
	default:
		xcontext.Logger(ctx).Errorf("Cannot submit vote: %v", err)
		return errorx.Unknown
	}
}

func checkSlug(slug string) error {
	if len(slug) == 0 {
		return errorx.New(errorx.BadRequest, "Slug is required")
	}

	if len(slug) > 64 {
		return errorx.New(errorx.BadRequest, "Slug too long (at most 64 characters)")
	}

	if !slugRegex.MatchString(slug) {
		return errorx.New(errorx.BadRequest, "Slug must contain only lowercase letters, digits and hyphens")
	}

	return nil
}

// parseOptionalTime parses an RFC3339 time, an empty string gives an invalid (NULL) time.
func parseOptionalTime(field, s string) (sql.NullTime, error) {
	if s == "" {
		return sql.NullTime{}, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return sql.NullTime{}, errorx.New(errorx.BadRequest, "Invalid %s, expected RFC3339 format", field)
	}

	return sql.NullTime{Time: t.UTC(), Valid: true}, nil
}

func checkPagination(ctx context.Context, offset, limit int) (int, int, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Offset must not be negative")
	}

	if limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if limit == 0 {
		limit = apiCfg.DefaultLimit
	}

	return offset, mathUtil.MinInt(limit, apiCfg.MaxLimit), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func verifyAdmin(ctx context.Context, verifier *common.GlobalRoleVerifier) error {
	if err := verifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}
