package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/internal/repository"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewGlobalRoleVerifier(userRepo repository.UserRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.GlobalRole) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errors.New("user is not authenticated")
	}

	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user is not valid: %w", err)
	}

	if !slices.Contains(requiredRoles, u.Role) {
		return errors.New("user role does not have permission")
	}

	return nil
}

// IsAdmin returns false for anonymous callers.
func (verifier *GlobalRoleVerifier) IsAdmin(ctx context.Context) bool {
	return verifier.Verify(ctx, entity.GlobalAdminRoles...) == nil
}
