package domain

import (
	"context"
	"sync"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/internal/model"
	"github.com/danishayman/bobo-game-awards-sub000/internal/repository"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/authenticator"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/crypto"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/google/uuid"
)

type AuthDomain interface {
	OAuth2Login(context.Context, *model.OAuth2LoginRequest) (*model.OAuth2LoginResponse, error)
	OAuth2Callback(context.Context, *model.OAuth2CallbackRequest) (*model.OAuth2CallbackResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	hasSuperAdmin      bool
	hasSuperAdminMutex sync.Mutex

	userRepo       repository.UserRepository
	oauth2Repo     repository.OAuth2Repository
	oauth2Services []authenticator.IOAuth2Service
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	oauth2Repo repository.OAuth2Repository,
	oauth2Services []authenticator.IOAuth2Service,
) AuthDomain {
	return &authDomain{
		userRepo:       userRepo,
		oauth2Repo:     oauth2Repo,
		oauth2Services: oauth2Services,
	}
}

func (d *authDomain) OAuth2Login(
	ctx context.Context, req *model.OAuth2LoginRequest,
) (*model.OAuth2LoginResponse, error) {
	service, ok := d.getOAuth2Service(req.Type)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Unsupported type %s", req.Type)
	}

	state, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate random string: %v", err)
		return nil, errorx.Unknown
	}

	return &model.OAuth2LoginResponse{
		RedirectURL: service.AuthCodeURL(state),
		State:       state,
	}, nil
}

func (d *authDomain) OAuth2Callback(
	ctx context.Context, req *model.OAuth2CallbackRequest,
) (*model.OAuth2CallbackResponse, error) {
	service, ok := d.getOAuth2Service(req.Type)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Unsupported type %s", req.Type)
	}

	if req.SessionState == "" || req.State != req.SessionState {
		return nil, errorx.New(errorx.BadRequest, "Mismatched state parameter")
	}

	if req.Code == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing authorization code")
	}

	serviceUser, err := service.VerifyAuthorizationCode(ctx, req.Code)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot verify authorization code: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Cannot verify the authorization code")
	}

	if serviceUser.ID == "" {
		xcontext.Logger(ctx).Errorf("Provider %s returned an empty user id", service.Service())
		return nil, errorx.Unknown
	}

	user, err := d.getOrCreateUser(ctx, service, serviceUser)
	if err != nil {
		return nil, err
	}

	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{ID: user.ID, Name: user.Name},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.OAuth2CallbackResponse{
		RedirectURL: xcontext.Configs(ctx).Auth.LandingURL,
		AccessToken: accessToken,
	}, nil
}

func (d *authDomain) Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error) {
	return &model.LogoutResponse{}, nil
}

func (d *authDomain) getOrCreateUser(
	ctx context.Context, service authenticator.IOAuth2Service, serviceUser authenticator.OAuth2User,
) (*entity.User, error) {
	user, err := d.userRepo.GetByServiceUserID(ctx, service.Service(), serviceUser.ID)
	if err == nil {
		// Keep the profile in sync with the provider.
		profile := map[string]any{}
		if serviceUser.Username != "" && serviceUser.Username != user.Name {
			profile["name"] = serviceUser.Username
			user.Name = serviceUser.Username
		}

		if serviceUser.AvatarURL != "" && serviceUser.AvatarURL != user.AvatarURL {
			profile["avatar_url"] = serviceUser.AvatarURL
			user.AvatarURL = serviceUser.AvatarURL
		}

		if len(profile) > 0 {
			if err := d.userRepo.UpdateByID(ctx, user.ID, profile); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot update user profile: %v", err)
			}
		}

		return user, nil
	}

	if !isNotFound(err) {
		xcontext.Logger(ctx).Errorf("Cannot get user by service user id: %v", err)
		return nil, errorx.Unknown
	}

	user = &entity.User{
		Base:      entity.Base{ID: uuid.NewString()},
		Name:      serviceUser.Username,
		Email:     serviceUser.Email,
		AvatarURL: serviceUser.AvatarURL,
	}

	if user.Name == "" {
		user.Name = serviceUser.ID
	}

	// Held until commit, so the first user check sees every committed user.
	d.hasSuperAdminMutex.Lock()
	defer d.hasSuperAdminMutex.Unlock()

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	if err := d.createUser(txCtx, user); err != nil {
		return nil, err
	}

	err = d.oauth2Repo.Create(txCtx, &entity.OAuth2{
		UserID:        user.ID,
		Service:       service.Service(),
		ServiceUserID: serviceUser.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot register user with service: %v", err)
		return nil, errorx.New(errorx.AlreadyExists,
			"This %s account was already registered with another user", service.Service())
	}

	if err := xcontext.WithCommitDBTransaction(txCtx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit user creation: %v", err)
		return nil, errorx.Unknown
	}

	d.hasSuperAdmin = true
	return user, nil
}

// createUser grants super admin to the very first user. The caller must hold hasSuperAdminMutex.
func (d *authDomain) createUser(ctx context.Context, user *entity.User) error {
	user.Role = entity.RoleUser

	if !d.hasSuperAdmin {
		count, err := d.userRepo.Count(ctx)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count number of user records: %v", err)
			return errorx.Unknown
		}

		if count == 0 {
			user.Role = entity.RoleSuperAdmin
		}
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *authDomain) getOAuth2Service(service string) (authenticator.IOAuth2Service, bool) {
	for i := range d.oauth2Services {
		if d.oauth2Services[i].Service() == service {
			return d.oauth2Services[i], true
		}
	}

	return nil, false
}
