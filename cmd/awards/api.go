package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/internal/common"
	"github.com/danishayman/bobo-game-awards-sub000/internal/middleware"
	"github.com/danishayman/bobo-game-awards-sub000/migration"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/router"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	cfg := xcontext.Configs(s.ctx)
	if err := cfg.CheckSecrets(); err != nil {
		return err
	}

	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	s.loadRepos()
	if err := s.loadDomains(); err != nil {
		return err
	}

	if err := common.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	s.loadRouter()

	apiCfg := cfg.ApiServer
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", apiCfg.Host, apiCfg.Port),
		Handler:           s.router.Handler(apiCfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on %s", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx, xcontext.Configs(s.ctx).ApiServer.RequestTimeout)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle("/metrics", promhttp.Handler())

	// OAuth2 API, the session and cookie must be written before the redirect.
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSaveSession())
	authRouter.After(middleware.HandleSetCookie())
	authRouter.After(middleware.HandleRedirect())
	{
		router.GET(authRouter, "/oauth2/login", s.authDomain.OAuth2Login)
		router.GET(authRouter, "/oauth2/callback", s.authDomain.OAuth2Callback)
		router.POST(authRouter, "/logout", s.authDomain.Logout)
	}

	// These APIs show more to an authenticated caller but do not require it.
	optionalAuthRouter := s.router.Branch()
	optionalAuthRouter.Before(middleware.NewAuthVerifier().Middleware())
	{
		router.GET(optionalAuthRouter, "/getVotingStatus", s.voteDomain.GetVotingStatus)
		router.GET(optionalAuthRouter, "/getListCategory", s.categoryDomain.GetList)
		router.GET(optionalAuthRouter, "/getCategory", s.categoryDomain.Get)
		router.GET(optionalAuthRouter, "/getResults", s.resultDomain.GetResults)
	}

	authVerifier := middleware.NewAuthVerifier().Required()

	onlyTokenAuthRouter := s.router.Branch()
	onlyTokenAuthRouter.Before(authVerifier.Middleware())
	{
		router.GET(onlyTokenAuthRouter, "/getMe", s.userDomain.GetMe)
		router.GET(onlyTokenAuthRouter, "/getMyVotes", s.voteDomain.GetMyVotes)
		router.POST(onlyTokenAuthRouter, "/submitVote", s.voteDomain.Submit)
		router.POST(onlyTokenAuthRouter, "/submitVotes", s.voteDomain.SubmitBatch)
		router.GET(onlyTokenAuthRouter, "/getMyBallot", s.ballotDomain.GetMyBallot)
		router.POST(onlyTokenAuthRouter, "/finalizeBallot", s.ballotDomain.Finalize)
	}

	adminRouter := s.router.Branch()
	adminRouter.Before(authVerifier.Middleware())
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		router.GET(adminRouter, "/admin/getAllCategory", s.categoryDomain.GetAll)
		router.POST(adminRouter, "/admin/createCategory", s.categoryDomain.Create)
		router.POST(adminRouter, "/admin/updateCategory", s.categoryDomain.Update)
		router.POST(adminRouter, "/admin/deleteCategory", s.categoryDomain.Delete)

		router.POST(adminRouter, "/admin/createNominee", s.nomineeDomain.Create)
		router.POST(adminRouter, "/admin/updateNominee", s.nomineeDomain.Update)
		router.POST(adminRouter, "/admin/deleteNominee", s.nomineeDomain.Delete)

		router.GET(adminRouter, "/admin/getListBallot", s.ballotDomain.GetList)
		router.GET(adminRouter, "/admin/getStatistic", s.ballotDomain.GetStatistic)
		router.POST(adminRouter, "/admin/assignGlobalRole", s.userDomain.AssignGlobalRole)
	}
}
