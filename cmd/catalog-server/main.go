package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	catalog "github.com/goliatone/go-catalog"
	"github.com/goliatone/go-catalog/middleware/authware"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("catalog"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := loadConfig()
	if err != nil {
		lgr.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := openDatabase(cfg.dsn)
	if err != nil {
		lgr.Error("database error", "error", err)
		os.Exit(1)
	}

	if err := catalog.RunMigrations(ctx, db); err != nil {
		lgr.Error("migration error", "error", err)
		os.Exit(1)
	}

	repo := catalog.NewRepositoryManager(db)
	repo.MustValidate()

	provider := catalog.NewRepositoryIdentityProvider(repo).
		WithLogger(adaptLogger(lgr.GetLogger("identity")))

	auther, err := catalog.NewAuthenticator(provider, catalog.NewRegisterUserHandler(repo), cfg)
	if err != nil {
		lgr.Error("authenticator error", "error", err)
		os.Exit(1)
	}
	auther.WithLogger(adaptLogger(lgr.GetLogger("auth")))

	controller := catalog.NewHTTPController(auther, repo)
	controller.Logger = adaptLogger(lgr.GetLogger("http"))
	controller.ContextKey = cfg.GetContextKey()

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	srv.Router().WithLogger(lgr.GetLogger("router"))

	authMW := authware.New(authware.Config{
		TokenValidator: tokenValidatorAdapter{auther.TokenService()},
		ContextKey:     cfg.GetContextKey(),
		AuthScheme:     cfg.GetAuthScheme(),
		ContextEnricher: func(c context.Context, claims authware.AuthClaims) context.Context {
			if ac, ok := claims.(catalog.AuthClaims); ok {
				return catalog.WithClaimsContext(c, ac)
			}
			return c
		},
	})

	adminMW := []router.MiddlewareFunc{
		authMW,
		authware.RequireRole(cfg.GetContextKey(), string(catalog.RoleAdmin)),
	}

	controller.RegisterAuthRoutes(srv.Router().Group("/api/auth"), authMW)
	controller.RegisterAdminRoutes(srv.Router().Group("/api/admin"), adminMW...)
	controller.RegisterShopRoutes(srv.Router().Group("/api/shop"))

	lgr.Info("listening", "addr", cfg.addr)
	srv.Serve(cfg.addr)

	sig := waitExitSignal()
	lgr.Info("shutting down", "signal", sig.String())
}

func openDatabase(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// tokenValidatorAdapter narrows the catalog token service to the middleware
// interface.
type tokenValidatorAdapter struct {
	ts catalog.TokenService
}

func (a tokenValidatorAdapter) Validate(tokenString string) (authware.AuthClaims, error) {
	claims, err := a.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// loggerAdapter bridges glog's structured logger to the catalog printf
// logger interface.
type loggerAdapter struct {
	l glog.Logger
}

func adaptLogger(l glog.Logger) loggerAdapter {
	return loggerAdapter{l: l}
}

func (a loggerAdapter) Debug(format string, args ...any) {
	a.l.Debug(fmt.Sprintf(format, args...))
}

func (a loggerAdapter) Info(format string, args ...any) {
	a.l.Info(fmt.Sprintf(format, args...))
}

func (a loggerAdapter) Error(format string, args ...any) {
	a.l.Error(fmt.Sprintf(format, args...))
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
