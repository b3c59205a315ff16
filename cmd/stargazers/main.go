// Command stargazers runs the stargazing API and its maintenance tasks.
//
// @title                      Stargazing API
// @version                    1.0
// @description                Accounts, sessions and the public event catalogue for the stargazing club.
// @BasePath                   /api
// @securityDefinitions.apikey CookieAuth
// @in                         cookie
// @name                       token
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/stargazers/stargazing-api/internal/api"
	"github.com/stargazers/stargazing-api/internal/core/ports"
	"github.com/stargazers/stargazing-api/internal/core/service"
	"github.com/stargazers/stargazing-api/internal/infrastructure/config"
	"github.com/stargazers/stargazing-api/internal/infrastructure/crypto"
	redisdb "github.com/stargazers/stargazing-api/internal/infrastructure/db/redis"
	httpserver "github.com/stargazers/stargazing-api/internal/infrastructure/http"
	"github.com/stargazers/stargazing-api/internal/infrastructure/http/handlers"
	"github.com/stargazers/stargazing-api/internal/infrastructure/token"
	"github.com/stargazers/stargazing-api/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "stargazers",
		Usage: "stargazing club API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file preloaded before reading the environment",
			},
		},
		Before: func(c *cli.Context) error {
			return config.LoadDotEnv(c.String("env-file"))
		},
		Commands: []*cli.Command{
			serveCommand(),
			migratePasswordsCommand(),
			createAdminCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and initialises the logger.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "stargazing-api",
	})
	return cfg, log, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}

			store, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer store.Close()

			checks := store.Checks
			var limiter ports.LoginLimiter
			if cfg.Redis.Enabled {
				rdb, err := redisdb.Connect(ctx, cfg.Redis)
				if err != nil {
					return err
				}
				defer rdb.Close()
				limiter = redisdb.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
				checks = append(checks, handlers.RedisCheck(rdb))
				log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttle enabled")
			}

			e := api.NewRouter(api.Options{
				Logger:          log,
				CORSOrigin:      cfg.CORSOrigin,
				SecureCookies:   cfg.IsProduction(),
				TokenTTL:        cfg.TokenTTL,
				Users:           store.Users,
				Events:          store.Events,
				Hasher:          crypto.NewBcryptHasher(cfg.BcryptCost),
				Tokens:          token.NewManager(cfg.JWTSecret, cfg.TokenTTL),
				Limiter:         limiter,
				ReadinessChecks: checks,
			})

			return httpserver.Run(ctx, e, ":"+cfg.Port, 0, log)
		},
	}
}

func migratePasswordsCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate-passwords",
		Usage: "hash every stored password that is still plaintext",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "report what would change without writing"},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := bootstrap(c.Context)
			if err != nil {
				return err
			}
			store, err := openStore(c.Context, cfg, log)
			if err != nil {
				return err
			}
			defer store.Close()

			migrator := service.NewPasswordMigrator(store.Users, crypto.NewBcryptHasher(cfg.BcryptCost), log)
			report, err := migrator.Run(c.Context, c.Bool("dry-run"))
			if err != nil {
				return err
			}
			log.Info().
				Int("scanned", report.Scanned).
				Int("migrated", report.Migrated).
				Int("skipped", report.Skipped).
				Bool("dry_run", c.Bool("dry-run")).
				Msg("password migration finished")
			return nil
		},
	}
}

func createAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "create an account with the admin role",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := bootstrap(c.Context)
			if err != nil {
				return err
			}
			store, err := openStore(c.Context, cfg, log)
			if err != nil {
				return err
			}
			defer store.Close()

			users := service.NewUserService(store.Users, crypto.NewBcryptHasher(cfg.BcryptCost), log)
			admin, err := users.Create(c.Context, ports.CreateUserInput{
				Username: c.String("username"),
				Email:    c.String("email"),
				Password: c.String("password"),
				Role:     "admin",
			})
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("admin created")
			return nil
		},
	}
}
