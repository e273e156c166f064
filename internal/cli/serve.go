package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/banque/registration-system/internal/api"
	"github.com/banque/registration-system/internal/api/handler"
	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/service"
	mongodb "github.com/banque/registration-system/internal/infrastructure/db/mongo"
	redisdb "github.com/banque/registration-system/internal/infrastructure/db/redis"
	"github.com/banque/registration-system/internal/infrastructure/queue"
	"github.com/banque/registration-system/internal/pkg/config"
	"github.com/banque/registration-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var port string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API backed by MongoDB and Redis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := serve(ctx, cfg, log); err != nil {
				log.Error().Err(err).Msg("server stopped with error")
				return err
			}
			return nil
		},
	}

	c.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return c
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Dependencies ---
	authService := service.NewAuthService(mongodb.NewAuthRepository(db), cfg.JWTSecret, cfg.TokenTTL)
	auditService := service.NewAuditService(mongodb.NewTransactionRepository(db), redisdb.NewDedupChecker(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.Bank.AuditWorkers, auditService, log)

	bank := service.NewBank(service.BankDeps{
		Clients:     mongodb.NewClientRepository(db),
		Companies:   mongodb.NewCompanyRepository(db),
		Auth:        authService,
		Idempotency: redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL),
		Publisher:   dispatcher,
	}, service.BankOptions{
		ApprovalRequired: cfg.Bank.ApprovalRequired,
		Features: domain.Features{
			Freezable:   cfg.Bank.Freezable,
			KeepHistory: cfg.Bank.KeepHistory,
		},
	}, log)
	if err := bank.Restore(ctx); err != nil {
		return err
	}

	employee := domain.NewEmployee(
		domain.Credentials{Username: cfg.Employee.Username, Password: cfg.Employee.Password},
		domain.EmployeeOptions{LegacyApproval: cfg.Bank.LegacyApproval},
	)

	e := api.NewRouter(api.Deps{
		Bank:      bank,
		Companies: bank,
		Employees: service.NewEmployeeService(bank, employee, authService, log),
		Auth:      authService,
		JWTSecret: cfg.JWTSecret,
		Checks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log: log,
	})

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
