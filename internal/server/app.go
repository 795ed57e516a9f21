// Package server initializes and runs the application server. It opens the
// database, applies migrations, builds the service layer, and serves the
// HTTP API until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mvasiljevs/taskdesk/internal/logging"
	"github.com/mvasiljevs/taskdesk/internal/server/config"
	"github.com/mvasiljevs/taskdesk/internal/server/httpapi"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/repomanager"
	"github.com/mvasiljevs/taskdesk/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	userService := services.NewUserService(db, rm, cfg)
	adminService := services.NewAdminService(db, rm, cfg)
	taskService := services.NewTaskService(db, rm)
	messageService := services.NewMessageService(db, rm)
	evidenceService := services.NewEvidenceService(db, rm, cfg)

	cookies := httpapi.NewCookieHelper(cfg)

	handlers := &httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(userService, cookies, logger),
		Tasks:     httpapi.NewTaskHandler(taskService),
		Messages:  httpapi.NewMessageHandler(messageService),
		Users:     httpapi.NewUserAdminHandler(adminService, cookies, logger),
		Evidences: httpapi.NewEvidenceHandler(evidenceService),
		Health:    httpapi.NewHealthHandler(db),
	}

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, handlers,
		httpapi.Authenticate(userService, cookies, logger), logger)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
