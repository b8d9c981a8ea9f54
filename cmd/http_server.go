package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/auth"
	authPostgres "github.com/frahmantamala/petty-cash-management/internal/auth/postgres"
	"github.com/frahmantamala/petty-cash-management/internal/core/events"
	"github.com/frahmantamala/petty-cash-management/internal/currency"
	currencyPostgres "github.com/frahmantamala/petty-cash-management/internal/currency/postgres"
	"github.com/frahmantamala/petty-cash-management/internal/notification"
	"github.com/frahmantamala/petty-cash-management/internal/receipt"
	receiptPostgres "github.com/frahmantamala/petty-cash-management/internal/receipt/postgres"
	"github.com/frahmantamala/petty-cash-management/internal/request"
	requestPostgres "github.com/frahmantamala/petty-cash-management/internal/request/postgres"
	"github.com/frahmantamala/petty-cash-management/internal/rule"
	rulePostgres "github.com/frahmantamala/petty-cash-management/internal/rule/postgres"
	"github.com/frahmantamala/petty-cash-management/internal/smtpsettings"
	smtpPostgres "github.com/frahmantamala/petty-cash-management/internal/smtpsettings/postgres"
	"github.com/frahmantamala/petty-cash-management/internal/storage"
	"github.com/frahmantamala/petty-cash-management/internal/transport/rest"
	"github.com/frahmantamala/petty-cash-management/internal/transport/swagger"
	"github.com/frahmantamala/petty-cash-management/internal/user"
	userPostgres "github.com/frahmantamala/petty-cash-management/internal/user/postgres"
	"github.com/frahmantamala/petty-cash-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config     *internal.Config
	DB         *sqlx.DB
	GormDB     *gorm.DB
	Router     *chi.Mux
	Dispatcher *notification.Dispatcher
	Logger     *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.Dispatcher.Shutdown()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Logging.Format == "json" {
		logger.Init("production")
	} else {
		logger.Init("development")
	}
	log := logger.L()

	sqlDB, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// a broken API document should stop the server before it binds
	if _, err := swagger.LoadSpec(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}

	fileStore, err := storage.NewLocalFileStore(config.Storage.ReceiptDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	eventBus := events.NewEventBus(log)

	// repositories
	authRepo := authPostgres.NewRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)
	ruleRepo := rulePostgres.NewRuleRepository(gormDB)
	requestRepo := requestPostgres.NewRequestRepository(gormDB)
	receiptRepo := receiptPostgres.NewReceiptRepository(gormDB)
	currencyRepo := currencyPostgres.NewCurrencyRepository(gormDB)
	smtpRepo := smtpPostgres.NewSettingsRepository(gormDB)

	// services
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost, log)
	userService := user.NewService(userRepo, authService, log)
	ruleService := rule.NewService(ruleRepo, userService, log)
	requestService := request.NewService(requestRepo, ruleService, userService, eventBus, log)
	receiptService := receipt.NewService(receiptRepo, requestRepo, log)
	currencyService := currency.NewService(currencyRepo, log)
	smtpService := smtpsettings.NewService(smtpRepo, log)

	// notifications ride the event bus through a worker pool
	mailer := buildMailer(config, smtpService, log)
	dispatcher := notification.NewDispatcher(mailer, notification.DispatcherConfig{
		MaxWorkers:   config.Notification.MaxWorkers,
		JobQueueSize: config.Notification.JobQueueSize,
	}, log)
	notification.NewEventHandler(dispatcher, log).Register(eventBus)

	// handlers
	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService),
		Request:      request.NewHandler(requestService),
		Rule:         rule.NewHandler(ruleService),
		Receipt:      receipt.NewHandler(receiptService, fileStore),
		Currency:     currency.NewHandler(currencyService),
		SMTPSettings: smtpsettings.NewHandler(smtpService),
	}

	rbac := auth.NewRBACAuthorization(log)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, sqlDB.DB, handlers, rbac, config.Server.AllowedOrigins, log)

	return &Dependencies{
		Config:     config,
		Logger:     log,
		DB:         sqlDB,
		GormDB:     gormDB,
		Router:     router,
		Dispatcher: dispatcher,
	}, nil
}

func buildMailer(config *internal.Config, smtpService *smtpsettings.Service, log *slog.Logger) notification.Mailer {
	if config.Notification.Backend == "email_api" {
		return notification.NewAPIMailer(notification.APIMailerConfig{
			BaseURL:     config.Notification.EmailAPIURL,
			APIKey:      config.Notification.EmailAPIKey,
			MaxRetries:  config.Notification.MaxRetries,
			SendTimeout: config.Notification.SendTimeout,
		}, log)
	}
	return notification.NewSMTPMailer(smtpService, config.SMTP, log)
}

// initDB opens the SQL connection pool and layers GORM over the same
// pool so both query paths share one set of connections.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	if cfg.Driver == "sqlite" {
		gormDB, err := gorm.Open(gormSqlite.Open(cfg.Source), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Warn),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to unwrap sqlite connection: %w", err)
		}
		return sqlx.NewDb(sqlDB, "sqlite"), gormDB, nil
	}

	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return dbConn, gormDB, nil
}
