package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-user-accounts/docs"
	"github.com/sbilibin2017/gw-user-accounts/internal/handlers"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/metrics"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/migrations"
	"github.com/sbilibin2017/gw-user-accounts/internal/repositories"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const metricsNamespace = "user_accounts"

// @title gw-user-accounts API
// @version 1.0.0
// @description Microservice for registering, authenticating and managing user accounts
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, logFormat,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns, redisExp,
		bcryptCost, bcryptMaxConcurrency,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, logFormat,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns, redisExp,
		bcryptCost, bcryptMaxConcurrency,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// all application, logging, database, Redis and password hashing configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel, logFormat string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort int, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns, redisExpSecond int,
	bcryptCost, bcryptMaxConcurrency int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	logFormat = getEnv("APP_LOG_FORMAT", "json")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if pgMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if pgMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if redisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if redisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if redisExpSecond, err = getInt("REDIS_EXP_SECOND", "60"); err != nil {
		return
	}

	// Password hashing config
	if bcryptCost, err = getInt("BCRYPT_COST", "10"); err != nil {
		return
	}
	if bcryptMaxConcurrency, err = getInt("BCRYPT_MAX_CONCURRENCY", "4"); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis cache and HTTP server.
// It applies migrations, sets up routes and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel, logFormat string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns, redisExpSecond int,
	bcryptCost, bcryptMaxConcurrency int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel, logFormat); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Log.Sync()
	log := logger.Log
	log.Infow("logger initialized", "level", logLevel, "format", logFormat)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	log.Infow("connecting to postgres", "host", pgHost, "port", pgPort, "db", pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)

	if err := migrations.Up(ctx, db.DB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Connect to Redis; a zero TTL disables the account cache
	var cache services.AccountCache
	if redisExpSecond > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
			Password:     redisPassword,
			DB:           redisDB,
			PoolSize:     redisPoolSize,
			MinIdleConns: redisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()
		cache = repositories.NewAccountCacheRepository(rdb, time.Duration(redisExpSecond)*time.Second)
	} else {
		log.Info("account cache disabled")
	}

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(metricsNamespace, reg)
	authMetrics := metrics.NewAuthMetrics(metricsNamespace, reg)

	// Initialize repositories
	accountReadRepo := repositories.NewAccountReadRepository(db, middlewares.GetTxFromContext)
	accountWriteRepo := repositories.NewAccountWriteRepository(db, middlewares.GetTxFromContext)

	// Initialize services
	hasher, err := services.NewBcryptHasher(bcryptCost, int64(bcryptMaxConcurrency))
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	authService := services.NewAuthService(accountReadRepo, accountWriteRepo, hasher, cache, authMetrics).
		WithAfterCommit(middlewares.AfterCommit)
	accountService := services.NewAccountService(accountReadRepo, accountWriteRepo, cache).
		WithAfterCommit(middlewares.AfterCommit)

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", appHost, appPort)
	r := newRouter(db, authService, accountService, httpMetrics, reg,
		fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", appHost, appPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}

// newRouter wires the HTTP routes. Mutating account routes run inside a
// per-request transaction.
func newRouter(
	db *sqlx.DB,
	authService *services.AuthService,
	accountService *services.AccountService,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	swaggerURL string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.MetricsMiddleware(httpMetrics))

	r.Group(func(r chi.Router) {
		r.Use(middlewares.TxMiddleware(db))
		r.Post("/register", handlers.NewRegisterHandler(authService))
		r.Post("/login", handlers.NewLoginHandler(authService))
		r.Delete("/users/{id}", handlers.NewDeleteUserHandler(accountService))
	})

	r.Get("/users", handlers.NewListUsersHandler(accountService))
	r.Get("/users/{id}", handlers.NewGetUserHandler(accountService))

	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))

	return r
}
