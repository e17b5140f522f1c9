package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	slogmulti "github.com/samber/slog-multi"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hauling/cmd"
	"hauling/internal/adapters/out/postgres/jobrepo"
	"hauling/internal/adapters/out/postgres/schedrepo"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogFile)

	gormDB, err := connectDB(configs)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start background sweeps", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		DirectoryServiceURL:    goDotEnvVariable("DIRECTORY_SERVICE_URL"),
		DirectoryServiceAPIKey: goDotEnvVariable("DIRECTORY_SERVICE_API_KEY"),
		GeoServiceURL:          goDotEnvVariable("GEO_SERVICE_URL"),
		GeoServiceAPIKey:       goDotEnvVariable("GEO_SERVICE_API_KEY"),
		BillingServiceURL:      goDotEnvVariable("BILLING_SERVICE_URL"),
		BillingServiceAPIKey:   goDotEnvVariable("BILLING_SERVICE_API_KEY"),
		MessagingServiceURL:    goDotEnvVariable("MESSAGING_SERVICE_URL"),
		MessagingServiceAPIKey: goDotEnvVariable("MESSAGING_SERVICE_API_KEY"),

		LogFile: goDotEnvVariable("LOG_FILE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// newLogger fans log records out to human-readable stderr and, when a log
// file is configured, a JSON file for ingestion.
func newLogger(logFile string) *slog.Logger {
	stderr := slog.NewTextHandler(os.Stderr, nil)
	if logFile == "" {
		return slog.New(stderr)
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := slog.New(stderr)
		logger.Warn("failed to open log file, logging to stderr only", "error", err)
		return logger
	}

	return slog.New(slogmulti.Fanout(
		stderr,
		slog.NewJSONHandler(file, nil),
	))
}

func connectDB(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&jobrepo.JobDTO{},
		&jobrepo.SlotDTO{},
		&schedrepo.ScheduledJobDTO{},
		&schedrepo.AssignationDTO{},
		&schedrepo.SwitchRequestDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			logger.Error("web server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down web server", "error", err)
	}
}
