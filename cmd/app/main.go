package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"freight/cmd"
	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres/bookingrepo"
	"freight/internal/adapters/out/postgres/branchrepo"
	"freight/internal/adapters/out/postgres/eventrepo"
	"freight/internal/adapters/out/postgres/sequencerepo"
	"freight/internal/adapters/out/postgres/triprepo"
	"freight/internal/adapters/out/postgres/vehiclerepo"
	"freight/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := openDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, db)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateGetStaleLoadingTripsQueryHandler(),
		time.Duration(configs.StaleLoadingAfterHours)*time.Hour,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		LRNumberFormat:         os.Getenv("LR_NUMBER_FORMAT"),
		CapacityWarnPercent:    envFloat("CAPACITY_WARN_PERCENT", 80),
		StaleLoadingAfterHours: envInt("STALE_LOADING_AFTER_HOURS", 12),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&branchrepo.BranchDTO{},
		&vehiclerepo.VehicleDTO{},
		&bookingrepo.BookingDTO{},
		&bookingrepo.ArticleDTO{},
		&triprepo.TripDTO{},
		&eventrepo.EventDTO{},
		&sequencerepo.ReservedNumberDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	server := httpin.NewServer(
		app.CreateCreateBookingCommandHandler(),
		app.CreateCreateTripCommandHandler(),
		app.CreateLoadBookingsCommandHandler(),
		app.CreateUnloadBookingsCommandHandler(),
		app.CreateChangeBookingStatusCommandHandler(),
		app.CreateChangeTripStatusCommandHandler(),
		app.CreateGetTripsQueryHandler(),
		app.CreateGetTripSummaryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
