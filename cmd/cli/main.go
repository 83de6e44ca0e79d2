package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/waitlyst/waitlyst/config"
	"github.com/waitlyst/waitlyst/domain/waitlist"
	"github.com/waitlyst/waitlyst/internal/log"
	"github.com/waitlyst/waitlyst/internal/models"
	"github.com/waitlyst/waitlyst/pkg/migrations"
	"github.com/waitlyst/waitlyst/pkg/utils"
	"gorm.io/gorm"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		runMigrate(logger)
		return

	case "seed":
		runSeed(logger, args[1:])
		return

	case "export":
		runExport(logger)
		return

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func runMigrate(logger *log.Logger) {
	db := mustOpenDatabase(logger)
	defer config.CloseDatabase(db, logger)

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance for migration", "error", err.Error())
		os.Exit(1)
	}

	migrationsDir := utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := migrations.Up(ctx, sqlDB, migrations.Config{Dir: migrationsDir, Logger: logger}); err != nil {
		logger.Error("Database migration failed", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("Database migrations completed")
}

func runSeed(logger *log.Logger, args []string) {
	count := waitlist.DefaultSeedCount
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			fmt.Fprintf(os.Stderr, "invalid seed count: %s\n", args[0])
			os.Exit(1)
		}
		count = parsed
	}

	db := mustOpenDatabase(logger)
	defer config.CloseDatabase(db, logger)

	if err := config.AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
		os.Exit(1)
	}

	service := newWaitlistService(db, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := service.SeedDemoData(ctx, count); err != nil {
		logger.Error("Seeding demo waitlist data failed", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("Seeded demo waitlist data", "count", count)
}

func runExport(logger *log.Logger) {
	db := mustOpenDatabase(logger)
	defer config.CloseDatabase(db, logger)

	service := newWaitlistService(db, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	csv, err := service.ExportCSV(ctx)
	if err != nil {
		logger.Error("Waitlist export failed", "error", err.Error())
		os.Exit(1)
	}

	filename := waitlist.ExportFilename(time.Now())
	if err := os.WriteFile(filename, []byte(csv), 0o644); err != nil {
		logger.Error("Failed to write export file", "file", filename, "error", err.Error())
		os.Exit(1)
	}

	logger.Info("Waitlist exported", "file", filename)
	fmt.Println(filename)
}

func mustOpenDatabase(logger *log.Logger) *gorm.DB {
	db, err := config.NewDatabase(logger, &config.DBConfig{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err.Error())
		os.Exit(1)
	}
	return db
}

func newWaitlistService(db *gorm.DB, logger *log.Logger) waitlist.WaitlistService {
	settings := config.NewWaitlistSettings(logger)
	return waitlist.NewWaitlistServiceFactory(db, logger, nil, settings.LinkBase).CreateService()
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate        Run database migrations and exit")
	fmt.Println("  seed [count]   Populate an empty waitlist with demo entries")
	fmt.Println("  export         Write the waitlist to a dated CSV file")
}
