package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/TooLazyToCreate/account-service/config"
	"github.com/TooLazyToCreate/account-service/internal/app"
	"github.com/TooLazyToCreate/account-service/internal/model"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if cfg.IsDev() {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zapConfig.Development = true
	} else {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		zapConfig.Development = false
	}
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	return zapConfig.Build()
}

func main() {
	workingDir, err := os.Getwd()
	if err != nil {
		log.Fatal("os.Getwd() failed with error - " + err.Error())
	}
	os.Exit(run(workingDir, os.Args[1:]))
}

/* Код выхода возвращается после logger.Sync и остановки сигналов */
func run(workingDir string, args []string) int {
	flags := flag.NewFlagSet("account-service", flag.ContinueOnError)
	writeTemplate := flags.Bool("template", false, "write config.json template and exit")
	seedEmail := flags.String("seed-email", "", "email of the first account, created on startup if missing")
	seedFirstName := flags.String("seed-first-name", "Admin", "first name of the first account")
	seedLastName := flags.String("seed-last-name", "Admin", "last name of the first account")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *writeTemplate {
		if err := config.WriteTemplate(filepath.Join(workingDir, "config.json")); err != nil {
			log.Print("Failed to save config template with error - " + err.Error())
			return 1
		}
		return 0
	}

	/* go.env необязателен: в контейнере переменные приходят из окружения */
	if err := godotenv.Load(filepath.Join(workingDir, "go.env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Print("Error loading go.env file; Error - " + err.Error())
		return 1
	}
	cfg, err := config.Load(filepath.Join(workingDir, "config.json"))
	if err != nil {
		log.Print("Config loading failed with error - " + err.Error())
		return 1
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Print("Failed to build logger - " + err.Error())
		return 1
	}
	defer func() { _ = logger.Sync() }()

	var seed *model.UserFields
	if *seedEmail != "" {
		seed = &model.UserFields{FirstName: *seedFirstName, LastName: *seedLastName, Email: *seedEmail}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, logger, cfg, seed); err != nil {
		logger.Error("Server have been stopped with error", zap.Error(err))
		return 1
	}
	logger.Info("Server have been stopped.")
	return 0
}
