package main

import (
	"context"
	"flag"
	"os"

	"github.com/caarlos0/env/v11"

	"ideaboard/internal/config"
	"ideaboard/internal/db"
	"ideaboard/internal/logger"
	"ideaboard/internal/repository"
	"ideaboard/internal/service"
)

func main() {
	file := flag.String("file", "ideas.json", "JSON array of ideas to import")
	flag.Parse()

	bootLog := logger.New("info", false)

	cfg, err := config.LoadCommon()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	var owner seedUser
	if err := env.Parse(&owner); err != nil {
		log.Fatal().Err(err).Msg("load seed user")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("open seed file")
	}
	defer f.Close()

	items, err := loadIdeas(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("parse seed file")
	}
	log.Info().Int("count", len(items)).Str("file", *file).Msg("loaded seed ideas")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := db.Migrate(gormDB, false); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	ideaService := service.NewIdeaService(repository.NewIdeaRepository(gormDB), nil)

	user, created, err := ensureUser(ctx, userRepo, owner)
	if err != nil {
		log.Fatal().Err(err).Str("email", owner.Email).Msg("ensure seed user")
	}
	log.Info().Str("email", user.Email).Bool("created", created).Msg("seed user ready")

	result, err := seedIdeas(ctx, ideaService, user.Identity(), items)
	if err != nil {
		log.Fatal().Err(err).Msg("seed ideas")
	}

	log.Info().
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("seed completed")
}
