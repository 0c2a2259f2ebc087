package main

import (
	"log/slog"

	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/lib/validator"
	"reviewhub/proj/internal/services"
	"reviewhub/proj/internal/storage/postgres"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	services     *services.Services
	validator    *govalidator.Validate
	queryDecoder *schema.Decoder
}

func NewApplication(cfg *config.Config, log *slog.Logger, storage *postgres.Storage) *Application {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("username", validator.ValidateUsername); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("slug", validator.ValidateSlug); err != nil {
		panic(err)
	}
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		validator:    v,
		queryDecoder: queryDecoder,
		services:     services.New(log, cfg, storage),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
