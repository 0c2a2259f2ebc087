package main

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/lib/validator"
	"reviewhub/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

func NewTestApplication(svc *services.Services, t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{
		Auth: config.Auth{
			Secret:       "test-secret",
			TokenTTL:     time.Hour,
			CodeLength:   6,
			CodeAlphabet: "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
		},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("username", validator.ValidateUsername); err != nil {
		t.Fatal(err)
	}
	if err := v.RegisterValidation("slug", validator.ValidateSlug); err != nil {
		t.Fatal(err)
	}
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		validator:    v,
		queryDecoder: queryDecoder,
		services:     svc,
		Http:         &Http{log: log, cfg: cfg},
	}
}
