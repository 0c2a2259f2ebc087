package services

import (
	"log/slog"

	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/mails"
	"reviewhub/proj/internal/services/auth"
	"reviewhub/proj/internal/services/reviews"
	"reviewhub/proj/internal/services/titles"
	"reviewhub/proj/internal/services/users"
	"reviewhub/proj/internal/storage/postgres"
	dbmodels "reviewhub/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth    *auth.AuthService
	Users   *users.UserService
	Titles  *titles.TitleService
	Reviews *reviews.ReviewService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage) *Services {
	mailer := mails.New(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Timeout,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.Sender,
		cfg.SMTP.RetriesCount,
	)
	m := dbmodels.New(storage)
	return &Services{
		Auth:    auth.New(log, cfg.Auth, m.User, mailer),
		Users:   users.New(log, m.User),
		Titles:  titles.New(log, m.Title, m.Category, m.Genre),
		Reviews: reviews.New(log, m.Review, m.Comment, m.Title),
	}
}
