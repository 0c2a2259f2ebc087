package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

const confirmationCodeTmpl = "confirmation_code.html"

type UserStorage interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, username, email, role string) (*models.User, error)
	SetConfirmationCode(ctx context.Context, id int64, code string) error
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type AuthService struct {
	log     *slog.Logger
	cfg     config.Auth
	storage UserStorage
	mailer  MailProvider
}

func New(log *slog.Logger, cfg config.Auth, storage UserStorage, mailer MailProvider) *AuthService {
	return &AuthService{
		log:     log,
		cfg:     cfg,
		storage: storage,
		mailer:  mailer,
	}
}

// RequestCode resolves or creates the user for a (username, email) pair,
// stores a fresh confirmation code on it and mails the code to the given
// address. A repeated request overwrites any pending code. The code is
// never returned to the caller.
func (a *AuthService) RequestCode(ctx context.Context, username, email string) error {
	const op = "auth.AuthService.RequestCode"
	log := a.log.With("op", op, "username", username)

	byUsername, err := a.storage.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return err
	}
	byEmail, err := a.storage.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return err
	}

	var user *models.User
	switch {
	case byUsername != nil && byEmail != nil && byUsername.ID == byEmail.ID:
		user = byUsername
	case byUsername != nil:
		log.Info("signup conflict", "field", "email")
		return ErrEmailMismatch
	case byEmail != nil:
		log.Info("signup conflict", "field", "username")
		return ErrUsernameMismatch
	default:
		user, err = a.storage.Insert(ctx, username, email, models.RoleUser)
		if err != nil {
			// a concurrent signup may win the unique constraint race
			var conflict *storage.ConflictError
			if errors.As(err, &conflict) {
				if conflict.Field == "username" {
					return ErrEmailMismatch
				}
				return ErrUsernameMismatch
			}
			log.Error(err.Error())
			return err
		}
	}

	code, err := generateCode(a.cfg.CodeAlphabet, a.cfg.CodeLength)
	if err != nil {
		log.Error(err.Error())
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := a.storage.SetConfirmationCode(ctx, user.ID, code); err != nil {
		log.Error(err.Error())
		return fmt.Errorf("%s: %w", op, err)
	}
	err = a.mailer.Send(email, confirmationCodeTmpl, map[string]any{
		"username":         username,
		"confirmationCode": code,
	})
	if err != nil {
		// mail dispatch is synchronous, a failed send fails the request
		log.Error("failed to send confirmation email", "errMsg", err.Error())
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("confirmation code sent")
	return nil
}

// ExchangeCode redeems a confirmation code for a bearer token. The stored
// code is consumed whether or not the attempt succeeds.
func (a *AuthService) ExchangeCode(ctx context.Context, username, code string) (string, error) {
	const op = "auth.AuthService.ExchangeCode"
	log := a.log.With("op", op, "username", username)

	user, err := a.storage.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return "", ErrUserNotFound
		}
		log.Error(err.Error())
		return "", err
	}

	valid := len(code) == a.cfg.CodeLength &&
		(code == user.ConfirmationCode ||
			(a.cfg.OverrideCode != "" && code == a.cfg.OverrideCode))

	// one-shot: clear before reporting the outcome
	if err := a.storage.SetConfirmationCode(ctx, user.ID, ""); err != nil {
		log.Error(err.Error())
		return "", err
	}
	if !valid {
		log.Warn("confirmation code rejected")
		return "", ErrInvalidConfirmationCode
	}
	token, err := a.issueToken(user)
	if err != nil {
		log.Error(err.Error())
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// GetUser resolves the actor for an authenticated request.
func (a *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := a.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func generateCode(alphabet string, length int) (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}
