package models

import (
	"context"
	"errors"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
	"reviewhub/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserModel struct {
	DB *pgxpool.Pool
}

// Column aliases match models.User field names for RowToStructByName.
const userColumns = `id, username, email,
	first_name AS firstname, last_name AS lastname, bio, role,
	is_staff AS isstaff, confirmation_code AS confirmationcode,
	created_at AS createdat, updated_at AS updatedat`

func (m *UserModel) Get(ctx context.Context, id int64) (*models.User, error) {
	rows, err := m.DB.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return collectUser(rows)
}

func (m *UserModel) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	rows, err := m.DB.Query(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, err
	}
	return collectUser(rows)
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := m.DB.Query(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, err
	}
	return collectUser(rows)
}

func (m *UserModel) Insert(ctx context.Context, username, email, role string) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO users (username, email, role) VALUES ($1, $2, $3) RETURNING `+userColumns,
		username, email, role,
	)
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, postgres.MapConflict(err)
	}
	return &user, nil
}

func (m *UserModel) Update(ctx context.Context, user *models.User) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE users SET username = $1, email = $2, first_name = $3, last_name = $4,
			bio = $5, role = $6, updated_at = now()
		WHERE id = $7 RETURNING `+userColumns,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, postgres.MapConflict(err)
	}
	return &updated, nil
}

func (m *UserModel) SetConfirmationCode(ctx context.Context, id int64, code string) error {
	status, err := m.DB.Exec(ctx, `UPDATE users SET confirmation_code = $1 WHERE id = $2`, code, id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *UserModel) Delete(ctx context.Context, username string) error {
	status, err := m.DB.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *UserModel) List(ctx context.Context, f filters.Filters) ([]models.User, int, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT count(*) OVER() AS count, `+userColumns+`
		FROM users ORDER BY username ASC LIMIT $1 OFFSET $2`,
		f.Limit(), f.Offset(),
	)
	type row struct {
		Count int
		models.User
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []models.User{}, 0, nil
	}
	users := make([]models.User, 0, len(outputRows))
	for _, r := range outputRows {
		users = append(users, r.User)
	}
	return users, outputRows[0].Count, nil
}

func collectUser(rows pgx.Rows) (*models.User, error) {
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
