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

type ReviewModel struct {
	DB *pgxpool.Pool
}

const reviewColumns = `r.id, r.title_id AS titleid, r.author_id AS authorid,
	u.username AS author, r.text, r.score, r.pub_date AS pubdate`

func (m *ReviewModel) Get(ctx context.Context, titleID, id int64) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT `+reviewColumns+` FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1 AND r.id = $2`,
		titleID, id,
	)
	return collectReview(rows)
}

// GetByAuthorAndTitle backs the fast-path uniqueness check on creation.
func (m *ReviewModel) GetByAuthorAndTitle(ctx context.Context, authorID, titleID int64) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT `+reviewColumns+` FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.author_id = $1 AND r.title_id = $2`,
		authorID, titleID,
	)
	return collectReview(rows)
}

func (m *ReviewModel) ListForTitle(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT count(*) OVER() AS count, `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC
		LIMIT $2 OFFSET $3`,
		titleID, f.Limit(), f.Offset(),
	)
	type row struct {
		Count int
		models.Review
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []models.Review{}, 0, nil
	}
	reviews := make([]models.Review, 0, len(outputRows))
	for _, r := range outputRows {
		reviews = append(reviews, r.Review)
	}
	return reviews, outputRows[0].Count, nil
}

func (m *ReviewModel) Insert(ctx context.Context, titleID, authorID int64, text string, score int) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`WITH inserted AS (
			INSERT INTO reviews (title_id, author_id, text, score)
			VALUES ($1, $2, $3, $4)
			RETURNING id, title_id, author_id, text, score, pub_date
		)
		SELECT r.id, r.title_id AS titleid, r.author_id AS authorid,
			u.username AS author, r.text, r.score, r.pub_date AS pubdate
		FROM inserted r JOIN users u ON u.id = r.author_id`,
		titleID, authorID, text, score,
	)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, postgres.MapConflict(err)
	}
	return &review, nil
}

// Update touches text and score only. Author and title are immutable
// once a review exists.
func (m *ReviewModel) Update(ctx context.Context, id int64, text string, score int) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`WITH updated AS (
			UPDATE reviews SET text = $1, score = $2 WHERE id = $3
			RETURNING id, title_id, author_id, text, score, pub_date
		)
		SELECT r.id, r.title_id AS titleid, r.author_id AS authorid,
			u.username AS author, r.text, r.score, r.pub_date AS pubdate
		FROM updated r JOIN users u ON u.id = r.author_id`,
		text, score, id,
	)
	return collectReview(rows)
}

func (m *ReviewModel) Delete(ctx context.Context, titleID, id int64) error {
	status, err := m.DB.Exec(ctx, `DELETE FROM reviews WHERE title_id = $1 AND id = $2`, titleID, id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func collectReview(rows pgx.Rows) (*models.Review, error) {
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}
