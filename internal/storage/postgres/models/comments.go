package models

import (
	"context"
	"errors"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentModel struct {
	DB *pgxpool.Pool
}

const commentColumns = `c.id, c.review_id AS reviewid, c.author_id AS authorid,
	u.username AS author, c.text, c.pub_date AS pubdate`

func (m *CommentModel) Get(ctx context.Context, reviewID, id int64) (*models.Comment, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT `+commentColumns+` FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.review_id = $1 AND c.id = $2`,
		reviewID, id,
	)
	return collectComment(rows)
}

func (m *CommentModel) ListForReview(ctx context.Context, reviewID int64, f filters.Filters) ([]models.Comment, int, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT count(*) OVER() AS count, `+commentColumns+`
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.review_id = $1
		ORDER BY c.pub_date DESC
		LIMIT $2 OFFSET $3`,
		reviewID, f.Limit(), f.Offset(),
	)
	type row struct {
		Count int
		models.Comment
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []models.Comment{}, 0, nil
	}
	comments := make([]models.Comment, 0, len(outputRows))
	for _, r := range outputRows {
		comments = append(comments, r.Comment)
	}
	return comments, outputRows[0].Count, nil
}

func (m *CommentModel) Insert(ctx context.Context, reviewID, authorID int64, text string) (*models.Comment, error) {
	rows, _ := m.DB.Query(
		ctx,
		`WITH inserted AS (
			INSERT INTO comments (review_id, author_id, text)
			VALUES ($1, $2, $3)
			RETURNING id, review_id, author_id, text, pub_date
		)
		SELECT c.id, c.review_id AS reviewid, c.author_id AS authorid,
			u.username AS author, c.text, c.pub_date AS pubdate
		FROM inserted c JOIN users u ON u.id = c.author_id`,
		reviewID, authorID, text,
	)
	return collectComment(rows)
}

func (m *CommentModel) Update(ctx context.Context, id int64, text string) (*models.Comment, error) {
	rows, _ := m.DB.Query(
		ctx,
		`WITH updated AS (
			UPDATE comments SET text = $1 WHERE id = $2
			RETURNING id, review_id, author_id, text, pub_date
		)
		SELECT c.id, c.review_id AS reviewid, c.author_id AS authorid,
			u.username AS author, c.text, c.pub_date AS pubdate
		FROM updated c JOIN users u ON u.id = c.author_id`,
		text, id,
	)
	return collectComment(rows)
}

func (m *CommentModel) Delete(ctx context.Context, reviewID, id int64) error {
	status, err := m.DB.Exec(ctx, `DELETE FROM comments WHERE review_id = $1 AND id = $2`, reviewID, id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func collectComment(rows pgx.Rows) (*models.Comment, error) {
	comment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}
