package models

import (
	"context"
	"errors"

	"reviewhub/proj/internal/domain/fields"
	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
	"reviewhub/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TitleModel struct {
	DB *pgxpool.Pool
}

// titleRow is the join+aggregate shape shared by Get and List. Rating is
// computed from reviews on every read, never stored.
type titleRow struct {
	ID           int64
	Name         string
	Year         int32
	Description  string
	CategoryID   *int64
	CategoryName *string
	CategorySlug *string
	Rating       *float64
	GenreNames   []string
	GenreSlugs   []string
}

const titleSelect = `
	t.id, t.name, t.year, t.description,
	c.id AS categoryid, c.name AS categoryname, c.slug AS categoryslug,
	AVG(r.score)::float8 AS rating,
	COALESCE((SELECT array_agg(g.name ORDER BY g.name) FROM genres g
		JOIN title_genres tg ON tg.genre_id = g.id WHERE tg.title_id = t.id), '{}') AS genrenames,
	COALESCE((SELECT array_agg(g.slug ORDER BY g.name) FROM genres g
		JOIN title_genres tg ON tg.genre_id = g.id WHERE tg.title_id = t.id), '{}') AS genreslugs`

func (r titleRow) toTitle() models.Title {
	title := models.Title{
		ID:          r.ID,
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Genres:      make([]models.Genre, 0, len(r.GenreNames)),
	}
	if r.CategoryID != nil {
		title.Category = &models.Category{ID: *r.CategoryID, Name: *r.CategoryName, Slug: *r.CategorySlug}
	}
	if r.Rating != nil {
		rating := fields.Rating(*r.Rating)
		title.Rating = &rating
	}
	for i, name := range r.GenreNames {
		title.Genres = append(title.Genres, models.Genre{Name: name, Slug: r.GenreSlugs[i]})
	}
	return title
}

func (m *TitleModel) Get(ctx context.Context, id int64) (*models.Title, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT `+titleSelect+`
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
		LEFT JOIN reviews r ON r.title_id = t.id
		WHERE t.id = $1
		GROUP BY t.id, c.id`,
		id,
	)
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[titleRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	title := row.toTitle()
	return &title, nil
}

func (m *TitleModel) List(ctx context.Context, f filters.TitleFilter) ([]models.Title, int, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT count(*) OVER() AS count, `+titleSelect+`
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
		LEFT JOIN reviews r ON r.title_id = t.id
		WHERE ($1 = '' OR c.slug ILIKE '%'||$1||'%')
		AND ($2 = '' OR EXISTS (SELECT 1 FROM title_genres tg JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug ILIKE '%'||$2||'%'))
		AND ($3 = '' OR t.name ILIKE '%'||$3||'%')
		AND ($4 = 0 OR t.year = $4)
		GROUP BY t.id, c.id
		ORDER BY t.year DESC, t.name ASC
		LIMIT $5 OFFSET $6`,
		f.Category, f.Genre, f.Name, f.Year, f.Limit(), f.Offset(),
	)
	type row struct {
		Count int
		titleRow
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []models.Title{}, 0, nil
	}
	titles := make([]models.Title, 0, len(outputRows))
	for _, r := range outputRows {
		titles = append(titles, r.toTitle())
	}
	return titles, outputRows[0].Count, nil
}

func (m *TitleModel) Insert(ctx context.Context, name string, year int32, description string, categoryID *int64, genreIDs []int64) (int64, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)
	var id int64
	err = tx.QueryRow(
		ctx,
		`INSERT INTO titles (name, year, description, category_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		name, year, description, categoryID,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapConflict(err)
	}
	if err := insertTitleGenres(ctx, tx, id, genreIDs); err != nil {
		return 0, err
	}
	return id, tx.Commit(ctx)
}

func (m *TitleModel) Update(ctx context.Context, id int64, name string, year int32, description string, categoryID *int64, genreIDs []int64) error {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	status, err := tx.Exec(
		ctx,
		`UPDATE titles SET name = $1, year = $2, description = $3, category_id = $4 WHERE id = $5`,
		name, year, description, categoryID, id,
	)
	if err != nil {
		return postgres.MapConflict(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	if genreIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, id); err != nil {
			return err
		}
		if err := insertTitleGenres(ctx, tx, id, genreIDs); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (m *TitleModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func insertTitleGenres(ctx context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			titleID, genreID,
		); err != nil {
			return err
		}
	}
	return nil
}
