package models

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
	"reviewhub/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// refModel is shared by categories and genres: both are plain
// {name, unique slug} reference tables with identical access patterns.
type refModel struct {
	DB    *pgxpool.Pool
	table string
}

type CategoryModel struct {
	refModel
}

type GenreModel struct {
	refModel
}

type refRow struct {
	ID   int64
	Name string
	Slug string
}

func (m *refModel) List(ctx context.Context, search string, f filters.Filters) ([]refRow, int, error) {
	query := fmt.Sprintf(
		`SELECT count(*) OVER() AS count, id, name, slug FROM %s
		WHERE ($1 = '' OR name ILIKE '%%'||$1||'%%')
		ORDER BY name ASC LIMIT $2 OFFSET $3`,
		m.table,
	)
	rows, _ := m.DB.Query(ctx, query, search, f.Limit(), f.Offset())
	type row struct {
		Count int
		refRow
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []refRow{}, 0, nil
	}
	items := make([]refRow, 0, len(outputRows))
	for _, r := range outputRows {
		items = append(items, r.refRow)
	}
	return items, outputRows[0].Count, nil
}

func (m *refModel) GetBySlug(ctx context.Context, slug string) (*refRow, error) {
	rows, _ := m.DB.Query(
		ctx,
		fmt.Sprintf(`SELECT id, name, slug FROM %s WHERE slug = $1`, m.table),
		slug,
	)
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[refRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (m *refModel) Insert(ctx context.Context, name, slug string) (*refRow, error) {
	rows, _ := m.DB.Query(
		ctx,
		fmt.Sprintf(`INSERT INTO %s (name, slug) VALUES ($1, $2) RETURNING id, name, slug`, m.table),
		name, slug,
	)
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[refRow])
	if err != nil {
		return nil, postgres.MapConflict(err)
	}
	return &item, nil
}

func (m *refModel) Delete(ctx context.Context, slug string) error {
	status, err := m.DB.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE slug = $1`, m.table), slug)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *CategoryModel) List(ctx context.Context, search string, f filters.Filters) ([]models.Category, int, error) {
	rows, total, err := m.refModel.List(ctx, search, f)
	if err != nil {
		return nil, 0, err
	}
	categories := make([]models.Category, 0, len(rows))
	for _, r := range rows {
		categories = append(categories, models.Category(r))
	}
	return categories, total, nil
}

func (m *CategoryModel) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row, err := m.refModel.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	category := models.Category(*row)
	return &category, nil
}

func (m *CategoryModel) Insert(ctx context.Context, name, slug string) (*models.Category, error) {
	row, err := m.refModel.Insert(ctx, name, slug)
	if err != nil {
		return nil, err
	}
	category := models.Category(*row)
	return &category, nil
}

func (m *GenreModel) List(ctx context.Context, search string, f filters.Filters) ([]models.Genre, int, error) {
	rows, total, err := m.refModel.List(ctx, search, f)
	if err != nil {
		return nil, 0, err
	}
	genres := make([]models.Genre, 0, len(rows))
	for _, r := range rows {
		genres = append(genres, models.Genre(r))
	}
	return genres, total, nil
}

func (m *GenreModel) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	row, err := m.refModel.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	genre := models.Genre(*row)
	return &genre, nil
}

func (m *GenreModel) Insert(ctx context.Context, name, slug string) (*models.Genre, error) {
	row, err := m.refModel.Insert(ctx, name, slug)
	if err != nil {
		return nil, err
	}
	genre := models.Genre(*row)
	return &genre, nil
}
