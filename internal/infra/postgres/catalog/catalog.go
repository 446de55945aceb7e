package infra_postgres_catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/humanbelnik/filmorate/internal/model"
	"github.com/jmoiron/sqlx"
)

type entryDB struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Ratings(ctx context.Context) ([]model.Mpa, error) {
	var rows []entryDB
	if err := r.db.SelectContext(ctx, &rows, `SELECT rating_id AS id, name FROM rating ORDER BY rating_id`); err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}

	ratings := make([]model.Mpa, len(rows))
	for i, row := range rows {
		ratings[i] = model.Mpa{ID: row.ID, Name: row.Name}
	}
	return ratings, nil
}

func (r *Repository) RatingByID(ctx context.Context, ID int) (model.Mpa, error) {
	var row entryDB
	if err := r.db.GetContext(ctx, &row, `SELECT rating_id AS id, name FROM rating WHERE rating_id = $1`, ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Mpa{}, fmt.Errorf("mpa %d: %w", ID, model.ErrNotFound)
		}
		return model.Mpa{}, fmt.Errorf("failed to load rating: %w", err)
	}
	return model.Mpa{ID: row.ID, Name: row.Name}, nil
}

func (r *Repository) Genres(ctx context.Context) ([]model.Genre, error) {
	var rows []entryDB
	if err := r.db.SelectContext(ctx, &rows, `SELECT genre_id AS id, name FROM genres ORDER BY genre_id`); err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}

	genres := make([]model.Genre, len(rows))
	for i, row := range rows {
		genres[i] = model.Genre{ID: row.ID, Name: row.Name}
	}
	return genres, nil
}

func (r *Repository) GenreByID(ctx context.Context, ID int) (model.Genre, error) {
	var row entryDB
	if err := r.db.GetContext(ctx, &row, `SELECT genre_id AS id, name FROM genres WHERE genre_id = $1`, ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Genre{}, fmt.Errorf("genre %d: %w", ID, model.ErrNotFound)
		}
		return model.Genre{}, fmt.Errorf("failed to load genre: %w", err)
	}
	return model.Genre{ID: row.ID, Name: row.Name}, nil
}
