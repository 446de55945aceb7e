package infra_memory_catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/humanbelnik/filmorate/internal/model"
)

var (
	ratings = []model.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
	genres = []model.Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Cartoon"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
)

// Repository serves the fixed rating and genre tables.
type Repository struct{}

func New() *Repository {
	return &Repository{}
}

func (r *Repository) Ratings(ctx context.Context) ([]model.Mpa, error) {
	return slices.Clone(ratings), nil
}

func (r *Repository) RatingByID(ctx context.Context, ID int) (model.Mpa, error) {
	for _, mpa := range ratings {
		if mpa.ID == ID {
			return mpa, nil
		}
	}
	return model.Mpa{}, fmt.Errorf("mpa %d: %w", ID, model.ErrNotFound)
}

func (r *Repository) Genres(ctx context.Context) ([]model.Genre, error) {
	return slices.Clone(genres), nil
}

func (r *Repository) GenreByID(ctx context.Context, ID int) (model.Genre, error) {
	for _, g := range genres {
		if g.ID == ID {
			return g, nil
		}
	}
	return model.Genre{}, fmt.Errorf("genre %d: %w", ID, model.ErrNotFound)
}
