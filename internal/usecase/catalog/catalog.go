package usecase_catalog

import (
	"context"
	"errors"

	"github.com/humanbelnik/filmorate/internal/model"
)

var (
	ErrInternal = errors.New("internal error")
)

// Repository exposes the fixed rating and genre reference tables.
//
//go:generate mockery --name=Repository --output=./mocks/catalog/repository --filename=repository.go
type Repository interface {
	Ratings(ctx context.Context) ([]model.Mpa, error)
	RatingByID(ctx context.Context, ID int) (model.Mpa, error)
	Genres(ctx context.Context) ([]model.Genre, error)
	GenreByID(ctx context.Context, ID int) (model.Genre, error)
}

type Usecase struct {
	Repository Repository
}

func New(repository Repository) *Usecase {
	return &Usecase{
		Repository: repository,
	}
}

func (u *Usecase) Ratings(ctx context.Context) ([]model.Mpa, error) {
	ratings, err := u.Repository.Ratings(ctx)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return ratings, nil
}

func (u *Usecase) RatingByID(ctx context.Context, ID int) (model.Mpa, error) {
	mpa, err := u.Repository.RatingByID(ctx, ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Mpa{}, err
		}
		return model.Mpa{}, errors.Join(ErrInternal, err)
	}
	return mpa, nil
}

func (u *Usecase) Genres(ctx context.Context) ([]model.Genre, error) {
	genres, err := u.Repository.Genres(ctx)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return genres, nil
}

func (u *Usecase) GenreByID(ctx context.Context, ID int) (model.Genre, error) {
	genre, err := u.Repository.GenreByID(ctx, ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Genre{}, err
		}
		return model.Genre{}, errors.Join(ErrInternal, err)
	}
	return genre, nil
}
