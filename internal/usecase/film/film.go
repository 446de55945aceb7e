package usecase_film

import (
	"context"
	"errors"
	"fmt"

	"github.com/humanbelnik/filmorate/internal/model"
	"github.com/humanbelnik/filmorate/internal/validation"
)

var (
	ErrInternal = errors.New("internal error")
)

//go:generate mockery --name=Repository --output=./mocks/film/repository --filename=repository.go
type Repository interface {
	// Store assigns the next id when f.ID is zero.
	Store(ctx context.Context, f model.Film) (model.Film, error)
	Update(ctx context.Context, f model.Film) (model.Film, error)
	LoadAll(ctx context.Context) ([]*model.Film, error)
	LoadByID(ctx context.Context, ID int64) (model.Film, error)
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	// Popular orders by like count desc, then by id asc.
	Popular(ctx context.Context, count int) ([]*model.Film, error)
}

//go:generate mockery --name=UserRepository --output=./mocks/film/users --filename=users.go
type UserRepository interface {
	Exists(ctx context.Context, ID int64) (bool, error)
}

//go:generate mockery --name=Catalog --output=./mocks/film/catalog --filename=catalog.go
type Catalog interface {
	RatingByID(ctx context.Context, ID int) (model.Mpa, error)
	GenreByID(ctx context.Context, ID int) (model.Genre, error)
}

// PopularCache holds popular lists per count. Load also reports the cache
// generation it read; Store must drop the list if Invalidate ran since then.
type PopularCache interface {
	Load(ctx context.Context, count int) (films []*model.Film, generation int64, ok bool)
	Store(ctx context.Context, generation int64, count int, films []*model.Film)
	Invalidate(ctx context.Context)
}

type Publisher interface {
	Publish(e model.Event)
}

type Usecase struct {
	Repository     Repository
	UserRepository UserRepository
	Catalog        Catalog

	cache     PopularCache
	publisher Publisher
}

type Option func(*Usecase)

func WithPopularCache(c PopularCache) Option {
	return func(u *Usecase) {
		u.cache = c
	}
}

func WithPublisher(p Publisher) Option {
	return func(u *Usecase) {
		u.publisher = p
	}
}

func New(
	repository Repository,
	userRepository UserRepository,
	catalog Catalog,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		Repository:     repository,
		UserRepository: userRepository,
		Catalog:        catalog,
		cache:          nopCache{},
		publisher:      nopPublisher{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) Create(ctx context.Context, f model.Film) (model.Film, error) {
	f, err := u.prepare(ctx, f)
	if err != nil {
		return model.Film{}, err
	}

	stored, err := u.Repository.Store(ctx, f)
	if err != nil {
		return model.Film{}, wrap(err)
	}

	u.cache.Invalidate(ctx)
	u.publisher.Publish(model.NewEvent(model.EventFilmCreated, 0, stored.ID))
	return stored, nil
}

// Update replaces every field of an existing film except its id and likes.
func (u *Usecase) Update(ctx context.Context, f model.Film) (model.Film, error) {
	f, err := u.prepare(ctx, f)
	if err != nil {
		return model.Film{}, err
	}

	updated, err := u.Repository.Update(ctx, f)
	if err != nil {
		return model.Film{}, wrap(err)
	}

	u.cache.Invalidate(ctx)
	u.publisher.Publish(model.NewEvent(model.EventFilmUpdated, 0, updated.ID))
	return updated, nil
}

func (u *Usecase) LoadAll(ctx context.Context) ([]*model.Film, error) {
	films, err := u.Repository.LoadAll(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	return films, nil
}

func (u *Usecase) LoadByID(ctx context.Context, ID int64) (model.Film, error) {
	f, err := u.Repository.LoadByID(ctx, ID)
	if err != nil {
		return model.Film{}, wrap(err)
	}
	return f, nil
}

// AddLike is idempotent: a second like from the same user changes nothing.
func (u *Usecase) AddLike(ctx context.Context, filmID, userID int64) (model.Film, error) {
	if err := u.ensureParticipants(ctx, filmID, userID); err != nil {
		return model.Film{}, err
	}

	if err := u.Repository.AddLike(ctx, filmID, userID); err != nil {
		return model.Film{}, wrap(err)
	}

	u.cache.Invalidate(ctx)
	u.publisher.Publish(model.NewEvent(model.EventLikeAdded, userID, filmID))
	return u.LoadByID(ctx, filmID)
}

// RemoveLike does not fail when the like is absent.
func (u *Usecase) RemoveLike(ctx context.Context, filmID, userID int64) (model.Film, error) {
	if err := u.ensureParticipants(ctx, filmID, userID); err != nil {
		return model.Film{}, err
	}

	if err := u.Repository.RemoveLike(ctx, filmID, userID); err != nil {
		return model.Film{}, wrap(err)
	}

	u.cache.Invalidate(ctx)
	u.publisher.Publish(model.NewEvent(model.EventLikeRemoved, userID, filmID))
	return u.LoadByID(ctx, filmID)
}

// Popular returns at most count films, most liked first. Ties keep creation order.
func (u *Usecase) Popular(ctx context.Context, count int) ([]*model.Film, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", model.ErrValidation, count)
	}

	films, generation, ok := u.cache.Load(ctx, count)
	if ok {
		return films, nil
	}

	films, err := u.Repository.Popular(ctx, count)
	if err != nil {
		return nil, wrap(err)
	}

	u.cache.Store(ctx, generation, count, films)
	return films, nil
}

// prepare validates f and replaces rating and genre references with catalog entries.
func (u *Usecase) prepare(ctx context.Context, f model.Film) (model.Film, error) {
	if err := validation.Struct(f); err != nil {
		return model.Film{}, err
	}

	mpa, err := u.Catalog.RatingByID(ctx, f.Mpa.ID)
	if err != nil {
		return model.Film{}, wrap(err)
	}
	f.Mpa = mpa

	if len(f.Genres) == 0 {
		f.Genres = nil
		return f, nil
	}

	genres := make([]model.Genre, 0, len(f.Genres))
	for _, g := range f.Genres {
		genre, err := u.Catalog.GenreByID(ctx, g.ID)
		if err != nil {
			return model.Film{}, wrap(err)
		}
		genres = append(genres, genre)
	}
	f.Genres = genres

	return f, nil
}

func (u *Usecase) ensureParticipants(ctx context.Context, filmID, userID int64) error {
	if _, err := u.Repository.LoadByID(ctx, filmID); err != nil {
		return wrap(err)
	}

	exists, err := u.UserRepository.Exists(ctx, userID)
	if err != nil {
		return wrap(err)
	}
	if !exists {
		return fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
	}
	return nil
}

func wrap(err error) error {
	if errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrAlreadyExists) ||
		errors.Is(err, model.ErrValidation) {
		return err
	}
	return errors.Join(ErrInternal, err)
}

type nopCache struct{}

func (nopCache) Load(context.Context, int) ([]*model.Film, int64, bool) { return nil, 0, false }
func (nopCache) Store(context.Context, int64, int, []*model.Film)       {}
func (nopCache) Invalidate(context.Context)                             {}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}
