package infra_memory_film

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/humanbelnik/filmorate/internal/model"
)

// Repository keeps films and their likes in process memory.
type Repository struct {
	mu    sync.RWMutex
	seq   int64
	order []int64
	films map[int64]model.Film
	likes map[int64]map[int64]struct{}
}

func New() *Repository {
	return &Repository{
		films: make(map[int64]model.Film),
		likes: make(map[int64]map[int64]struct{}),
	}
}

func (r *Repository) Store(ctx context.Context, f model.Film) (model.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.ID == 0 {
		r.seq++
		f.ID = r.seq
	} else {
		if _, ok := r.films[f.ID]; ok {
			return model.Film{}, fmt.Errorf("film %d: %w", f.ID, model.ErrAlreadyExists)
		}
		r.seq = max(r.seq, f.ID)
	}

	f.Likes = 0
	f.Genres = slices.Clone(f.Genres)
	r.films[f.ID] = f
	r.order = append(r.order, f.ID)
	r.likes[f.ID] = make(map[int64]struct{})

	return r.view(f.ID), nil
}

func (r *Repository) Update(ctx context.Context, f model.Film) (model.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[f.ID]; !ok {
		return model.Film{}, fmt.Errorf("film %d: %w", f.ID, model.ErrNotFound)
	}

	f.Genres = slices.Clone(f.Genres)
	r.films[f.ID] = f

	return r.view(f.ID), nil
}

func (r *Repository) LoadAll(ctx context.Context) ([]*model.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	films := make([]*model.Film, 0, len(r.order))
	for _, ID := range r.order {
		f := r.view(ID)
		films = append(films, &f)
	}
	return films, nil
}

func (r *Repository) LoadByID(ctx context.Context, ID int64) (model.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.films[ID]; !ok {
		return model.Film{}, fmt.Errorf("film %d: %w", ID, model.ErrNotFound)
	}
	return r.view(ID), nil
}

func (r *Repository) AddLike(ctx context.Context, filmID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	likes, ok := r.likes[filmID]
	if !ok {
		return fmt.Errorf("film %d: %w", filmID, model.ErrNotFound)
	}
	likes[userID] = struct{}{}
	return nil
}

func (r *Repository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	likes, ok := r.likes[filmID]
	if !ok {
		return fmt.Errorf("film %d: %w", filmID, model.ErrNotFound)
	}
	delete(likes, userID)
	return nil
}

func (r *Repository) Popular(ctx context.Context, count int) ([]*model.Film, error) {
	films, _ := r.LoadAll(ctx)

	// Stable sort keeps insertion order among equally liked films.
	sort.SliceStable(films, func(i, j int) bool {
		return films[i].Likes > films[j].Likes
	})

	if len(films) > count {
		films = films[:count]
	}
	return films, nil
}

// view must be called with r.mu held.
func (r *Repository) view(ID int64) model.Film {
	f := r.films[ID]
	f.Genres = slices.Clone(f.Genres)
	f.Likes = len(r.likes[ID])
	return f
}
