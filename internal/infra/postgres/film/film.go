package infra_postgres_film

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	pgerr "github.com/humanbelnik/filmorate/internal/infra/postgres/pgerr"
	"github.com/humanbelnik/filmorate/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const selectFilms = `
	SELECT f.id, f.name, f.description, f.release_date, f.duration,
		f.rating_id AS mpa_id, r.name AS mpa_name,
		(SELECT COUNT(*) FROM film_likes l WHERE l.film_id = f.id) AS likes
	FROM films f
	JOIN rating r ON r.rating_id = f.rating_id
`

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Store(ctx context.Context, f model.Film) (model.Film, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	dto := FromDomain(f)
	if dto.ID == 0 {
		query := `
			INSERT INTO films (name, description, release_date, duration, rating_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err = tx.GetContext(ctx, &dto.ID, query,
			dto.Name, dto.Description, dto.ReleaseDate, dto.Duration, dto.MpaID)
	} else {
		// Blocks implicit inserts until setval below moves the sequence past this id.
		_, err = tx.ExecContext(ctx, `LOCK TABLE films IN SHARE ROW EXCLUSIVE MODE`)
		if err != nil {
			return model.Film{}, fmt.Errorf("failed to lock films: %w", err)
		}
		query := `
			INSERT INTO films (id, name, description, release_date, duration, rating_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err = tx.ExecContext(ctx, query,
			dto.ID, dto.Name, dto.Description, dto.ReleaseDate, dto.Duration, dto.MpaID)
		if err == nil {
			_, err = tx.ExecContext(ctx,
				`SELECT setval(pg_get_serial_sequence('films', 'id'), (SELECT MAX(id) FROM films))`)
		}
	}
	if err != nil {
		switch {
		case pgerr.IsUniqueViolation(err):
			return model.Film{}, fmt.Errorf("film %d: %w", dto.ID, model.ErrAlreadyExists)
		case pgerr.IsForeignKeyViolation(err):
			return model.Film{}, fmt.Errorf("mpa %d: %w", dto.MpaID, model.ErrNotFound)
		case pgerr.IsDataViolation(err):
			return model.Film{}, fmt.Errorf("film %d: %w", dto.ID, model.ErrValidation)
		}
		return model.Film{}, fmt.Errorf("failed to insert film: %w", err)
	}

	if err := insertGenres(ctx, tx, dto.ID, f.Genres); err != nil {
		return model.Film{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Film{}, fmt.Errorf("failed to commit film: %w", err)
	}

	f.ID = dto.ID
	f.ReleaseDate = dto.ReleaseDate
	f.Likes = 0
	return f, nil
}

func (r *Repository) Update(ctx context.Context, f model.Film) (model.Film, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	dto := FromDomain(f)
	query := `
		UPDATE films
		SET name = $2, description = $3, release_date = $4, duration = $5, rating_id = $6
		WHERE id = $1
	`
	result, err := tx.ExecContext(ctx, query,
		dto.ID, dto.Name, dto.Description, dto.ReleaseDate, dto.Duration, dto.MpaID)
	if err != nil {
		switch {
		case pgerr.IsForeignKeyViolation(err):
			return model.Film{}, fmt.Errorf("mpa %d: %w", dto.MpaID, model.ErrNotFound)
		case pgerr.IsDataViolation(err):
			return model.Film{}, fmt.Errorf("film %d: %w", dto.ID, model.ErrValidation)
		}
		return model.Film{}, fmt.Errorf("failed to update film: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.Film{}, fmt.Errorf("film %d: %w", dto.ID, model.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM film_genre WHERE film_id = $1`, dto.ID); err != nil {
		return model.Film{}, fmt.Errorf("failed to clear film genres: %w", err)
	}
	if err := insertGenres(ctx, tx, dto.ID, f.Genres); err != nil {
		return model.Film{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Film{}, fmt.Errorf("failed to commit film: %w", err)
	}

	return r.LoadByID(ctx, dto.ID)
}

func (r *Repository) LoadAll(ctx context.Context) ([]*model.Film, error) {
	var filmsDB []FilmDB
	if err := r.db.SelectContext(ctx, &filmsDB, selectFilms+` ORDER BY f.created_seq`); err != nil {
		return nil, fmt.Errorf("failed to query films: %w", err)
	}
	return r.withGenres(ctx, filmsDB)
}

func (r *Repository) LoadByID(ctx context.Context, ID int64) (model.Film, error) {
	var filmDB FilmDB
	err := r.db.GetContext(ctx, &filmDB, selectFilms+` WHERE f.id = $1`, ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Film{}, fmt.Errorf("film %d: %w", ID, model.ErrNotFound)
		}
		return model.Film{}, fmt.Errorf("failed to load film by id: %w", err)
	}

	films, err := r.withGenres(ctx, []FilmDB{filmDB})
	if err != nil {
		return model.Film{}, err
	}
	return *films[0], nil
}

func (r *Repository) AddLike(ctx context.Context, filmID, userID int64) error {
	query := `
		INSERT INTO film_likes (film_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, filmID, userID); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return fmt.Errorf("film %d or user %d: %w", filmID, userID, model.ErrNotFound)
		}
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

func (r *Repository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	query := `DELETE FROM film_likes WHERE film_id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, filmID, userID); err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

func (r *Repository) Popular(ctx context.Context, count int) ([]*model.Film, error) {
	var filmsDB []FilmDB
	query := selectFilms + ` ORDER BY likes DESC, f.created_seq ASC LIMIT $1`
	if err := r.db.SelectContext(ctx, &filmsDB, query, count); err != nil {
		return nil, fmt.Errorf("failed to query popular films: %w", err)
	}
	return r.withGenres(ctx, filmsDB)
}

func (r *Repository) withGenres(ctx context.Context, filmsDB []FilmDB) ([]*model.Film, error) {
	films := make([]*model.Film, len(filmsDB))
	if len(filmsDB) == 0 {
		return films, nil
	}

	byID := make(map[int64]*model.Film, len(filmsDB))
	IDs := make([]int64, len(filmsDB))
	for i, filmDB := range filmsDB {
		domainFilm := filmDB.ToDomain()
		films[i] = &domainFilm
		byID[domainFilm.ID] = &domainFilm
		IDs[i] = domainFilm.ID
	}

	query := `
		SELECT fg.film_id, g.genre_id AS id, g.name
		FROM film_genre fg
		JOIN genres g ON g.genre_id = fg.genre_id
		WHERE fg.film_id = ANY($1)
		ORDER BY fg.film_id, fg.position
	`
	var genresDB []FilmGenreDB
	if err := r.db.SelectContext(ctx, &genresDB, query, pq.Array(IDs)); err != nil {
		return nil, fmt.Errorf("failed to query film genres: %w", err)
	}

	for _, g := range genresDB {
		if f, ok := byID[g.FilmID]; ok {
			f.Genres = append(f.Genres, model.Genre{ID: g.ID, Name: g.Name})
		}
	}
	return films, nil
}

func insertGenres(ctx context.Context, tx *sqlx.Tx, filmID int64, genres []model.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	IDs := make([]int64, len(genres))
	for i, g := range genres {
		IDs[i] = int64(g.ID)
	}

	query := `
		INSERT INTO film_genre (film_id, position, genre_id)
		SELECT $1, g.position, g.id
		FROM unnest($2::int[]) WITH ORDINALITY AS g(id, position)
	`
	if _, err := tx.ExecContext(ctx, query, filmID, pq.Array(IDs)); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return fmt.Errorf("genre: %w", model.ErrNotFound)
		}
		return fmt.Errorf("failed to insert film genres: %w", err)
	}
	return nil
}
