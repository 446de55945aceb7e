package infra_postgres_film

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/humanbelnik/filmorate/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type FilmInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db         *sqlx.DB
	mock       sqlmock.Sqlmock
	repository *Repository
	ctx        context.Context
}

var (
	filmColumns  = []string{"id", "name", "description", "release_date", "duration", "mpa_id", "mpa_name", "likes"}
	genreColumns = []string{"film_id", "id", "name"}
	releaseDate  = time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC)
)

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "postgres")
	repository := New(sqlxDB)

	return &resources{
		db:         sqlxDB,
		mock:       mock,
		repository: repository,
		ctx:        context.Background(),
	}
}

func validFilm() model.Film {
	return model.Film{
		Name:        "The Matrix",
		Description: "A hacker learns the truth",
		ReleaseDate: releaseDate,
		Duration:    136,
		Mpa:         model.Mpa{ID: 4, Name: "R"},
		Genres:      []model.Genre{{ID: 6, Name: "Action"}, {ID: 4, Name: "Thriller"}},
	}
}

func (s *FilmInfraUnitSuite) TestStore(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		film        func() model.Film
		setupMocks  func(r *resources, f model.Film)
		expectError bool
		errorType   error
		expectedID  int64
	}{
		{
			name: "Should insert film with generated id and genres",
			film: validFilm,
			setupMocks: func(r *resources, f model.Film) {
				r.mock.ExpectBegin()
				r.mock.ExpectQuery("INSERT INTO films").
					WithArgs(f.Name, f.Description, releaseDate, f.Duration, f.Mpa.ID).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				r.mock.ExpectExec("INSERT INTO film_genre").
					WithArgs(int64(1), pq.Array([]int64{6, 4})).
					WillReturnResult(sqlmock.NewResult(0, 2))
				r.mock.ExpectCommit()
			},
			expectedID: 1,
		},
		{
			name: "Should insert film with explicit id and move sequence",
			film: func() model.Film {
				f := validFilm()
				f.ID = 42
				f.Genres = nil
				return f
			},
			setupMocks: func(r *resources, f model.Film) {
				r.mock.ExpectBegin()
				r.mock.ExpectExec("LOCK TABLE films IN SHARE ROW EXCLUSIVE MODE").
					WillReturnResult(sqlmock.NewResult(0, 0))
				r.mock.ExpectExec("INSERT INTO films").
					WithArgs(int64(42), f.Name, f.Description, releaseDate, f.Duration, f.Mpa.ID).
					WillReturnResult(sqlmock.NewResult(42, 1))
				r.mock.ExpectExec("SELECT setval").
					WillReturnResult(sqlmock.NewResult(0, 1))
				r.mock.ExpectCommit()
			},
			expectedID: 42,
		},
		{
			name: "Should return ErrAlreadyExists on duplicate id",
			film: func() model.Film {
				f := validFilm()
				f.ID = 1
				return f
			},
			setupMocks: func(r *resources, f model.Film) {
				r.mock.ExpectBegin()
				r.mock.ExpectExec("LOCK TABLE films").
					WillReturnResult(sqlmock.NewResult(0, 0))
				r.mock.ExpectExec("INSERT INTO films").
					WillReturnError(&pq.Error{Code: "23505"})
				r.mock.ExpectRollback()
			},
			expectError: true,
			errorType:   model.ErrAlreadyExists,
		},
		{
			name: "Should return ErrValidation when a value overflows its column",
			film: validFilm,
			setupMocks: func(r *resources, f model.Film) {
				r.mock.ExpectBegin()
				r.mock.ExpectQuery("INSERT INTO films").
					WillReturnError(&pq.Error{Code: "22001"})
				r.mock.ExpectRollback()
			},
			expectError: true,
			errorType:   model.ErrValidation,
		},
		{
			name: "Should return ErrNotFound for unknown genre",
			film: validFilm,
			setupMocks: func(r *resources, f model.Film) {
				r.mock.ExpectBegin()
				r.mock.ExpectQuery("INSERT INTO films").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				r.mock.ExpectExec("INSERT INTO film_genre").
					WillReturnError(&pq.Error{Code: "23503"})
				r.mock.ExpectRollback()
			},
			expectError: true,
			errorType:   model.ErrNotFound,
		},
		{
			name: "Should return error when transaction fails",
			film: validFilm,
			setupMocks: func(r *resources, f model.Film) {
				r.mock.ExpectBegin().WillReturnError(errors.New("transaction error"))
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			defer r.db.Close()
			f := tc.film()
			tc.setupMocks(r, f)

			stored, err := r.repository.Store(r.ctx, f)

			if tc.expectError {
				assert.Error(t, err)
				if tc.errorType != nil {
					assert.ErrorIs(t, err, tc.errorType)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedID, stored.ID)
				assert.Equal(t, f.Genres, stored.Genres)
				assert.Zero(t, stored.Likes)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *FilmInfraUnitSuite) TestUpdate(t provider.T) {
	t.Parallel()

	t.Run("Should replace film row and genres", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()
		f := validFilm()
		f.ID = 1
		f.Genres = []model.Genre{{ID: 2, Name: "Drama"}}

		r.mock.ExpectBegin()
		r.mock.ExpectExec("UPDATE films").
			WithArgs(int64(1), f.Name, f.Description, releaseDate, f.Duration, f.Mpa.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		r.mock.ExpectExec("DELETE FROM film_genre").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		r.mock.ExpectExec("INSERT INTO film_genre").
			WithArgs(int64(1), pq.Array([]int64{2})).
			WillReturnResult(sqlmock.NewResult(0, 1))
		r.mock.ExpectCommit()
		r.mock.ExpectQuery("SELECT f.id").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(filmColumns).
				AddRow(1, f.Name, f.Description, releaseDate, f.Duration, 4, "R", 3))
		r.mock.ExpectQuery("SELECT fg.film_id").
			WithArgs(pq.Array([]int64{1})).
			WillReturnRows(sqlmock.NewRows(genreColumns).AddRow(1, 2, "Drama"))

		updated, err := r.repository.Update(r.ctx, f)

		assert.NoError(t, err)
		assert.Equal(t, 3, updated.Likes)
		assert.Equal(t, []model.Genre{{ID: 2, Name: "Drama"}}, updated.Genres)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should return ErrNotFound when no rows affected", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()
		f := validFilm()
		f.ID = 9999

		r.mock.ExpectBegin()
		r.mock.ExpectExec("UPDATE films").WillReturnResult(sqlmock.NewResult(0, 0))
		r.mock.ExpectRollback()

		_, err := r.repository.Update(r.ctx, f)

		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should return ErrValidation on check violation", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()
		f := validFilm()
		f.ID = 1

		r.mock.ExpectBegin()
		r.mock.ExpectExec("UPDATE films").WillReturnError(&pq.Error{Code: "23514"})
		r.mock.ExpectRollback()

		_, err := r.repository.Update(r.ctx, f)

		assert.ErrorIs(t, err, model.ErrValidation)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (s *FilmInfraUnitSuite) TestLoad(t provider.T) {
	t.Parallel()

	t.Run("Should load all films with genres in position order", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectQuery("SELECT f.id").
			WillReturnRows(sqlmock.NewRows(filmColumns).
				AddRow(1, "one", "", releaseDate, 90, 1, "G", 0).
				AddRow(2, "two", "", releaseDate, 100, 3, "PG-13", 2))
		r.mock.ExpectQuery("SELECT fg.film_id").
			WithArgs(pq.Array([]int64{1, 2})).
			WillReturnRows(sqlmock.NewRows(genreColumns).
				AddRow(2, 6, "Action").
				AddRow(2, 1, "Comedy").
				AddRow(2, 6, "Action"))

		films, err := r.repository.LoadAll(r.ctx)

		assert.NoError(t, err)
		assert.Len(t, films, 2)
		assert.Empty(t, films[0].Genres)
		assert.Equal(t, []int{6, 1, 6}, films[1].GenreIDs())
		assert.Equal(t, "PG-13", films[1].Mpa.Name)
		assert.Equal(t, 2, films[1].Likes)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should return empty list without genre query", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectQuery("SELECT f.id").WillReturnRows(sqlmock.NewRows(filmColumns))

		films, err := r.repository.LoadAll(r.ctx)

		assert.NoError(t, err)
		assert.Empty(t, films)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should return ErrNotFound for unknown id", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectQuery("SELECT f.id").
			WithArgs(int64(9999)).
			WillReturnRows(sqlmock.NewRows(filmColumns))

		_, err := r.repository.LoadByID(r.ctx, 9999)

		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (s *FilmInfraUnitSuite) TestLikes(t provider.T) {
	t.Parallel()

	t.Run("Should ignore repeated like", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectExec("INSERT INTO film_likes").
			WithArgs(int64(1), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, r.repository.AddLike(r.ctx, 1, 2))
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should translate foreign key violation to ErrNotFound", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectExec("INSERT INTO film_likes").WillReturnError(&pq.Error{Code: "23503"})

		assert.ErrorIs(t, r.repository.AddLike(r.ctx, 1, 9999), model.ErrNotFound)
	})

	t.Run("Should delete like", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectExec("DELETE FROM film_likes").
			WithArgs(int64(1), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, r.repository.RemoveLike(r.ctx, 1, 2))
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (s *FilmInfraUnitSuite) TestPopular(t provider.T) {
	t.Parallel()

	t.Run("Should pass limit and keep database order", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectQuery("ORDER BY likes DESC, f.created_seq ASC LIMIT").
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows(filmColumns).
				AddRow(2, "F2", "", releaseDate, 90, 1, "G", 3).
				AddRow(1, "F1", "", releaseDate, 90, 1, "G", 0))
		r.mock.ExpectQuery("SELECT fg.film_id").
			WithArgs(pq.Array([]int64{2, 1})).
			WillReturnRows(sqlmock.NewRows(genreColumns))

		films, err := r.repository.Popular(r.ctx, 2)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), films[0].ID)
		assert.Equal(t, int64(1), films[1].ID)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should return error when query fails", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectQuery("SELECT f.id").WillReturnError(errors.New("database error"))

		_, err := r.repository.Popular(r.ctx, 10)

		assert.ErrorContains(t, err, "database error")
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(FilmInfraUnitSuite))
}
