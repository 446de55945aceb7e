package infra_postgres_film

import (
	"time"

	"github.com/humanbelnik/filmorate/internal/model"
)

type FilmDB struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	ReleaseDate time.Time `db:"release_date"`
	Duration    int       `db:"duration"`
	MpaID       int       `db:"mpa_id"`
	MpaName     string    `db:"mpa_name"`
	Likes       int       `db:"likes"`
}

type FilmGenreDB struct {
	FilmID int64  `db:"film_id"`
	ID     int    `db:"id"`
	Name   string `db:"name"`
}

func (f *FilmDB) ToDomain() model.Film {
	return model.Film{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: dateOnly(f.ReleaseDate),
		Duration:    f.Duration,
		Mpa:         model.Mpa{ID: f.MpaID, Name: f.MpaName},
		Likes:       f.Likes,
	}
}

func FromDomain(f model.Film) FilmDB {
	return FilmDB{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: dateOnly(f.ReleaseDate),
		Duration:    f.Duration,
		MpaID:       f.Mpa.ID,
		MpaName:     f.Mpa.Name,
		Likes:       f.Likes,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
