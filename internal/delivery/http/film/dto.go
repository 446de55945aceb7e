package http_film

import (
	"time"

	http_common "github.com/humanbelnik/filmorate/internal/delivery/http/common"
	"github.com/humanbelnik/filmorate/internal/model"
)

type MpaDTO struct {
	ID   int    `json:"id" example:"4"`
	Name string `json:"name,omitempty" example:"R"`
}

type GenreDTO struct {
	ID   int    `json:"id" example:"6"`
	Name string `json:"name,omitempty" example:"Action"`
}

// FilmRequestDTO is accepted by both create and update. Update requires id.
type FilmRequestDTO struct {
	ID          int64      `json:"id" example:"1"`
	Name        string     `json:"name" example:"The Matrix"`
	Description string     `json:"description" example:"A hacker learns the nature of his reality"`
	ReleaseDate string     `json:"releaseDate" binding:"required,datetime=2006-01-02" example:"1999-03-31"`
	Duration    int        `json:"duration" example:"136"`
	Mpa         *MpaDTO    `json:"mpa"`
	Genres      []GenreDTO `json:"genres"`
}

type FilmResponseDTO struct {
	ID          int64      `json:"id" example:"1"`
	Name        string     `json:"name" example:"The Matrix"`
	Description string     `json:"description" example:"A hacker learns the nature of his reality"`
	ReleaseDate string     `json:"releaseDate" example:"1999-03-31"`
	Duration    int        `json:"duration" example:"136"`
	Mpa         MpaDTO     `json:"mpa"`
	Genres      []GenreDTO `json:"genres"`
	Likes       int        `json:"likes" example:"3"`
}

func (r *FilmRequestDTO) ConvertToFilm() (model.Film, error) {
	releaseDate, err := time.Parse(http_common.DateLayout, r.ReleaseDate)
	if err != nil {
		return model.Film{}, err
	}

	f := model.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: releaseDate,
		Duration:    r.Duration,
	}
	if r.Mpa != nil {
		f.Mpa = model.Mpa{ID: r.Mpa.ID}
	}
	for _, g := range r.Genres {
		f.Genres = append(f.Genres, model.Genre{ID: g.ID})
	}
	return f, nil
}

func ConvertFromFilm(f model.Film) FilmResponseDTO {
	genres := make([]GenreDTO, len(f.Genres))
	for i, g := range f.Genres {
		genres[i] = GenreDTO{ID: g.ID, Name: g.Name}
	}

	return FilmResponseDTO{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate.Format(http_common.DateLayout),
		Duration:    f.Duration,
		Mpa:         MpaDTO{ID: f.Mpa.ID, Name: f.Mpa.Name},
		Genres:      genres,
		Likes:       f.Likes,
	}
}

func ConvertFromFilmList(films []*model.Film) []FilmResponseDTO {
	out := make([]FilmResponseDTO, len(films))
	for i, f := range films {
		out[i] = ConvertFromFilm(*f)
	}
	return out
}
