package model

import "time"

// CinemaBirthday is the earliest release date a film may have.
var CinemaBirthday = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

const DefaultPopularCount = 10

type Mpa struct {
	ID   int `validate:"gt=0"`
	Name string
}

type Genre struct {
	ID   int
	Name string
}

type Film struct {
	ID          int64     `validate:"gte=0"`
	Name        string    `validate:"notblank,max=255"`
	Description string    `validate:"max=200"`
	ReleaseDate time.Time `validate:"cinemaepoch"`
	Duration    int       `validate:"gt=0"`
	Mpa         Mpa
	// Order is kept as given, duplicates included.
	Genres []Genre

	// Likes is the number of users who liked the film.
	Likes int
}

func (f Film) GenreIDs() []int {
	ids := make([]int, len(f.Genres))
	for i, g := range f.Genres {
		ids[i] = g.ID
	}
	return ids
}
