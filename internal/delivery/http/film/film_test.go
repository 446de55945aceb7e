package http_film

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	infra_memory_catalog "github.com/humanbelnik/filmorate/internal/infra/memory/catalog"
	infra_memory_film "github.com/humanbelnik/filmorate/internal/infra/memory/film"
	infra_memory_user "github.com/humanbelnik/filmorate/internal/infra/memory/user"
	"github.com/humanbelnik/filmorate/internal/model"
	usecase_film "github.com/humanbelnik/filmorate/internal/usecase/film"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router *gin.Engine
	users  *infra_memory_user.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := infra_memory_user.New()
	uc := usecase_film.New(infra_memory_film.New(), users, infra_memory_catalog.New())

	router := gin.New()
	New(uc, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))).RegisterRoutes(&router.RouterGroup)

	return &fixture{router: router, users: users}
}

func (f *fixture) seedUsers(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := f.users.Store(context.Background(), model.User{
			Email:    fmt.Sprintf("u%d@mail.io", i),
			Login:    fmt.Sprintf("u%d", i),
			Name:     fmt.Sprintf("u%d", i),
			Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func matrix() map[string]any {
	return map[string]any{
		"name":        "The Matrix",
		"description": "A hacker learns the nature of his reality",
		"releaseDate": "1999-03-31",
		"duration":    136,
		"mpa":         map[string]any{"id": 4},
		"genres":      []map[string]any{{"id": 6}, {"id": 4}},
	}
}

func TestCreateFilm(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/films", matrix())

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	film := decode[FilmResponseDTO](t, w)
	assert.Equal(t, int64(1), film.ID)
	assert.Equal(t, "1999-03-31", film.ReleaseDate)
	assert.Equal(t, MpaDTO{ID: 4, Name: "R"}, film.Mpa)
	assert.Equal(t, []GenreDTO{{ID: 6, Name: "Action"}, {ID: 4, Name: "Thriller"}}, film.Genres)
	assert.Zero(t, film.Likes)
}

func TestCreateFilmRejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(body map[string]any)
		want   int
	}{
		{name: "before cinema birthday", mutate: func(b map[string]any) { b["releaseDate"] = "1895-12-27" }, want: http.StatusBadRequest},
		{name: "malformed date", mutate: func(b map[string]any) { b["releaseDate"] = "31.03.1999" }, want: http.StatusBadRequest},
		{name: "missing date", mutate: func(b map[string]any) { delete(b, "releaseDate") }, want: http.StatusBadRequest},
		{name: "blank name", mutate: func(b map[string]any) { b["name"] = " " }, want: http.StatusBadRequest},
		{name: "negative duration", mutate: func(b map[string]any) { b["duration"] = -1 }, want: http.StatusBadRequest},
		{name: "missing mpa", mutate: func(b map[string]any) { delete(b, "mpa") }, want: http.StatusBadRequest},
		{name: "negative id", mutate: func(b map[string]any) { b["id"] = -7 }, want: http.StatusBadRequest},
		{name: "name too long", mutate: func(b map[string]any) { b["name"] = strings.Repeat("m", 256) }, want: http.StatusBadRequest},
		{name: "unknown mpa", mutate: func(b map[string]any) { b["mpa"] = map[string]any{"id": 99} }, want: http.StatusNotFound},
		{name: "unknown genre", mutate: func(b map[string]any) { b["genres"] = []map[string]any{{"id": 99}} }, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			body := matrix()
			tt.mutate(body)

			w := f.do(t, http.MethodPost, "/films", body)

			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestCreateFilmMalformedJSON(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/films", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateFilm(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/films", matrix()).Code)

	body := matrix()
	body["id"] = 1
	body["name"] = "The Matrix Reloaded"
	body["genres"] = []map[string]any{}

	w := f.do(t, http.MethodPut, "/films", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	film := decode[FilmResponseDTO](t, w)
	assert.Equal(t, "The Matrix Reloaded", film.Name)
	assert.Empty(t, film.Genres)

	t.Run("unknown id", func(t *testing.T) {
		body["id"] = 9999
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPut, "/films", body).Code)
	})

	t.Run("missing id", func(t *testing.T) {
		delete(body, "id")
		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/films", body).Code)
	})
}

func TestGetFilm(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/films", matrix()).Code)

	w := f.do(t, http.MethodGet, "/films/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "The Matrix", decode[FilmResponseDTO](t, w).Name)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/films/9999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/films/abc", nil).Code)
}

func TestGetFilmsEmpty(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/films", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestLikes(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, 2)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/films", matrix()).Code)

	w := f.do(t, http.MethodPut, "/films/1/like/1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[FilmResponseDTO](t, w).Likes)

	w = f.do(t, http.MethodPut, "/films/1/like/1", nil)
	assert.Equal(t, 1, decode[FilmResponseDTO](t, w).Likes)

	w = f.do(t, http.MethodDelete, "/films/1/like/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[FilmResponseDTO](t, w).Likes)

	w = f.do(t, http.MethodDelete, "/films/1/like/1", nil)
	assert.Equal(t, 0, decode[FilmResponseDTO](t, w).Likes)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPut, "/films/1/like/9999", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPut, "/films/9999/like/1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/films/1/like/-1", nil).Code)
}

func TestPopular(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, 3)
	for _, name := range []string{"F1", "F2", "F3"} {
		body := matrix()
		body["name"] = name
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/films", body).Code)
	}
	for _, userID := range []int{1, 2, 3} {
		require.Equal(t, http.StatusOK, f.do(t, http.MethodPut, fmt.Sprintf("/films/2/like/%d", userID), nil).Code)
	}
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/films/1/like/1", nil).Code)

	w := f.do(t, http.MethodGet, "/films/popular?count=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	films := decode[[]FilmResponseDTO](t, w)
	require.Len(t, films, 2)
	assert.Equal(t, "F2", films[0].Name)
	assert.Equal(t, 3, films[0].Likes)
	assert.Equal(t, "F1", films[1].Name)

	w = f.do(t, http.MethodGet, "/films/popular", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]FilmResponseDTO](t, w), 3)

	for _, query := range []string{"count=0", "count=-3", "count=abc"} {
		t.Run(query, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/films/popular?"+query, nil).Code)
		})
	}
}
