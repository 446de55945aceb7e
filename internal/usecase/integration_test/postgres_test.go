//go:build integration
// +build integration

package integrationtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	infra_postgres_catalog "github.com/humanbelnik/filmorate/internal/infra/postgres/catalog"
	infra_postgres_film "github.com/humanbelnik/filmorate/internal/infra/postgres/film"
	infra_pg_init "github.com/humanbelnik/filmorate/internal/infra/postgres/init"
	infra_postgres_user "github.com/humanbelnik/filmorate/internal/infra/postgres/user"
	"github.com/humanbelnik/filmorate/internal/model"
	usecase_film "github.com/humanbelnik/filmorate/internal/usecase/film"
	usecase_user "github.com/humanbelnik/filmorate/internal/usecase/user"
	"github.com/jmoiron/sqlx"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	db    *sqlx.DB
	films *usecase_film.Usecase
	users *usecase_user.Usecase
}

func (s *PostgresIntegrationSuite) BeforeAll(t provider.T) {
	s.db = infra_pg_init.MustEstablishConn(getConfig().Postgres)
	t.Require().NoError(infra_pg_init.Migrate(context.Background(), s.db))

	userRepository := infra_postgres_user.New(s.db)
	s.films = usecase_film.New(infra_postgres_film.New(s.db), userRepository, infra_postgres_catalog.New(s.db))
	s.users = usecase_user.New(userRepository)
}

func (s *PostgresIntegrationSuite) BeforeEach(t provider.T) {
	_, err := s.db.Exec(`TRUNCATE film_likes, user_friends, film_genre, films, users RESTART IDENTITY`)
	t.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) AfterAll(t provider.T) {
	_ = s.db.Close()
}

func (s *PostgresIntegrationSuite) createUsers(t provider.T, n int) []model.User {
	users := make([]model.User, 0, n)
	for i := 0; i < n; i++ {
		u, err := s.users.Create(context.Background(), model.User{
			Email:    fmt.Sprintf("u%d@mail.io", i),
			Login:    fmt.Sprintf("u%d", i),
			Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		t.Require().NoError(err)
		users = append(users, u)
	}
	return users
}

func (s *PostgresIntegrationSuite) createFilm(t provider.T, name string, genres ...int) model.Film {
	f := model.Film{
		Name:        name,
		Description: "integration",
		ReleaseDate: time.Date(2001, 9, 1, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Mpa:         model.Mpa{ID: 2},
	}
	for _, g := range genres {
		f.Genres = append(f.Genres, model.Genre{ID: g})
	}

	stored, err := s.films.Create(context.Background(), f)
	t.Require().NoError(err)
	return stored
}

func (s *PostgresIntegrationSuite) TestIntegrationFilmRoundTrip(t provider.T) {
	stored := s.createFilm(t, "Spirited Away", 3, 2, 3)

	loaded, err := s.films.LoadByID(context.Background(), stored.ID)

	t.Require().NoError(err)
	t.Assert().Equal(model.Mpa{ID: 2, Name: "PG"}, loaded.Mpa)
	t.Assert().Equal([]int{3, 2, 3}, loaded.GenreIDs())
	t.Assert().True(loaded.ReleaseDate.Equal(stored.ReleaseDate))
}

func (s *PostgresIntegrationSuite) TestIntegrationPopular(t provider.T) {
	ctx := context.Background()
	users := s.createUsers(t, 3)
	f1 := s.createFilm(t, "F1")
	f2 := s.createFilm(t, "F2")

	for _, u := range users {
		_, err := s.films.AddLike(ctx, f2.ID, u.ID)
		t.Require().NoError(err)
	}
	_, err := s.films.AddLike(ctx, f1.ID, users[0].ID)
	t.Require().NoError(err)
	_, err = s.films.AddLike(ctx, f1.ID, users[0].ID)
	t.Require().NoError(err)

	popular, err := s.films.Popular(ctx, 10)

	t.Require().NoError(err)
	t.Require().Len(popular, 2)
	t.Assert().Equal(f2.ID, popular[0].ID)
	t.Assert().Equal(3, popular[0].Likes)
	t.Assert().Equal(f1.ID, popular[1].ID)
	t.Assert().Equal(1, popular[1].Likes)
}

func (s *PostgresIntegrationSuite) TestIntegrationPopularTiesKeepInsertionOrder(t provider.T) {
	ctx := context.Background()
	for _, ID := range []int64{10, 5} {
		_, err := s.films.Create(ctx, model.Film{
			ID:          ID,
			Name:        fmt.Sprintf("F%d", ID),
			ReleaseDate: time.Date(2001, 9, 1, 0, 0, 0, 0, time.UTC),
			Duration:    100,
			Mpa:         model.Mpa{ID: 1},
		})
		t.Require().NoError(err)
	}

	all, err := s.films.LoadAll(ctx)
	t.Require().NoError(err)
	popular, err := s.films.Popular(ctx, 10)
	t.Require().NoError(err)

	t.Assert().Equal([]int64{10, 5}, []int64{all[0].ID, all[1].ID})
	t.Assert().Equal([]int64{10, 5}, []int64{popular[0].ID, popular[1].ID})
}

func (s *PostgresIntegrationSuite) TestIntegrationFriends(t provider.T) {
	ctx := context.Background()
	users := s.createUsers(t, 3)

	_, err := s.users.AddFriend(ctx, users[0].ID, users[2].ID)
	t.Require().NoError(err)
	_, err = s.users.AddFriend(ctx, users[1].ID, users[2].ID)
	t.Require().NoError(err)

	third, err := s.users.LoadByID(ctx, users[2].ID)
	t.Require().NoError(err)
	t.Assert().Equal([]int64{users[0].ID, users[1].ID}, third.Friends)

	common, err := s.users.CommonFriends(ctx, users[0].ID, users[1].ID)
	t.Require().NoError(err)
	t.Require().Len(common, 1)
	t.Assert().Equal(users[2].ID, common[0].ID)

	_, err = s.users.RemoveFriend(ctx, users[2].ID, users[0].ID)
	t.Require().NoError(err)

	friends, err := s.users.Friends(ctx, users[0].ID)
	t.Require().NoError(err)
	t.Assert().Empty(friends)
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.RunSuite(t, new(PostgresIntegrationSuite))
}
