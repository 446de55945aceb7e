package infra_postgres_user

import (
	"time"

	"github.com/humanbelnik/filmorate/internal/model"
)

type UserDB struct {
	ID       int64     `db:"id"`
	Email    string    `db:"email"`
	Login    string    `db:"login"`
	Name     string    `db:"name"`
	Birthday time.Time `db:"birthday"`
}

type FriendDB struct {
	OwnerID  int64 `db:"owner_id"`
	FriendID int64 `db:"friend_id"`
}

func (u *UserDB) ToDomain() model.User {
	return model.User{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: dateOnly(u.Birthday),
	}
}

func FromDomain(u model.User) UserDB {
	return UserDB{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: dateOnly(u.Birthday),
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// edge orders a pair the way the user_friends table stores it.
func edge(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}
