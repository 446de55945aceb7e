package infra_postgres_user

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

const selectUsers = `
	SELECT u.id, u.email, u.login, u.name, u.birthday
	FROM users u
`

// neighbours expands to the ids of everyone befriended with the user bound to the given placeholder.
func neighbours(placeholder string) string {
	return fmt.Sprintf(`
		SELECT friend_id AS id FROM user_friends WHERE user_id = %[1]s
		UNION
		SELECT user_id AS id FROM user_friends WHERE friend_id = %[1]s
	`, placeholder)
}

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Store(ctx context.Context, u model.User) (model.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	dto := FromDomain(u)
	if dto.ID == 0 {
		query := `
			INSERT INTO users (email, login, name, birthday)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err = tx.GetContext(ctx, &dto.ID, query, dto.Email, dto.Login, dto.Name, dto.Birthday)
	} else {
		// Blocks implicit inserts until setval below moves the sequence past this id.
		_, err = tx.ExecContext(ctx, `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to lock users: %w", err)
		}
		query := `
			INSERT INTO users (id, email, login, name, birthday)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err = tx.ExecContext(ctx, query, dto.ID, dto.Email, dto.Login, dto.Name, dto.Birthday)
		if err == nil {
			_, err = tx.ExecContext(ctx,
				`SELECT setval(pg_get_serial_sequence('users', 'id'), (SELECT MAX(id) FROM users))`)
		}
	}
	if err != nil {
		switch {
		case pgerr.IsUniqueViolation(err):
			return model.User{}, fmt.Errorf("user %d: %w", dto.ID, model.ErrAlreadyExists)
		case pgerr.IsDataViolation(err):
			return model.User{}, fmt.Errorf("user %d: %w", dto.ID, model.ErrValidation)
		}
		return model.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.User{}, fmt.Errorf("failed to commit user: %w", err)
	}

	stored := dto.ToDomain()
	stored.Friends = []int64{}
	return stored, nil
}

func (r *Repository) Update(ctx context.Context, u model.User) (model.User, error) {
	dto := FromDomain(u)
	query := `
		UPDATE users
		SET email = $2, login = $3, name = $4, birthday = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, dto.ID, dto.Email, dto.Login, dto.Name, dto.Birthday)
	if err != nil {
		if pgerr.IsDataViolation(err) {
			return model.User{}, fmt.Errorf("user %d: %w", dto.ID, model.ErrValidation)
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.User{}, fmt.Errorf("user %d: %w", dto.ID, model.ErrNotFound)
	}

	return r.LoadByID(ctx, dto.ID)
}

func (r *Repository) LoadAll(ctx context.Context) ([]*model.User, error) {
	var usersDB []UserDB
	if err := r.db.SelectContext(ctx, &usersDB, selectUsers+` ORDER BY u.created_seq`); err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return r.withFriends(ctx, usersDB)
}

func (r *Repository) LoadByID(ctx context.Context, ID int64) (model.User, error) {
	var userDB UserDB
	if err := r.db.GetContext(ctx, &userDB, selectUsers+` WHERE u.id = $1`, ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, fmt.Errorf("user %d: %w", ID, model.ErrNotFound)
		}
		return model.User{}, fmt.Errorf("failed to load user by id: %w", err)
	}

	users, err := r.withFriends(ctx, []UserDB{userDB})
	if err != nil {
		return model.User{}, err
	}
	return *users[0], nil
}

func (r *Repository) Exists(ctx context.Context, ID int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, ID); err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}

func (r *Repository) AddFriendship(ctx context.Context, userID, friendID int64) error {
	lo, hi := edge(userID, friendID)
	query := `
		INSERT INTO user_friends (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, lo, hi); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return fmt.Errorf("user %d or %d: %w", userID, friendID, model.ErrNotFound)
		}
		return fmt.Errorf("failed to add friendship: %w", err)
	}
	return nil
}

func (r *Repository) RemoveFriendship(ctx context.Context, userID, friendID int64) error {
	lo, hi := edge(userID, friendID)
	query := `DELETE FROM user_friends WHERE user_id = $1 AND friend_id = $2`
	if _, err := r.db.ExecContext(ctx, query, lo, hi); err != nil {
		return fmt.Errorf("failed to remove friendship: %w", err)
	}
	return nil
}

func (r *Repository) LoadFriends(ctx context.Context, ID int64) ([]*model.User, error) {
	query := selectUsers + ` WHERE u.id IN (` + neighbours("$1") + `) ORDER BY u.id`

	var usersDB []UserDB
	if err := r.db.SelectContext(ctx, &usersDB, query, ID); err != nil {
		return nil, fmt.Errorf("failed to query friends: %w", err)
	}
	return r.withFriends(ctx, usersDB)
}

func (r *Repository) LoadCommonFriends(ctx context.Context, ID, otherID int64) ([]*model.User, error) {
	query := selectUsers + ` WHERE u.id IN (` + neighbours("$1") + `)
		AND u.id IN (` + neighbours("$2") + `)
		ORDER BY u.id`

	var usersDB []UserDB
	if err := r.db.SelectContext(ctx, &usersDB, query, ID, otherID); err != nil {
		return nil, fmt.Errorf("failed to query common friends: %w", err)
	}
	return r.withFriends(ctx, usersDB)
}

func (r *Repository) withFriends(ctx context.Context, usersDB []UserDB) ([]*model.User, error) {
	users := make([]*model.User, len(usersDB))
	if len(usersDB) == 0 {
		return users, nil
	}

	byID := make(map[int64]*model.User, len(usersDB))
	IDs := make([]int64, len(usersDB))
	for i, userDB := range usersDB {
		domainUser := userDB.ToDomain()
		domainUser.Friends = []int64{}
		users[i] = &domainUser
		byID[domainUser.ID] = &domainUser
		IDs[i] = domainUser.ID
	}

	query := `
		SELECT user_id AS owner_id, friend_id FROM user_friends WHERE user_id = ANY($1)
		UNION ALL
		SELECT friend_id AS owner_id, user_id AS friend_id FROM user_friends WHERE friend_id = ANY($1)
		ORDER BY owner_id, friend_id
	`
	var friendsDB []FriendDB
	if err := r.db.SelectContext(ctx, &friendsDB, query, pq.Array(IDs)); err != nil {
		return nil, fmt.Errorf("failed to query user_friends: %w", err)
	}

	for _, f := range friendsDB {
		if u, ok := byID[f.OwnerID]; ok {
			u.Friends = append(u.Friends, f.FriendID)
		}
	}
	return users, nil
}
