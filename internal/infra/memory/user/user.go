package infra_memory_user

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/humanbelnik/filmorate/internal/model"
)

// Repository keeps users and the friendship graph in process memory.
// Friendship is undirected: an edge is always recorded on both ends.
type Repository struct {
	mu      sync.RWMutex
	seq     int64
	order   []int64
	users   map[int64]model.User
	friends map[int64]map[int64]struct{}
}

func New() *Repository {
	return &Repository{
		users:   make(map[int64]model.User),
		friends: make(map[int64]map[int64]struct{}),
	}
}

func (r *Repository) Store(ctx context.Context, u model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == 0 {
		r.seq++
		u.ID = r.seq
	} else {
		if _, ok := r.users[u.ID]; ok {
			return model.User{}, fmt.Errorf("user %d: %w", u.ID, model.ErrAlreadyExists)
		}
		r.seq = max(r.seq, u.ID)
	}

	u.Friends = nil
	r.users[u.ID] = u
	r.order = append(r.order, u.ID)
	r.friends[u.ID] = make(map[int64]struct{})

	return r.view(u.ID), nil
}

func (r *Repository) Update(ctx context.Context, u model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return model.User{}, fmt.Errorf("user %d: %w", u.ID, model.ErrNotFound)
	}

	u.Friends = nil
	r.users[u.ID] = u
	return r.view(u.ID), nil
}

func (r *Repository) LoadAll(ctx context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.views(r.order), nil
}

func (r *Repository) LoadByID(ctx context.Context, ID int64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[ID]; !ok {
		return model.User{}, fmt.Errorf("user %d: %w", ID, model.ErrNotFound)
	}
	return r.view(ID), nil
}

func (r *Repository) Exists(ctx context.Context, ID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[ID]
	return ok, nil
}

func (r *Repository) AddFriendship(ctx context.Context, userID, friendID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensure(userID, friendID); err != nil {
		return err
	}
	r.friends[userID][friendID] = struct{}{}
	r.friends[friendID][userID] = struct{}{}
	return nil
}

func (r *Repository) RemoveFriendship(ctx context.Context, userID, friendID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensure(userID, friendID); err != nil {
		return err
	}
	delete(r.friends[userID], friendID)
	delete(r.friends[friendID], userID)
	return nil
}

func (r *Repository) LoadFriends(ctx context.Context, ID int64) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.ensure(ID); err != nil {
		return nil, err
	}
	return r.views(r.friendIDs(ID)), nil
}

func (r *Repository) LoadCommonFriends(ctx context.Context, ID, otherID int64) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.ensure(ID, otherID); err != nil {
		return nil, err
	}

	other := r.friends[otherID]
	common := make([]int64, 0)
	for _, friendID := range r.friendIDs(ID) {
		if _, ok := other[friendID]; ok {
			common = append(common, friendID)
		}
	}
	return r.views(common), nil
}

func (r *Repository) ensure(IDs ...int64) error {
	for _, ID := range IDs {
		if _, ok := r.users[ID]; !ok {
			return fmt.Errorf("user %d: %w", ID, model.ErrNotFound)
		}
	}
	return nil
}

func (r *Repository) friendIDs(ID int64) []int64 {
	IDs := slices.Sorted(maps.Keys(r.friends[ID]))
	if IDs == nil {
		return []int64{}
	}
	return IDs
}

func (r *Repository) view(ID int64) model.User {
	u := r.users[ID]
	u.Friends = r.friendIDs(ID)
	return u
}

func (r *Repository) views(IDs []int64) []*model.User {
	users := make([]*model.User, 0, len(IDs))
	for _, ID := range IDs {
		u := r.view(ID)
		users = append(users, &u)
	}
	return users
}
