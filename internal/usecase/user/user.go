package usecase_user

import (
	"context"
	"errors"
	"fmt"

	"github.com/humanbelnik/filmorate/internal/model"
	"github.com/humanbelnik/filmorate/internal/validation"
)

var (
	ErrInternal = errors.New("internal error")
)

//go:generate mockery --name=Repository --output=./mocks/user/repository --filename=repository.go
type Repository interface {
	// Store assigns the next id when u.ID is zero.
	Store(ctx context.Context, u model.User) (model.User, error)
	Update(ctx context.Context, u model.User) (model.User, error)
	LoadAll(ctx context.Context) ([]*model.User, error)
	LoadByID(ctx context.Context, ID int64) (model.User, error)
	Exists(ctx context.Context, ID int64) (bool, error)

	// AddFriendship and RemoveFriendship change both directions at once.
	AddFriendship(ctx context.Context, userID, friendID int64) error
	RemoveFriendship(ctx context.Context, userID, friendID int64) error
	LoadFriends(ctx context.Context, ID int64) ([]*model.User, error)
	LoadCommonFriends(ctx context.Context, ID, otherID int64) ([]*model.User, error)
}

type Publisher interface {
	Publish(e model.Event)
}

type Usecase struct {
	Repository Repository

	publisher Publisher
}

type Option func(*Usecase)

func WithPublisher(p Publisher) Option {
	return func(u *Usecase) {
		u.publisher = p
	}
}

func New(repository Repository, opts ...Option) *Usecase {
	u := &Usecase{
		Repository: repository,
		publisher:  nopPublisher{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) Create(ctx context.Context, usr model.User) (model.User, error) {
	if err := validation.Struct(usr); err != nil {
		return model.User{}, err
	}

	stored, err := u.Repository.Store(ctx, usr.WithDefaultName())
	if err != nil {
		return model.User{}, wrap(err)
	}

	u.publisher.Publish(model.NewEvent(model.EventUserCreated, stored.ID, stored.ID))
	return stored, nil
}

// Update replaces every field of an existing user except its id and friends.
func (u *Usecase) Update(ctx context.Context, usr model.User) (model.User, error) {
	if err := validation.Struct(usr); err != nil {
		return model.User{}, err
	}

	updated, err := u.Repository.Update(ctx, usr.WithDefaultName())
	if err != nil {
		return model.User{}, wrap(err)
	}

	u.publisher.Publish(model.NewEvent(model.EventUserUpdated, updated.ID, updated.ID))
	return updated, nil
}

func (u *Usecase) LoadAll(ctx context.Context) ([]*model.User, error) {
	users, err := u.Repository.LoadAll(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	return users, nil
}

func (u *Usecase) LoadByID(ctx context.Context, ID int64) (model.User, error) {
	usr, err := u.Repository.LoadByID(ctx, ID)
	if err != nil {
		return model.User{}, wrap(err)
	}
	return usr, nil
}

// AddFriend makes both users friends of each other. Repeating it changes nothing.
func (u *Usecase) AddFriend(ctx context.Context, userID, friendID int64) (model.User, error) {
	if userID == friendID {
		return model.User{}, fmt.Errorf("%w: user %d cannot befriend themselves", model.ErrValidation, userID)
	}
	if err := u.ensureExist(ctx, userID, friendID); err != nil {
		return model.User{}, err
	}

	if err := u.Repository.AddFriendship(ctx, userID, friendID); err != nil {
		return model.User{}, wrap(err)
	}

	u.publisher.Publish(model.NewEvent(model.EventFriendAdded, userID, friendID))
	return u.LoadByID(ctx, userID)
}

// RemoveFriend drops the friendship in both directions. A missing friendship is not an error.
func (u *Usecase) RemoveFriend(ctx context.Context, userID, friendID int64) (model.User, error) {
	if err := u.ensureExist(ctx, userID, friendID); err != nil {
		return model.User{}, err
	}

	if err := u.Repository.RemoveFriendship(ctx, userID, friendID); err != nil {
		return model.User{}, wrap(err)
	}

	u.publisher.Publish(model.NewEvent(model.EventFriendRemoved, userID, friendID))
	return u.LoadByID(ctx, userID)
}

// Friends are ordered by ascending id.
func (u *Usecase) Friends(ctx context.Context, ID int64) ([]*model.User, error) {
	if err := u.ensureExist(ctx, ID); err != nil {
		return nil, err
	}

	friends, err := u.Repository.LoadFriends(ctx, ID)
	if err != nil {
		return nil, wrap(err)
	}
	return friends, nil
}

// CommonFriends returns users who are friends of both, ordered by ascending id.
func (u *Usecase) CommonFriends(ctx context.Context, ID, otherID int64) ([]*model.User, error) {
	if err := u.ensureExist(ctx, ID, otherID); err != nil {
		return nil, err
	}

	common, err := u.Repository.LoadCommonFriends(ctx, ID, otherID)
	if err != nil {
		return nil, wrap(err)
	}
	return common, nil
}

func (u *Usecase) ensureExist(ctx context.Context, IDs ...int64) error {
	for _, ID := range IDs {
		exists, err := u.Repository.Exists(ctx, ID)
		if err != nil {
			return wrap(err)
		}
		if !exists {
			return fmt.Errorf("user %d: %w", ID, model.ErrNotFound)
		}
	}
	return nil
}

func wrap(err error) error {
	if errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrAlreadyExists) ||
		errors.Is(err, model.ErrValidation) {
		return err
	}
	return errors.Join(ErrInternal, err)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}
