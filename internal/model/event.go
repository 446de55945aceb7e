package model

import "time"

type EventType string

const (
	EventFilmCreated   EventType = "FILM_CREATED"
	EventFilmUpdated   EventType = "FILM_UPDATED"
	EventLikeAdded     EventType = "LIKE_ADDED"
	EventLikeRemoved   EventType = "LIKE_REMOVED"
	EventUserCreated   EventType = "USER_CREATED"
	EventUserUpdated   EventType = "USER_UPDATED"
	EventFriendAdded   EventType = "FRIEND_ADDED"
	EventFriendRemoved EventType = "FRIEND_REMOVED"
)

// Event describes a single change made through the services.
// UserID is zero for film-only changes.
type Event struct {
	Type      EventType
	UserID    int64
	EntityID  int64
	Timestamp time.Time
}

func NewEvent(t EventType, userID, entityID int64) Event {
	return Event{
		Type:      t,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}
