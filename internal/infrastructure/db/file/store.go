package file

import (
	"path/filepath"
)

const (
	usersFile  = "stargazing.users.json"
	eventsFile = "stargazing.events.json"
)

// Store bundles the user and event repositories living in one data directory.
type Store struct {
	Users  *UserRepository
	Events *EventRepository
}

// Open prepares both collections under dir.
func Open(dir string) (*Store, error) {
	users, err := OpenCollection[fileUser]("users", filepath.Join(dir, usersFile))
	if err != nil {
		return nil, err
	}
	events, err := OpenCollection[fileEvent]("events", filepath.Join(dir, eventsFile))
	if err != nil {
		return nil, err
	}
	return &Store{
		Users:  NewUserRepository(users),
		Events: NewEventRepository(events),
	}, nil
}

// objectID mirrors the {"$oid": "..."} shape of documents exported from the
// document store so existing data files load unchanged.
type objectID struct {
	OID string `json:"$oid"`
}
