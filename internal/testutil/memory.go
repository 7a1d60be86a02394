// Package testutil provides in-memory stores that behave like the gorm
// repositories, for service and handler tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/repository"
)

// Store holds all tables behind one mutex. Users, Events and Availabilities
// return views that satisfy the service store interfaces.
type Store struct {
	mu sync.Mutex

	users        map[string]models.User
	following    map[string][]string
	followers    map[string][]string
	events       map[string]models.Event
	participants map[string][]string
	admins       map[string][]string
	avails       map[string]map[string]models.Availability
}

func NewStore() *Store {
	return &Store{
		users:        map[string]models.User{},
		following:    map[string][]string{},
		followers:    map[string][]string{},
		events:       map[string]models.Event{},
		participants: map[string][]string{},
		admins:       map[string][]string{},
		avails:       map[string]map[string]models.Availability{},
	}
}

func (s *Store) Users() *UserStore                  { return &UserStore{s: s} }
func (s *Store) Events() *EventStore                { return &EventStore{s: s} }
func (s *Store) Availabilities() *AvailabilityStore { return &AvailabilityStore{s: s} }

// Tx runs fn directly; the in-memory tables have no rollback.
type Tx struct{}

func (Tx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type UserStore struct {
	s *Store
}

func (u *UserStore) Create(_ context.Context, user *models.User) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.ID == user.ID || existing.Email == user.Email || existing.UserCode == user.UserCode {
			return repository.ErrDuplicateKey
		}
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (u *UserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	return u.find(func(user models.User) bool { return user.ID == id })
}

func (u *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return u.find(func(user models.User) bool { return user.Email == email })
}

func (u *UserStore) GetByUserCode(_ context.Context, code string) (*models.User, error) {
	return u.find(func(user models.User) bool { return user.UserCode == code })
}

func (u *UserStore) find(match func(models.User) bool) (*models.User, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if match(user) {
			hydrated := s.hydrateUser(user)
			return &hydrated, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) hydrateUser(user models.User) models.User {
	user.EventIDs = []string{}
	for eventID, members := range s.participants {
		if contains(members, user.ID) {
			user.EventIDs = append(user.EventIDs, eventID)
		}
	}
	sort.Strings(user.EventIDs)

	user.AvailabilityIDs = []string{}
	for id := range s.avails[user.ID] {
		user.AvailabilityIDs = append(user.AvailabilityIDs, id)
	}
	sort.Strings(user.AvailabilityIDs)

	user.FollowingIDs = append([]string{}, s.following[user.ID]...)
	user.FollowerIDs = append([]string{}, s.followers[user.ID]...)
	return user
}

func (u *UserStore) UserCodeExists(_ context.Context, code string) (bool, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.UserCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (u *UserStore) Update(_ context.Context, user *models.User) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, other := range s.users {
		if other.ID != user.ID && other.UserCode == user.UserCode {
			return repository.ErrDuplicateKey
		}
	}
	stored.Username = user.Username
	stored.Password = user.Password
	stored.UserCode = user.UserCode
	stored.Confirmed = user.Confirmed
	stored.ExpirationDate = user.ExpirationDate
	stored.UpdatedAt = time.Now()
	s.users[user.ID] = stored
	return nil
}

func (u *UserStore) Delete(_ context.Context, id string) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (u *UserStore) FindExpiredUnconfirmed(_ context.Context, now time.Time, limit int) ([]string, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []string{}
	for _, user := range s.users {
		if user.Expired(now) {
			ids = append(ids, user.ID)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (u *UserStore) AddFollowing(_ context.Context, userID, followingID string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.following[userID] = addToSet(u.s.following[userID], followingID)
	return nil
}

func (u *UserStore) RemoveFollowing(_ context.Context, userID, followingID string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.following[userID] = removeFromSet(u.s.following[userID], followingID)
	return nil
}

func (u *UserStore) AddFollower(_ context.Context, userID, followerID string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.followers[userID] = addToSet(u.s.followers[userID], followerID)
	return nil
}

func (u *UserStore) RemoveFollower(_ context.Context, userID, followerID string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.followers[userID] = removeFromSet(u.s.followers[userID], followerID)
	return nil
}

func (u *UserStore) RemoveFollowEdges(_ context.Context, userID string) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.following, userID)
	delete(s.followers, userID)
	for id, ids := range s.following {
		s.following[id] = removeFromSet(ids, userID)
	}
	for id, ids := range s.followers {
		s.followers[id] = removeFromSet(ids, userID)
	}
	return nil
}

type EventStore struct {
	s *Store
}

func (e *EventStore) Create(_ context.Context, event *models.Event) error {
	s := e.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.events {
		if existing.ID == event.ID || existing.EventCode == event.EventCode {
			return repository.ErrDuplicateKey
		}
	}
	now := time.Now()
	event.CreatedAt, event.UpdatedAt = now, now
	s.events[event.ID] = *event
	return nil
}

func (e *EventStore) GetByID(_ context.Context, id string) (*models.Event, error) {
	return e.find(func(event models.Event) bool { return event.ID == id })
}

func (e *EventStore) GetByCode(_ context.Context, code string) (*models.Event, error) {
	return e.find(func(event models.Event) bool { return event.EventCode == code })
}

func (e *EventStore) find(match func(models.Event) bool) (*models.Event, error) {
	s := e.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range s.events {
		if match(event) {
			hydrated := s.hydrateEvent(event)
			return &hydrated, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) hydrateEvent(event models.Event) models.Event {
	event.ParticipantIDs = append([]string{}, s.participants[event.ID]...)
	event.AdminIDs = append([]string{}, s.admins[event.ID]...)
	return event
}

func (e *EventStore) CodeExists(_ context.Context, code string) (bool, error) {
	s := e.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range s.events {
		if event.EventCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (e *EventStore) ListByParticipant(_ context.Context, userID string) ([]models.Event, error) {
	s := e.s
	s.mu.Lock()
	defer s.mu.Unlock()

	events := []models.Event{}
	for id, members := range s.participants {
		if event, ok := s.events[id]; ok && contains(members, userID) {
			events = append(events, s.hydrateEvent(event))
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartDate.Before(events[j].StartDate) })
	return events, nil
}

func (e *EventStore) Update(_ context.Context, event *models.Event) error {
	s := e.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.events[event.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = event.Name
	stored.Description = event.Description
	stored.StartDate = event.StartDate
	stored.EndDate = event.EndDate
	stored.EventCode = event.EventCode
	stored.UpdatedAt = time.Now()
	s.events[event.ID] = stored
	return nil
}

func (e *EventStore) Delete(_ context.Context, id string) error {
	s := e.s
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.participants, id)
	delete(s.admins, id)
	if _, ok := s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (e *EventStore) AddParticipant(_ context.Context, eventID, userID string) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	e.s.participants[eventID] = addToSet(e.s.participants[eventID], userID)
	return nil
}

func (e *EventStore) RemoveParticipant(_ context.Context, eventID, userID string) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	e.s.admins[eventID] = removeFromSet(e.s.admins[eventID], userID)
	e.s.participants[eventID] = removeFromSet(e.s.participants[eventID], userID)
	return nil
}

func (e *EventStore) AddAdmin(_ context.Context, eventID, userID string) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	e.s.admins[eventID] = addToSet(e.s.admins[eventID], userID)
	return nil
}

func (e *EventStore) RemoveAdmin(_ context.Context, eventID, userID string) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	e.s.admins[eventID] = removeFromSet(e.s.admins[eventID], userID)
	return nil
}

func (e *EventStore) CountParticipants(_ context.Context, eventID string) (int64, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	return int64(len(e.s.participants[eventID])), nil
}

type AvailabilityStore struct {
	s *Store
}

func (a *AvailabilityStore) Get(_ context.Context, userID, id string) (*models.Availability, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	availability, ok := a.s.avails[userID][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &availability, nil
}

func (a *AvailabilityStore) Upsert(_ context.Context, availability *models.Availability) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	records, ok := a.s.avails[availability.UserID]
	if !ok {
		records = map[string]models.Availability{}
		a.s.avails[availability.UserID] = records
	}
	if existing, ok := records[availability.ID]; ok {
		availability.CreatedAt = existing.CreatedAt
	}
	records[availability.ID] = *availability
	return nil
}

func (a *AvailabilityStore) ListByUser(_ context.Context, userID string) ([]models.Availability, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	list := []models.Availability{}
	for _, availability := range a.s.avails[userID] {
		list = append(list, availability)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartDate.Before(list[j].StartDate) })
	return list, nil
}

func (a *AvailabilityStore) Delete(_ context.Context, userID, id string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	if _, ok := a.s.avails[userID][id]; !ok {
		return repository.ErrNotFound
	}
	delete(a.s.avails[userID], id)
	return nil
}

func (a *AvailabilityStore) DeleteByUser(_ context.Context, userID string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	delete(a.s.avails, userID)
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func addToSet(ids []string, id string) []string {
	if contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeFromSet(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
