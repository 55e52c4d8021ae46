package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
	"github.com/aitbenali/medina-journeys/pkg/logger/types"

	"go.uber.org/zap"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// ---- users ----

type fakeUserStorage struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*entity.User
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{users: make(map[uint]*entity.User)}
}

func (f *fakeUserStorage) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.users[user.ID] = &copied
	return user, nil
}

func (f *fakeUserStorage) Get(_ context.Context, id uint) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStorage) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStorage) Update(_ context.Context, user *entity.User) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return user, nil
}

func (f *fakeUserStorage) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserStorage) GetWithPagination(_ context.Context, limit, offset int, search string) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []entity.User
	for _, user := range f.users {
		if search == "" || strings.Contains(user.Email, search) {
			users = append(users, *user)
		}
	}
	return users, nil
}

// ---- sessions ----

type fakeSessionStorage struct {
	mu       sync.Mutex
	sessions map[string]uint
}

func newFakeSessionStorage() *fakeSessionStorage {
	return &fakeSessionStorage{sessions: make(map[string]uint)}
}

func (f *fakeSessionStorage) Set(_ context.Context, token string, userID uint, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[token] = userID
	return nil
}

func (f *fakeSessionStorage) Get(_ context.Context, token string) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.sessions[token]
	if !ok {
		return 0, errorz.ErrSessionExpired
	}
	return userID, nil
}

func (f *fakeSessionStorage) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

// ---- events + registrations ----
//
// One store backs both interfaces so CreateForEvent can mimic the row-lock
// semantics of the real storage: the mutex plays the role of the lock.

type fakeBookingStore struct {
	mu            sync.Mutex
	nextID        int
	events        map[string]*entity.Event
	registrations map[string]*entity.EventRegistration
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		events:        make(map[string]*entity.Event),
		registrations: make(map[string]*entity.EventRegistration),
	}
}

func (f *fakeBookingStore) addEvent(event *entity.Event) *entity.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	if event.ID == "" {
		event.ID = fmt.Sprintf("event-%d", f.nextID)
	}
	f.events[event.ID] = event
	return event
}

func (f *fakeBookingStore) Get(_ context.Context, id string) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeBookingStore) CreateForEvent(_ context.Context, registration *entity.EventRegistration) (*entity.EventRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events[registration.EventID]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	var active int64
	for _, existing := range f.registrations {
		if existing.EventID != registration.EventID {
			continue
		}
		if existing.UserID == registration.UserID {
			return nil, errorz.ErrAlreadyRegistered
		}
		if existing.PaymentStatus.Active() {
			active++
		}
	}
	if active >= int64(event.Capacity) {
		return nil, errorz.ErrEventFull
	}

	f.nextID++
	registration.ID = fmt.Sprintf("registration-%d", f.nextID)
	registration.CreatedAt = time.Now()
	copied := *registration
	f.registrations[registration.ID] = &copied
	return registration, nil
}

func (f *fakeBookingStore) GetRegistration(_ context.Context, id string) (*entity.EventRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	registration, ok := f.registrations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *registration
	return &copied, nil
}

func (f *fakeBookingStore) Update(_ context.Context, registration *entity.EventRegistration) (*entity.EventRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *registration
	f.registrations[registration.ID] = &copied
	return registration, nil
}

func (f *fakeBookingStore) GetByUserID(_ context.Context, userID uint) ([]entity.EventRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var registrations []entity.EventRegistration
	for _, registration := range f.registrations {
		if registration.UserID == userID {
			copied := *registration
			copied.Event = *f.events[registration.EventID]
			registrations = append(registrations, copied)
		}
	}
	return registrations, nil
}

func (f *fakeBookingStore) GetActiveByUserID(ctx context.Context, userID uint) ([]entity.EventRegistration, error) {
	all, err := f.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var active []entity.EventRegistration
	for _, registration := range all {
		if registration.PaymentStatus.Active() {
			active = append(active, registration)
		}
	}
	return active, nil
}

// registrationStore adapts fakeBookingStore to RegistrationStorage, whose
// Get collides with the event getter's method name.
type registrationStore struct {
	*fakeBookingStore
}

func (s registrationStore) Get(ctx context.Context, id string) (*entity.EventRegistration, error) {
	return s.GetRegistration(ctx, id)
}

// ---- gateway ----

type fakeGateway struct {
	mu      sync.Mutex
	charges int
	refunds int
	err     error
}

func (f *fakeGateway) Charge(_ context.Context, _ int64, _ string) (*ChargeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.charges++
	if f.err != nil {
		return nil, f.err
	}
	return &ChargeResult{PaymentID: fmt.Sprintf("pi_%d", f.charges)}, nil
}

func (f *fakeGateway) Refund(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunds++
	return f.err
}

// ---- clubs + memberships ----

type fakeClubStorage struct {
	mu     sync.Mutex
	nextID int
	clubs  map[string]*entity.Club
}

func newFakeClubStorage() *fakeClubStorage {
	return &fakeClubStorage{clubs: make(map[string]*entity.Club)}
}

func (f *fakeClubStorage) Create(_ context.Context, club *entity.Club) (*entity.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	club.ID = fmt.Sprintf("club-%d", f.nextID)
	copied := *club
	f.clubs[club.ID] = &copied
	return club, nil
}

func (f *fakeClubStorage) Get(_ context.Context, id string) (*entity.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	club, ok := f.clubs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *club
	return &copied, nil
}

func (f *fakeClubStorage) GetByManagerID(_ context.Context, managerID uint) ([]entity.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var clubs []entity.Club
	for _, club := range f.clubs {
		if club.ManagerID == managerID {
			clubs = append(clubs, *club)
		}
	}
	return clubs, nil
}

func (f *fakeClubStorage) Update(_ context.Context, club *entity.Club) (*entity.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *club
	f.clubs[club.ID] = &copied
	return club, nil
}

func (f *fakeClubStorage) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clubs, id)
	return nil
}

func (f *fakeClubStorage) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.clubs)), nil
}

func (f *fakeClubStorage) GetWithPagination(_ context.Context, limit, offset int, category, city string) ([]entity.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var clubs []entity.Club
	for _, club := range f.clubs {
		clubs = append(clubs, *club)
	}
	return clubs, nil
}

type fakeMembershipStorage struct {
	mu          sync.Mutex
	nextID      int
	memberships map[string]*entity.ClubMembership
}

func newFakeMembershipStorage() *fakeMembershipStorage {
	return &fakeMembershipStorage{memberships: make(map[string]*entity.ClubMembership)}
}

func (f *fakeMembershipStorage) Create(_ context.Context, membership *entity.ClubMembership) (*entity.ClubMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	membership.ID = fmt.Sprintf("membership-%d", f.nextID)
	copied := *membership
	f.memberships[membership.ID] = &copied
	return membership, nil
}

func (f *fakeMembershipStorage) GetByUserAndClub(_ context.Context, userID uint, clubID string) (*entity.ClubMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, membership := range f.memberships {
		if membership.UserID == userID && membership.ClubID == clubID {
			copied := *membership
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMembershipStorage) Update(_ context.Context, membership *entity.ClubMembership) (*entity.ClubMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *membership
	f.memberships[membership.ID] = &copied
	return membership, nil
}

func (f *fakeMembershipStorage) GetActiveClubsByUserID(_ context.Context, userID uint) ([]entity.Club, error) {
	return nil, nil
}

func (f *fakeMembershipStorage) CountActiveByClubID(_ context.Context, clubID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, membership := range f.memberships {
		if membership.ClubID == clubID && membership.Status == entity.MembershipActive {
			count++
		}
	}
	return count, nil
}

// ---- full event storage (event service tests) ----

type fakeEventStorage struct {
	mu         sync.Mutex
	nextID     int
	events     map[string]*entity.Event
	activeRegs map[string]int64
	deleted    []string
}

func newFakeEventStorage() *fakeEventStorage {
	return &fakeEventStorage{
		events:     make(map[string]*entity.Event),
		activeRegs: make(map[string]int64),
	}
}

func (f *fakeEventStorage) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	event.ID = fmt.Sprintf("event-%d", f.nextID)
	copied := *event
	f.events[event.ID] = &copied
	return event, nil
}

func (f *fakeEventStorage) Get(_ context.Context, id string) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventStorage) Update(_ context.Context, event *entity.Event) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *event
	f.events[event.ID] = &copied
	return event, nil
}

func (f *fakeEventStorage) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.events, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEventStorage) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.events)), nil
}

func (f *fakeEventStorage) CountCities(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cities := make(map[string]bool)
	for _, event := range f.events {
		cities[event.City] = true
	}
	return int64(len(cities)), nil
}

func (f *fakeEventStorage) GetUpcoming(_ context.Context, limit, offset int, category, city string) ([]entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []entity.Event
	for _, event := range f.events {
		if event.IsUpcoming() {
			events = append(events, *event)
		}
	}
	return events, nil
}

func (f *fakeEventStorage) GetUpcomingByClubID(_ context.Context, clubID string) ([]entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []entity.Event
	for _, event := range f.events {
		if event.ClubID != nil && *event.ClubID == clubID && event.IsUpcoming() {
			events = append(events, *event)
		}
	}
	return events, nil
}

func (f *fakeEventStorage) CountActiveRegistrations(_ context.Context, eventID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeRegs[eventID], nil
}
