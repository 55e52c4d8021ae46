package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/domain/authz"
	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
	"github.com/aitbenali/medina-journeys/pkg/money"
)

// validCategories is shared by events and clubs.
var validCategories = map[string]bool{
	"sustainable":   true,
	"cultural":      true,
	"entertainment": true,
}

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountCities(ctx context.Context) (int64, error)
	GetUpcoming(ctx context.Context, limit, offset int, category, city string) ([]entity.Event, error)
	GetUpcomingByClubID(ctx context.Context, clubID string) ([]entity.Event, error)
	CountActiveRegistrations(ctx context.Context, eventID string) (int64, error)
}

type eventClubStorage interface {
	Get(ctx context.Context, id string) (*entity.Club, error)
}

type EventService struct {
	storage EventStorage
	clubs   eventClubStorage
}

func NewEventService(storage EventStorage, clubs eventClubStorage) *EventService {
	return &EventService{
		storage: storage,
		clubs:   clubs,
	}
}

type EventInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	City        string
	StartTime   time.Time
	// Price is a decimal string ("149.50"); it is parsed into minor units
	// and never passes through floating point.
	Price    string
	Capacity int
	ClubID   *string
}

func (i EventInput) validate() (priceMinor int64, err error) {
	if len(i.Title) < 5 {
		return 0, errorz.Validation("title", "must be at least 5 characters")
	}
	if len(i.Description) < 20 {
		return 0, errorz.Validation("description", "must be at least 20 characters")
	}
	if !validCategories[i.Category] {
		return 0, errorz.Validation("category", "unknown category")
	}
	if len(i.Location) < 5 {
		return 0, errorz.Validation("location", "must be at least 5 characters")
	}
	if i.City == "" {
		return 0, errorz.Validation("city", "is required")
	}
	if i.Capacity < 1 {
		return 0, errorz.Validation("capacity", "must be at least 1")
	}
	if !i.StartTime.After(time.Now()) {
		return 0, errorz.Validation("start_time", "must be in the future")
	}
	if i.Price == "" {
		return 0, nil
	}
	priceMinor, err = money.ParseAmount(i.Price)
	if err != nil {
		return 0, errorz.Validation("price", err.Error())
	}
	return priceMinor, nil
}

// Create makes a new event. Club managers may only attach events to clubs
// they manage.
func (s *EventService) Create(ctx context.Context, actor *entity.User, input EventInput) (*entity.Event, error) {
	if err := authz.Require(actor.Role, authz.ManageEvents); err != nil {
		return nil, err
	}
	priceMinor, err := input.validate()
	if err != nil {
		return nil, err
	}
	if err = s.checkClubOwnership(ctx, actor, input.ClubID); err != nil {
		return nil, err
	}

	return s.storage.Create(ctx, &entity.Event{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		City:        input.City,
		StartTime:   input.StartTime,
		PriceMinor:  priceMinor,
		Capacity:    input.Capacity,
		CreatorID:   actor.ID,
		ClubID:      input.ClubID,
	})
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	event, err := s.storage.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotFound
	}
	return event, err
}

func (s *EventService) Update(ctx context.Context, actor *entity.User, id string, input EventInput) (*entity.Event, error) {
	if err := authz.Require(actor.Role, authz.ManageEvents); err != nil {
		return nil, err
	}
	priceMinor, err := input.validate()
	if err != nil {
		return nil, err
	}
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.checkEventOwnership(ctx, actor, event); err != nil {
		return nil, err
	}

	// Seats already held by pending or paid registrations cannot be taken
	// away by shrinking the event.
	active, err := s.storage.CountActiveRegistrations(ctx, id)
	if err != nil {
		return nil, err
	}
	if int64(input.Capacity) < active {
		return nil, errorz.Validation("capacity", fmt.Sprintf("cannot be below the %d active registrations", active))
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Category = input.Category
	event.Location = input.Location
	event.City = input.City
	event.StartTime = input.StartTime
	event.PriceMinor = priceMinor
	event.Capacity = input.Capacity
	return s.storage.Update(ctx, event)
}

// Delete removes an event, but only while no pending or paid registration
// references it.
func (s *EventService) Delete(ctx context.Context, actor *entity.User, id string) error {
	if err := authz.Require(actor.Role, authz.ManageEvents); err != nil {
		return err
	}
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = s.checkEventOwnership(ctx, actor, event); err != nil {
		return err
	}

	active, err := s.storage.CountActiveRegistrations(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return errorz.ErrHasRegistrations
	}
	return s.storage.Delete(ctx, id)
}

// AvailableSpots returns how many seats remain for an event.
func (s *EventService) AvailableSpots(ctx context.Context, event *entity.Event) (int, error) {
	active, err := s.storage.CountActiveRegistrations(ctx, event.ID)
	if err != nil {
		return 0, err
	}
	return event.Capacity - int(active), nil
}

func (s *EventService) GetUpcoming(ctx context.Context, limit, offset int, category, city string) ([]entity.Event, error) {
	return s.storage.GetUpcoming(ctx, limit, offset, category, city)
}

func (s *EventService) GetUpcomingByClubID(ctx context.Context, clubID string) ([]entity.Event, error) {
	return s.storage.GetUpcomingByClubID(ctx, clubID)
}

func (s *EventService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *EventService) CountCities(ctx context.Context) (int64, error) {
	return s.storage.CountCities(ctx)
}

// checkClubOwnership rejects club managers attaching events to clubs that
// are not theirs. Admins skip the check.
func (s *EventService) checkClubOwnership(ctx context.Context, actor *entity.User, clubID *string) error {
	if actor.Role == entity.RoleAdmin || clubID == nil {
		return nil
	}
	club, err := s.clubs.Get(ctx, *clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.ErrNotFound
		}
		return err
	}
	if club.ManagerID != actor.ID {
		return errorz.ErrForbidden
	}
	return nil
}

func (s *EventService) checkEventOwnership(ctx context.Context, actor *entity.User, event *entity.Event) error {
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if event.CreatorID == actor.ID {
		return nil
	}
	if event.ClubID == nil {
		return errorz.ErrForbidden
	}
	return s.checkClubOwnership(ctx, actor, event.ClubID)
}
