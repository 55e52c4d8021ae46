package service

import (
	"context"

	"github.com/aitbenali/medina-journeys/internal/domain/dto"
)

type statsEventStorage interface {
	Count(ctx context.Context) (int64, error)
	CountCities(ctx context.Context) (int64, error)
}

type statsClubStorage interface {
	Count(ctx context.Context) (int64, error)
}

type statsUserStorage interface {
	Count(ctx context.Context) (int64, error)
}

// StatsService aggregates the platform-wide totals for the admin dashboard.
type StatsService struct {
	events statsEventStorage
	clubs  statsClubStorage
	users  statsUserStorage
}

func NewStatsService(events statsEventStorage, clubs statsClubStorage, users statsUserStorage) *StatsService {
	return &StatsService{
		events: events,
		clubs:  clubs,
		users:  users,
	}
}

func (s *StatsService) Get(ctx context.Context) (*dto.Stats, error) {
	stats := &dto.Stats{}

	var err error
	if stats.TotalEvents, err = s.events.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalClubs, err = s.clubs.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCities, err = s.events.CountCities(ctx); err != nil {
		return nil, err
	}
	if stats.TotalMembers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}
