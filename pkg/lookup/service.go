package lookup

import (
	"context"
	"log/slog"
	"sync"

	"github.com/labchat/labchat-server/internal/errdef"
	"github.com/labchat/labchat-server/pkg/metrics"
	"github.com/labchat/labchat-server/pkg/model"
)

// NewService returns the lookup service. It caches the per-lab event type,
// event status and instrument lists in memory: the lists are tiny,
// read on every calendar render and changed rarely. The cache is owned by
// this service and invalidated explicitly instead of living in hidden
// package state, so staleness is bounded by the refresh schedule wired up in
// main.
func NewService(logger *slog.Logger, repository *repository) *Service {
	return &Service{
		logger:      logger,
		repository:  repository,
		types:       make(map[uint][]model.EventType),
		statuses:    make(map[uint][]model.EventStatus),
		instruments: make(map[uint][]model.Instrument),
	}
}

type Service struct {
	logger     *slog.Logger
	repository *repository

	lock        sync.Mutex
	types       map[uint][]model.EventType
	statuses    map[uint][]model.EventStatus
	instruments map[uint][]model.Instrument
}

func (s *Service) EventTypes(ctx context.Context, labID uint) ([]model.EventType, error) {
	s.lock.Lock()
	if types, ok := s.types[labID]; ok {
		s.lock.Unlock()
		return types, nil
	}
	s.lock.Unlock()

	types, err := s.repository.findEventTypes(ctx, labID)
	if err != nil {
		return nil, err
	}

	s.lock.Lock()
	s.types[labID] = types
	s.lock.Unlock()
	return types, nil
}

func (s *Service) EventStatuses(ctx context.Context, labID uint) ([]model.EventStatus, error) {
	s.lock.Lock()
	if statuses, ok := s.statuses[labID]; ok {
		s.lock.Unlock()
		return statuses, nil
	}
	s.lock.Unlock()

	statuses, err := s.repository.findEventStatuses(ctx, labID)
	if err != nil {
		return nil, err
	}

	s.lock.Lock()
	s.statuses[labID] = statuses
	s.lock.Unlock()
	return statuses, nil
}

func (s *Service) Instruments(ctx context.Context, labID uint) ([]model.Instrument, error) {
	s.lock.Lock()
	if instruments, ok := s.instruments[labID]; ok {
		s.lock.Unlock()
		return instruments, nil
	}
	s.lock.Unlock()

	instruments, err := s.repository.findInstruments(ctx, labID)
	if err != nil {
		return nil, err
	}

	s.lock.Lock()
	s.instruments[labID] = instruments
	s.lock.Unlock()
	return instruments, nil
}

// FindStatusByName resolves a status by its name within a lab. Status names
// are the stable identifier the clients send on status changes.
func (s *Service) FindStatusByName(ctx context.Context, labID uint, name string) (*model.EventStatus, error) {
	statuses, err := s.EventStatuses(ctx, labID)
	if err != nil {
		return nil, err
	}

	for _, status := range statuses {
		if status.Name == name {
			return &status, nil
		}
	}
	return nil, errdef.NewNotFound("failed to find event status %q in lab %d", name, labID)
}

// Invalidate drops every cached list. The next read repopulates from the
// database.
func (s *Service) Invalidate() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.types = make(map[uint][]model.EventType)
	s.statuses = make(map[uint][]model.EventStatus)
	s.instruments = make(map[uint][]model.Instrument)

	metrics.LookupCacheRefreshes.Inc()
	s.logger.Info("Invalidated lookup cache")
}
