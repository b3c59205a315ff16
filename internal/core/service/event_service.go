package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stargazers/stargazing-api/internal/api/metrics"
	"github.com/stargazers/stargazing-api/internal/core/domain"
	"github.com/stargazers/stargazing-api/internal/core/ports"
)

type eventService struct {
	events ports.EventRepository
	log    zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(events ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{events: events, log: log}
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx)
}

func (s *eventService) GetByID(ctx context.Context, id int) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *eventService) GetByName(ctx context.Context, name string) (*domain.Event, error) {
	return s.events.FindByName(ctx, name)
}

// Create requires every field; the repository assigns the id.
func (s *eventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	event := &domain.Event{
		EventName:         strings.TrimSpace(in.EventName),
		EventDate:         strings.TrimSpace(in.EventDate),
		StartTime:         strings.TrimSpace(in.StartTime),
		EndTime:           strings.TrimSpace(in.EndTime),
		Location:          strings.TrimSpace(in.Location),
		Description:       strings.TrimSpace(in.Description),
		ParticipantsLimit: in.ParticipantsLimit,
	}
	if event.EventName == "" || event.EventDate == "" || event.StartTime == "" ||
		event.EndTime == "" || event.Location == "" || event.Description == "" ||
		event.ParticipantsLimit == 0 {
		return nil, domain.InvalidInput("All fields are required")
	}
	if event.ParticipantsLimit < 0 {
		return nil, domain.InvalidInput("participantsLimit must be a positive number")
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	metrics.RecordMutationsTotal.WithLabelValues("event", "create").Inc()
	s.log.Info().Int("id", created.ID).Str("event", created.EventName).Msg("event created")
	return created, nil
}

// Update applies the provided fields. Provided strings must be non-empty.
func (s *eventService) Update(ctx context.Context, name string, patch domain.EventPatch) (*domain.Event, error) {
	for _, f := range []*string{patch.EventName, patch.EventDate, patch.StartTime, patch.EndTime, patch.Location, patch.Description} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return nil, domain.InvalidInput("Fields cannot be empty")
		}
	}
	if patch.ParticipantsLimit != nil && *patch.ParticipantsLimit <= 0 {
		return nil, domain.InvalidInput("participantsLimit must be a positive number")
	}

	updated, err := s.events.Update(ctx, name, patch)
	if err != nil {
		return nil, err
	}
	metrics.RecordMutationsTotal.WithLabelValues("event", "update").Inc()
	s.log.Info().Str("event", name).Msg("event updated")
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, name string) (*domain.Event, error) {
	removed, err := s.events.Delete(ctx, name)
	if err != nil {
		return nil, err
	}
	metrics.RecordMutationsTotal.WithLabelValues("event", "delete").Inc()
	s.log.Info().Str("event", name).Msg("event deleted")
	return removed, nil
}
