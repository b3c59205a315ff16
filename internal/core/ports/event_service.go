package ports

import (
	"context"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

// CreateEventInput is the DTO passed from the transport layer to EventService.
type CreateEventInput struct {
	EventName         string
	EventDate         string
	StartTime         string
	EndTime           string
	Location          string
	Description       string
	ParticipantsLimit int
}

// EventService exposes the event catalogue.
type EventService interface {
	List(ctx context.Context) ([]*domain.Event, error)
	GetByID(ctx context.Context, id int) (*domain.Event, error)
	GetByName(ctx context.Context, name string) (*domain.Event, error)
	Create(ctx context.Context, input CreateEventInput) (*domain.Event, error)
	Update(ctx context.Context, name string, patch domain.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, name string) (*domain.Event, error)
}
