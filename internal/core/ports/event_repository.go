package ports

import (
	"context"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

// EventRepository persists events. Create assigns the numeric id.
type EventRepository interface {
	List(ctx context.Context) ([]*domain.Event, error)
	FindByID(ctx context.Context, id int) (*domain.Event, error)
	FindByName(ctx context.Context, name string) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, name string, patch domain.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, name string) (*domain.Event, error)
}
