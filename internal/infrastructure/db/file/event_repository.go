package file

import (
	"context"

	"github.com/google/uuid"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

type fileEvent struct {
	OID               objectID `json:"_id"`
	ID                int      `json:"id"`
	EventName         string   `json:"eventName"`
	EventDate         string   `json:"eventDate"`
	StartTime         string   `json:"startTime"`
	EndTime           string   `json:"endTime"`
	Location          string   `json:"location"`
	Description       string   `json:"description"`
	ParticipantsLimit int      `json:"participantsLimit"`
}

// EventRepository implements ports.EventRepository on a JSON file.
type EventRepository struct {
	coll *Collection[fileEvent]
}

func NewEventRepository(coll *Collection[fileEvent]) *EventRepository {
	return &EventRepository{coll: coll}
}

func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	items, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Event, 0, len(items))
	for _, fe := range items {
		out = append(out, fe.toDomain())
	}
	return out, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int) (*domain.Event, error) {
	return r.findOne(ctx, func(e fileEvent) bool { return e.ID == id })
}

func (r *EventRepository) FindByName(ctx context.Context, name string) (*domain.Event, error) {
	return r.findOne(ctx, func(e fileEvent) bool { return e.EventName == name })
}

// Create assigns the next id (max existing + 1) inside the same write as the
// name uniqueness check.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	var created fileEvent
	err := r.coll.Mutate(ctx, func(items []fileEvent) ([]fileEvent, error) {
		nextID := 1
		for _, e := range items {
			if e.EventName == event.EventName {
				return nil, domain.ErrEventNameExists
			}
			if e.ID >= nextID {
				nextID = e.ID + 1
			}
		}
		created = fromDomainEvent(event)
		created.OID = objectID{OID: uuid.NewString()}
		created.ID = nextID
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	return created.toDomain(), nil
}

func (r *EventRepository) Update(ctx context.Context, name string, patch domain.EventPatch) (*domain.Event, error) {
	var updated fileEvent
	err := r.coll.Mutate(ctx, func(items []fileEvent) ([]fileEvent, error) {
		idx := indexOfEventName(items, name)
		if idx < 0 {
			return nil, domain.ErrEventNotFound
		}

		ev := items[idx].toDomain()
		patch.Apply(ev)
		if ev.EventName != name {
			if taken := indexOfEventName(items, ev.EventName); taken >= 0 {
				return nil, domain.ErrEventNameExists
			}
		}

		rec := fromDomainEvent(ev)
		rec.OID = items[idx].OID
		items[idx] = rec
		updated = rec
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return updated.toDomain(), nil
}

func (r *EventRepository) Delete(ctx context.Context, name string) (*domain.Event, error) {
	var removed fileEvent
	err := r.coll.Mutate(ctx, func(items []fileEvent) ([]fileEvent, error) {
		idx := indexOfEventName(items, name)
		if idx < 0 {
			return nil, domain.ErrEventNotFound
		}
		removed = items[idx]
		return append(items[:idx], items[idx+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	return removed.toDomain(), nil
}

func (r *EventRepository) findOne(ctx context.Context, match func(fileEvent) bool) (*domain.Event, error) {
	items, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, fe := range items {
		if match(fe) {
			return fe.toDomain(), nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func indexOfEventName(items []fileEvent, name string) int {
	for i, e := range items {
		if e.EventName == name {
			return i
		}
	}
	return -1
}

func fromDomainEvent(e *domain.Event) fileEvent {
	return fileEvent{
		ID:                e.ID,
		EventName:         e.EventName,
		EventDate:         e.EventDate,
		StartTime:         e.StartTime,
		EndTime:           e.EndTime,
		Location:          e.Location,
		Description:       e.Description,
		ParticipantsLimit: e.ParticipantsLimit,
	}
}

func (fe fileEvent) toDomain() *domain.Event {
	return &domain.Event{
		ID:                fe.ID,
		EventName:         fe.EventName,
		EventDate:         fe.EventDate,
		StartTime:         fe.StartTime,
		EndTime:           fe.EndTime,
		Location:          fe.Location,
		Description:       fe.Description,
		ParticipantsLimit: fe.ParticipantsLimit,
	}
}
