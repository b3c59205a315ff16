package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stargazers/stargazing-api/internal/core/domain"
)

const (
	collectionEvents   = "events"
	collectionCounters = "counters"
)

// EventRepository implements ports.EventRepository using MongoDB. Numeric ids
// come from a counters document incremented with $inc.
type EventRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		col:      db.Collection(collectionEvents),
		counters: db.Collection(collectionCounters),
	}
}

type mongoEvent struct {
	OID               primitive.ObjectID `bson:"_id,omitempty"`
	ID                int                `bson:"id"`
	EventName         string             `bson:"eventName"`
	EventDate         string             `bson:"eventDate"`
	StartTime         string             `bson:"startTime"`
	EndTime           string             `bson:"endTime"`
	Location          string             `bson:"location"`
	Description       string             `bson:"description"`
	ParticipantsLimit int                `bson:"participantsLimit"`
}

func (me mongoEvent) toDomain() *domain.Event {
	return &domain.Event{
		ID:                me.ID,
		EventName:         me.EventName,
		EventDate:         me.EventDate,
		StartTime:         me.StartTime,
		EndTime:           me.EndTime,
		Location:          me.Location,
		Description:       me.Description,
		ParticipantsLimit: me.ParticipantsLimit,
	}
}

// EnsureIndexes creates unique indexes on id and eventName.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "eventName", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("events indexes: %w", err)
	}
	return nil
}

func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	defer observe(collectionEvents, "read", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoEvent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	out := make([]*domain.Event, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int) (*domain.Event, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *EventRepository) FindByName(ctx context.Context, name string) (*domain.Event, error) {
	return r.findOne(ctx, bson.M{"eventName": name})
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	defer observe(collectionEvents, "write", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Cheap pre-check so a duplicate name does not burn a sequence value.
	// The unique index remains the source of truth.
	n, err := r.col.CountDocuments(ctx, bson.M{"eventName": event.EventName})
	if err != nil {
		return nil, fmt.Errorf("check event name: %w", err)
	}
	if n > 0 {
		return nil, domain.ErrEventNameExists
	}

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	doc := mongoEvent{
		OID:               primitive.NewObjectID(),
		ID:                id,
		EventName:         event.EventName,
		EventDate:         event.EventDate,
		StartTime:         event.StartTime,
		EndTime:           event.EndTime,
		Location:          event.Location,
		Description:       event.Description,
		ParticipantsLimit: event.ParticipantsLimit,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEventNameExists
		}
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EventRepository) Update(ctx context.Context, name string, patch domain.EventPatch) (*domain.Event, error) {
	defer observe(collectionEvents, "write", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if patch.EventName != nil {
		set["eventName"] = *patch.EventName
	}
	if patch.EventDate != nil {
		set["eventDate"] = *patch.EventDate
	}
	if patch.StartTime != nil {
		set["startTime"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		set["endTime"] = *patch.EndTime
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.ParticipantsLimit != nil {
		set["participantsLimit"] = *patch.ParticipantsLimit
	}
	if len(set) == 0 {
		return r.FindByName(ctx, name)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var me mongoEvent
	err := r.col.FindOneAndUpdate(ctx, bson.M{"eventName": name}, bson.M{"$set": set}, opts).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEventNameExists
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EventRepository) Delete(ctx context.Context, name string) (*domain.Event, error) {
	defer observe(collectionEvents, "write", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEvent
	if err := r.col.FindOneAndDelete(ctx, bson.M{"eventName": name}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EventRepository) findOne(ctx context.Context, filter bson.M) (*domain.Event, error) {
	defer observe(collectionEvents, "read", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEvent
	if err := r.col.FindOne(ctx, filter).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return me.toDomain(), nil
}

// nextID atomically increments the events sequence, seeding it on first use.
func (r *EventRepository) nextID(ctx context.Context) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": collectionEvents},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next event id: %w", err)
	}
	return counter.Seq, nil
}
