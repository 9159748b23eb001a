package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventhub/eventhub-go/internal/model"
)

var ErrEventNotFound = errors.New("event not found")

// EventRepository handles event persistence in the events collection.
type EventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{collection: db.Collection("events")}
}

// Create inserts a new event and sets the generated ID and timestamps on the
// event struct.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return err
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = id
	}
	return nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	event := &model.Event{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Find runs a built query plan and returns the matching page of events.
func (r *EventRepository) Find(ctx context.Context, q EventQuery) ([]model.Event, error) {
	opts := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := r.collection.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, err
	}

	events := []model.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns the number of events matching the filter, ignoring
// pagination.
func (r *EventRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}

// Update applies the given fields to an event and returns the updated
// document.
func (r *EventRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Event, error) {
	fields["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	event := &model.Event{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Delete removes an event by its ID.
func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}
