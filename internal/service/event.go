package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventhub/eventhub-go/internal/model"
	"github.com/eventhub/eventhub-go/internal/repository"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrInvalidEventID = errors.New("invalid event id format")
	ErrForbidden      = errors.New("forbidden")
)

// EventStore is the persistence surface the event service needs.
type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error)
	Find(ctx context.Context, q repository.EventQuery) ([]model.Event, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// EventService handles event CRUD with ownership authorization.
type EventService struct {
	events EventStore
	logger zerolog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(events EventStore, logger zerolog.Logger) *EventService {
	return &EventService{
		events: events,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// canAccess reports whether the caller may mutate an event owned by ownerID.
// Admins bypass ownership.
func canAccess(caller model.AuthUser, ownerID primitive.ObjectID) bool {
	return caller.IsAdmin() || caller.ID == ownerID
}

// List returns the caller's page of events plus pagination metadata. The
// page fetch and the total count run concurrently over the same filter.
func (s *EventService) List(ctx context.Context, caller model.AuthUser, params model.ListEventsParams) ([]model.Event, model.ListMeta, error) {
	q := repository.BuildEventQuery(caller, params)

	type countResult struct {
		total int64
		err   error
	}
	countCh := make(chan countResult, 1)
	go func() {
		total, err := s.events.Count(ctx, q.Filter)
		countCh <- countResult{total: total, err: err}
	}()

	events, err := s.events.Find(ctx, q)
	count := <-countCh
	if err != nil {
		return nil, model.ListMeta{}, err
	}
	if count.err != nil {
		return nil, model.ListMeta{}, count.err
	}

	meta := model.ListMeta{
		Total:      count.total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: (count.total + q.Limit - 1) / q.Limit,
	}
	return events, meta, nil
}

// Create persists a new event. The owner is always the caller, regardless of
// anything the client supplied.
func (s *EventService) Create(ctx context.Context, caller model.AuthUser, req model.CreateEventRequest) (*model.Event, error) {
	date, err := model.ParseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		UserID:      caller.ID,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Str("event", event.ID.Hex()).Str("owner", caller.ID.Hex()).Msg("event created")
	return event, nil
}

// Update applies a patch to an event the caller owns (or any event, for
// admins). The owner field is immutable.
func (s *EventService) Update(ctx context.Context, caller model.AuthUser, rawID string, req model.UpdateEventRequest) (*model.Event, error) {
	id, event, err := s.authorize(ctx, caller, rawID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Date != nil {
		date, err := model.ParseEventDate(*req.Date)
		if err != nil {
			return nil, err
		}
		fields["date"] = date
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}

	updated, err := s.events.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	s.logger.Info().Str("event", event.ID.Hex()).Msg("event updated")
	return updated, nil
}

// Delete removes an event the caller owns (or any event, for admins).
func (s *EventService) Delete(ctx context.Context, caller model.AuthUser, rawID string) error {
	id, _, err := s.authorize(ctx, caller, rawID)
	if err != nil {
		return err
	}

	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	s.logger.Info().Str("event", rawID).Msg("event deleted")
	return nil
}

// authorize resolves and loads an event, then checks the caller may mutate
// it. The event is untouched when authorization fails.
func (s *EventService) authorize(ctx context.Context, caller model.AuthUser, rawID string) (primitive.ObjectID, *model.Event, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return primitive.NilObjectID, nil, ErrInvalidEventID
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return primitive.NilObjectID, nil, ErrEventNotFound
		}
		return primitive.NilObjectID, nil, err
	}

	if !canAccess(caller, event.UserID) {
		return primitive.NilObjectID, nil, ErrForbidden
	}

	return id, event, nil
}
