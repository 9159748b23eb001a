package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event represents an event document in the events collection.
// UserID references the owning account and is immutable after creation.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateEventRequest represents an event creation request body.
// Any owner supplied by the client is ignored; the owner is the caller.
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required,eventdate"`
	Location    string `json:"location"`
}

// UpdateEventRequest represents an event update request body.
// Nil fields are left untouched.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date" validate:"omitempty,eventdate"`
	Location    *string `json:"location"`
}

// ListEventsParams are the raw query-string parameters for listing events.
type ListEventsParams struct {
	Title    string
	Date     string
	Location string
	Sort     string
	Page     string
	Limit    string
}

// ListMeta describes the pagination of a list response.
type ListMeta struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// EventListResponse is the paged event list response.
type EventListResponse struct {
	Message string   `json:"message"`
	Data    []Event  `json:"data"`
	Meta    ListMeta `json:"meta"`
}

// EventResponse wraps a single event with a message.
type EventResponse struct {
	Message string `json:"message"`
	Data    Event  `json:"data"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// eventDateLayouts are the accepted formats for event dates, a full RFC3339
// timestamp or a bare calendar date.
var eventDateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseEventDate parses an event date from its wire representation.
func ParseEventDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range eventDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
