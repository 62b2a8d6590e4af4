// Package repository defines the persistence boundary for organizer events
// and the activity log, with in-memory and PostgreSQL implementations.
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned when inserting an event whose id is taken.
var ErrDuplicateID = errors.New("duplicate id")

// EventStore persists whole event aggregates, ticket types and attendees
// included. Implementations return copies; mutating a returned event has no
// effect until it is passed back to Update.
type EventStore interface {
	Insert(ctx context.Context, event *model.OrganizerEvent) error
	Get(ctx context.Context, id string) (*model.OrganizerEvent, error)
	// ListByOrganizer returns the organizer's events, most recently updated first.
	ListByOrganizer(ctx context.Context, organizerID string) ([]model.OrganizerEvent, error)
	Update(ctx context.Context, event *model.OrganizerEvent) error
	Delete(ctx context.Context, id string) error
}

// ActivityLog is the append-only feed of state changes.
type ActivityLog interface {
	Append(ctx context.Context, entry model.RecentActivity) error
	// Recent returns at most limit entries for the organizer, newest first.
	Recent(ctx context.Context, organizerID string, limit int) ([]model.RecentActivity, error)
}
