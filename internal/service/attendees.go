package service

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"go.uber.org/zap"
)

// GetEventAttendees returns the event's attendees. An unknown event yields
// an empty list rather than ErrNotFound.
func (s *OrganizerService) GetEventAttendees(ctx context.Context, eventID string) ([]model.Attendee, error) {
	event, err := s.load(ctx, eventID)
	if errors.Is(err, ErrNotFound) {
		return []model.Attendee{}, nil
	}
	if err != nil {
		return nil, err
	}
	if event.Attendees == nil {
		return []model.Attendee{}, nil
	}
	return event.Attendees, nil
}

// UpdateAttendeeStatus sets the check-in status of one attendee.
func (s *OrganizerService) UpdateAttendeeStatus(ctx context.Context, eventID, attendeeID string, status model.CheckInStatus) (*model.Attendee, error) {
	if !status.Valid() {
		return nil, validationError("unknown check-in status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	idx := event.AttendeeByID(attendeeID)
	if idx < 0 {
		return nil, errAttendeeNotFound
	}
	event.Attendees[idx].CheckInStatus = status
	attendee := event.Attendees[idx]

	if err := s.save(ctx, event); err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Info("attendee status updated",
		zap.String("event_id", eventID),
		zap.String("attendee_id", attendeeID),
		zap.String("status", string(status)),
	)
	return &attendee, nil
}
