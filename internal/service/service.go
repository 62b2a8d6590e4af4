// Package service implements the organizer event workflow: drafting,
// ticketing, publishing, attendee tracking and dashboard reporting.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/event-organizer/internal/logger"
	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/Shivanand-hulikatti/event-organizer/internal/repository"
	"github.com/Shivanand-hulikatti/event-organizer/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// recentActivityLimit is how many entries GetRecentActivity returns.
const recentActivityLimit = 10

// OrganizerService orchestrates all organizer-facing operations.
//
// Every read-modify-write runs under mu so concurrent callers cannot
// interleave between loading an event and storing it back.
type OrganizerService struct {
	mu       sync.Mutex
	events   repository.EventStore
	activity repository.ActivityLog
	uploader storage.Uploader
	log      *logger.Logger
	now      func() time.Time
}

// Option customises an OrganizerService.
type Option func(*OrganizerService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *OrganizerService) { s.now = now }
}

// NewOrganizerService constructs an OrganizerService with its dependencies.
func NewOrganizerService(
	events repository.EventStore,
	activity repository.ActivityLog,
	uploader storage.Uploader,
	log *logger.Logger,
	opts ...Option,
) *OrganizerService {
	s := &OrganizerService{
		events:   events,
		activity: activity,
		uploader: uploader,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEvent stores a new draft event owned by the calling organizer.
// No validation happens here; it is deferred to PublishEvent.
func (s *OrganizerService) CreateEvent(ctx context.Context, form model.EventFormData) (*model.OrganizerEvent, error) {
	orgID, err := organizer(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	event := &model.OrganizerEvent{
		ID:          uuid.NewString(),
		OrganizerID: orgID,
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Date:        form.Date,
		Time:        form.Time,
		EndTime:     form.EndTime,
		Venue:       form.Venue,
		Image:       form.Image,
		Gallery:     nonNil(form.Gallery),
		Tags:        nonNil(form.Tags),
		Status:      model.StatusDraft,
		Visibility:  form.Visibility,
		TicketTypes: []model.TicketType{},
		Attendees:   []model.Attendee{},
		Analytics:   model.Analytics{TopReferrers: []string{}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if event.Visibility == "" {
		event.Visibility = model.VisibilityPublic
	}
	if event.Venue.Type == "" {
		event.Venue.Type = model.VenuePhysical
	}
	if err := validateEnums(event.Visibility, event.Venue.Type); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, storageError("create event", err)
	}
	s.record(ctx, model.ActivityEventCreated, event, fmt.Sprintf("Created event %q", event.Title))
	s.log.WithContext(ctx).Info("event created", zap.String("event_id", event.ID))
	return event, nil
}

// GetMyEvents returns the calling organizer's events, most recently updated first.
func (s *OrganizerService) GetMyEvents(ctx context.Context) ([]model.OrganizerEvent, error) {
	orgID, err := organizer(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListByOrganizer(ctx, orgID)
	if err != nil {
		return nil, storageError("list events", err)
	}
	return events, nil
}

// GetEventByID returns a single event owned by the calling organizer.
func (s *OrganizerService) GetEventByID(ctx context.Context, id string) (*model.OrganizerEvent, error) {
	return s.load(ctx, id)
}

// UpdateEvent shallow-merges the provided fields into the event.
func (s *OrganizerService) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.OrganizerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEventPatch(event, patch); err != nil {
		return nil, err
	}
	if err := s.save(ctx, event); err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Info("event updated", zap.String("event_id", id))
	return event, nil
}

// DeleteEvent removes the event together with its ticket types and attendees.
func (s *OrganizerService) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteLocked(ctx, id)
}

func (s *OrganizerService) deleteLocked(ctx context.Context, id string) error {
	event, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errEventNotFound
		}
		return storageError("delete event", err)
	}
	s.record(ctx, model.ActivityEventDeleted, event, fmt.Sprintf("Deleted event %q", event.Title))
	s.log.WithContext(ctx).Info("event deleted", zap.String("event_id", id))
	return nil
}

// DuplicateEvent copies an event into a new draft. Sales, attendees and
// analytics are reset; ticket types keep their configuration with fresh ids.
func (s *OrganizerService) DuplicateEvent(ctx context.Context, id string) (*model.OrganizerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dup := src.Clone()
	dup.ID = uuid.NewString()
	dup.Title = src.Title + " (Copy)"
	dup.Status = model.StatusDraft
	dup.Attendees = []model.Attendee{}
	dup.SoldTickets = 0
	dup.Revenue = 0
	dup.Analytics = model.Analytics{TopReferrers: []string{}}
	dup.TotalTickets = 0
	for i := range dup.TicketTypes {
		t := &dup.TicketTypes[i]
		t.ID = uuid.NewString()
		t.Sold = 0
		t.Available = t.Quantity
		dup.TotalTickets += t.Quantity
	}
	dup.CreatedAt = now
	dup.UpdatedAt = now

	if err := s.events.Insert(ctx, dup); err != nil {
		return nil, storageError("duplicate event", err)
	}
	s.record(ctx, model.ActivityEventDuplicated, dup, fmt.Sprintf("Duplicated event %q", src.Title))
	s.log.WithContext(ctx).Info("event duplicated",
		zap.String("source_id", src.ID),
		zap.String("event_id", dup.ID),
	)
	return dup, nil
}

// PublishEvent moves an event to published once it has a title, a date,
// a venue name and at least one ticket type. Publishing an already
// published event succeeds again.
func (s *OrganizerService) PublishEvent(ctx context.Context, id string) (*model.OrganizerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if event.Title == "" || event.Date == "" || event.Venue.Name == "" {
		return nil, validationError("missing required fields: title, date and venue name must be set")
	}
	if len(event.TicketTypes) == 0 {
		return nil, validationError("at least one ticket type is required to publish")
	}

	event.Status = model.StatusPublished
	if err := s.save(ctx, event); err != nil {
		return nil, err
	}
	s.record(ctx, model.ActivityEventPublished, event, fmt.Sprintf("Published event %q", event.Title))
	s.log.WithContext(ctx).Info("event published", zap.String("event_id", id))
	return event, nil
}

// BulkUpdateEventStatus sets status on every listed event, skipping ids that
// do not exist. It returns how many events were updated.
func (s *OrganizerService) BulkUpdateEventStatus(ctx context.Context, ids []string, status model.EventStatus) (int, error) {
	if !status.Valid() {
		return 0, validationError("unknown event status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for _, id := range ids {
		event, err := s.load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return updated, err
		}
		event.Status = status
		if err := s.save(ctx, event); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return updated, err
		}
		updated++
	}
	s.log.WithContext(ctx).Info("bulk status update",
		zap.String("status", string(status)),
		zap.Int("requested", len(ids)),
		zap.Int("updated", updated),
	)
	return updated, nil
}

// BulkDeleteEvents deletes every listed event, skipping ids that do not
// exist. It returns how many events were deleted.
func (s *OrganizerService) BulkDeleteEvents(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for _, id := range ids {
		err := s.deleteLocked(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// UploadImage forwards the file to object storage and returns its result
// unchanged. When eventID is set, the event must belong to the caller.
func (s *OrganizerService) UploadImage(ctx context.Context, file storage.File, eventID string) (model.UploadResult, error) {
	if _, err := organizer(ctx); err != nil {
		return model.UploadResult{}, err
	}
	if eventID != "" {
		if _, err := s.load(ctx, eventID); err != nil {
			return model.UploadResult{}, err
		}
	}

	res := s.uploader.UploadEventImage(ctx, file, eventID)
	log := s.log.WithContext(ctx).With(zap.String("event_id", eventID), zap.String("file", file.Name))
	if res.Success {
		log.Info("image uploaded", zap.String("url", res.URL))
	} else {
		log.Warn("image upload failed", zap.String("error", res.Error))
	}
	return res, nil
}

// load fetches an event and checks it belongs to the calling organizer.
// Events owned by someone else are reported as not found.
func (s *OrganizerService) load(ctx context.Context, id string) (*model.OrganizerEvent, error) {
	orgID, err := organizer(ctx)
	if err != nil {
		return nil, err
	}
	event, err := s.events.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errEventNotFound
		}
		return nil, storageError("get event", err)
	}
	if event.OrganizerID != orgID {
		return nil, errEventNotFound
	}
	return event, nil
}

// save refreshes UpdatedAt and writes the event back.
func (s *OrganizerService) save(ctx context.Context, event *model.OrganizerEvent) error {
	event.UpdatedAt = s.now()
	if err := s.events.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errEventNotFound
		}
		return storageError("update event", err)
	}
	return nil
}

// record appends an activity entry. A failing activity log never fails the
// operation that produced the entry.
func (s *OrganizerService) record(ctx context.Context, typ model.ActivityType, event *model.OrganizerEvent, msg string) {
	entry := model.RecentActivity{
		ID:          uuid.NewString(),
		OrganizerID: event.OrganizerID,
		Type:        typ,
		Message:     msg,
		Timestamp:   s.now(),
		EventID:     event.ID,
		EventTitle:  event.Title,
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.log.WithContext(ctx).Error("append activity",
			zap.String("type", string(typ)),
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
	}
}

func applyEventPatch(e *model.OrganizerEvent, p model.EventPatch) error {
	visibility, venueType := e.Visibility, e.Venue.Type
	if p.Visibility != nil {
		visibility = *p.Visibility
	}
	if p.Venue != nil {
		venueType = p.Venue.Type
		if venueType == "" {
			venueType = model.VenuePhysical
		}
	}
	if err := validateEnums(visibility, venueType); err != nil {
		return err
	}

	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
		e.Venue.Type = venueType
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
	if p.Gallery != nil {
		e.Gallery = append([]string{}, p.Gallery...)
	}
	if p.Tags != nil {
		e.Tags = append([]string{}, p.Tags...)
	}
	if p.Visibility != nil {
		e.Visibility = *p.Visibility
	}
	return nil
}

func validateEnums(visibility model.Visibility, venueType model.VenueType) error {
	if !visibility.Valid() {
		return validationError("unknown visibility %q", visibility)
	}
	if !venueType.Valid() {
		return validationError("unknown venue type %q", venueType)
	}
	return nil
}

func organizer(ctx context.Context) (string, error) {
	id, ok := model.OrganizerFromContext(ctx)
	if !ok {
		return "", ErrNoOrganizer
	}
	return id, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string{}, in...)
}
