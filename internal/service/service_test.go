package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-organizer/internal/logger"
	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/Shivanand-hulikatti/event-organizer/internal/repository"
	"github.com/Shivanand-hulikatti/event-organizer/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrganizer = "org-1"

// stepClock advances one second on every reading so UpdatedAt ordering is
// deterministic.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type fakeUploader struct {
	result  model.UploadResult
	eventID string
	name    string
}

func (f *fakeUploader) UploadEventImage(ctx context.Context, file storage.File, eventID string) model.UploadResult {
	f.eventID = eventID
	f.name = file.Name
	return f.result
}

type failingActivityLog struct{}

func (failingActivityLog) Append(context.Context, model.RecentActivity) error {
	return errors.New("log unavailable")
}

func (failingActivityLog) Recent(context.Context, string, int) ([]model.RecentActivity, error) {
	return nil, errors.New("log unavailable")
}

func newTestService(t *testing.T, seed ...model.OrganizerEvent) (*OrganizerService, context.Context) {
	t.Helper()
	clock := &stepClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewOrganizerService(
		repository.NewMemoryEventStore(seed...),
		repository.NewMemoryActivityLog(),
		&fakeUploader{},
		logger.Nop(),
		WithClock(clock.Now),
	)
	return svc, model.WithOrganizer(context.Background(), testOrganizer)
}

func mustCreate(t *testing.T, svc *OrganizerService, ctx context.Context, form model.EventFormData) *model.OrganizerEvent {
	t.Helper()
	event, err := svc.CreateEvent(ctx, form)
	require.NoError(t, err)
	return event
}

func mustTicket(t *testing.T, svc *OrganizerService, ctx context.Context, eventID string, in model.TicketTypeInput) *model.TicketType {
	t.Helper()
	ticket, err := svc.CreateTicketType(ctx, eventID, in)
	require.NoError(t, err)
	return ticket
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func sumQuantities(e *model.OrganizerEvent) int {
	total := 0
	for _, t := range e.TicketTypes {
		total += t.Quantity
	}
	return total
}

func TestCreateEvent_StartsAsDraft(t *testing.T) {
	svc, ctx := newTestService(t)

	event := mustCreate(t, svc, ctx, model.EventFormData{Title: "Summit", Date: "2024-03-15"})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, testOrganizer, event.OrganizerID)
	assert.Equal(t, model.StatusDraft, event.Status)
	assert.Zero(t, event.TotalTickets)
	assert.Zero(t, event.SoldTickets)
	assert.Zero(t, event.Revenue)
	assert.Empty(t, event.Attendees)
	assert.Empty(t, event.TicketTypes)
	assert.Equal(t, model.Analytics{TopReferrers: []string{}}, event.Analytics)
	assert.Equal(t, event.CreatedAt, event.UpdatedAt)

	activity, err := svc.GetRecentActivity(ctx)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, model.ActivityEventCreated, activity[0].Type)
	assert.Equal(t, event.ID, activity[0].EventID)
}

func TestCreateEvent_RequiresOrganizer(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateEvent(context.Background(), model.EventFormData{Title: "x"})
	assert.ErrorIs(t, err, ErrNoOrganizer)
}

func TestPublishEvent_Scenario(t *testing.T) {
	svc, ctx := newTestService(t)
	event := mustCreate(t, svc, ctx, model.EventFormData{Title: "Summit", Date: "2024-03-15"})

	_, err := svc.PublishEvent(ctx, event.ID)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "required fields")

	_, err = svc.UpdateEvent(ctx, event.ID, model.EventPatch{Venue: &model.Venue{Name: "Hall 1"}})
	require.NoError(t, err)
	mustTicket(t, svc, ctx, event.ID, model.TicketTypeInput{Quantity: 100})

	published, err := svc.PublishEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, published.Status)

	stored, err := svc.GetEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, stored.Status)
	assert.True(t, stored.UpdatedAt.After(event.UpdatedAt))
}

func TestPublishEvent_RequiresTicketType(t *testing.T) {
	svc, ctx := newTestService(t)
	event := mustCreate(t, svc, ctx, model.EventFormData{
		Title: "Summit", Date: "2024-03-15", Venue: model.Venue{Name: "Hall 1"},
	})

	_, err := svc.PublishEvent(ctx, event.ID)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "ticket type")

	stored, err := svc.GetEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, stored.Status)
}

func TestPublishEvent_EmptyFieldsRejected(t *testing.T) {
	tests := []struct {
		name string
		form model.EventFormData
	}{
		{name: "no title", form: model.EventFormData{Date: "2024-03-15", Venue: model.Venue{Name: "Hall 1"}}},
		{name: "no date", form: model.EventFormData{Title: "Summit", Venue: model.Venue{Name: "Hall 1"}}},
		{name: "no venue name", form: model.EventFormData{Title: "Summit", Date: "2024-03-15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ctx := newTestService(t)
			event := mustCreate(t, svc, ctx, tt.form)
			mustTicket(t, svc, ctx, event.ID, model.TicketTypeInput{Quantity: 10})

			_, err := svc.PublishEvent(ctx, event.ID)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

// Only emptiness is checked; whitespace counts as a value.
func TestPublishEvent_WhitespaceTitleIsNotEmpty(t *testing.T) {
	svc, ctx := newTestService(t)
	event := mustCreate(t, svc, ctx, model.EventFormData{
		Title: "   ", Date: "2024-03-15", Venue: model.Venue{Name: "Hall 1"},
	})
	mustTicket(t, svc, ctx, event.ID, model.TicketTypeInput{Quantity: 10})

	published, err := svc.PublishEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, published.Status)
}

// Publishing twice is allowed; there is no guard against re-publishing.
func TestPublishEvent_RepublishSucceeds(t *testing.T) {
	svc, ctx := newTestService(t)
	event := mustCreate(t, svc, ctx, model.EventFormData{
		Title: "Summit", Date: "2024-03-15", Venue: model.Venue{Name: "Hall 1"},
	})
	mustTicket(t, svc, ctx, event.ID, model.TicketTypeInput{Quantity: 10})

	_, err := svc.PublishEvent(ctx, event.ID)
	require.NoError(t, err)
	again, err := svc.PublishEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, again.Status)
}

func TestPublishEvent_NotFound(t *testing.T) {
	svc, ctx := newTestService(t)

	_, err := svc.PublishEvent(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetEventByID_OtherOrganizerIsNotFound(t *testing.T) {
	svc, ctx := newTestService(t)
	event := mustCreate(t, svc, ctx, model.EventFormData{Title: "Mine"})

	other := model.WithOrganizer(context.Background(), "org-2")
	_, err := svc.GetEventByID(other, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	events, err := svc.GetMyEvents(other)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestGetMyEvents_MostRecentlyUpdatedFirst(t *testing.T) {
	svc, ctx := newTestService(t)
	a := mustCreate(t, svc, ctx, model.EventFormData{Title: "A"})
	b := mustCreate(t, svc, ctx, model.EventFormData{Title: "B"})
	c := mustCreate(t, svc, ctx, model.EventFormData{Title: "C"})

	_, err := svc.UpdateEvent(ctx, a.ID, model.EventPatch{Description: strPtr("touched")})
	require.NoError(t, err)

	events, err := svc.GetMyEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{a.ID, c.ID, b.ID}, []string{events[0].ID, events[1].ID, events[2].ID})
}

func TestUpdateEvent_ShallowMerge(t *testing.T) {
	svc, ctx := newTestService(t)
	event := mustCreate(t, svc, ctx, model.EventFormData{
		Title: "Summit", Description: "keep me", Tags: []string{"a"},
		Venue: model.Venue{Name: "Old", Address: "1 Street", Capacity: 10},
	})

	updated, err := svc.UpdateEvent(ctx, event.ID, model.EventPatch{
		Title: strPtr("Summit 2024"),
		Venue: &model.Venue{Name: "Hall 1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Summit 2024", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, []string{"a"}, updated.Tags)
	assert.Equal(t, model.Venue{Name: "Hall 1", Type: model.VenuePhysical}, updated.Venue)

	_, err = svc.UpdateEvent(ctx, "missing", model.EventPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateEvent_RejectsUnknownEnums(t *testing.T) {
	svc, ctx := newTestService(t)

	_, err := svc.CreateEvent(ctx, model.EventFormData{Title: "x", Visibility: "bogus"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateEvent(ctx, model.EventFormData{Title: "x", Venue: model.Venue{Type: "underwater"}})
	assert.ErrorIs(t, err, ErrValidationFailed)

	events, err := svc.GetMyEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUpdateEvent_RejectsUnknownEnums(t *testing.T) {
	svc, ctx := newTestService(t)
	event := mustCreate(t, svc, ctx, model.EventFormData{Title: "Summit", Visibility: model.VisibilityPrivate})

	bogus := model.Visibility("bogus")
	_, err := svc.UpdateEvent(ctx, event.ID, model.EventPatch{Title: strPtr("changed"), Visibility: &bogus})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.UpdateEvent(ctx, event.ID, model.EventPatch{Venue: &model.Venue{Name: "Pool", Type: "underwater"}})
	assert.ErrorIs(t, err, ErrValidationFailed)

	stored, err := svc.GetEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summit", stored.Title)
	assert.Equal(t, model.VisibilityPrivate, stored.Visibility)
	assert.Equal(t, model.VenuePhysical, stored.Venue.Type)

	unlisted := model.VisibilityUnlisted
	updated, err := svc.UpdateEvent(ctx, event.ID, model.EventPatch{Visibility: &unlisted})
	require.NoError(t, err)
	assert.Equal(t, model.VisibilityUnlisted, updated.Visibility)
}

func TestDeleteEvent(t *testing.T) {
	svc, ctx := newTestService(t)
	event := mustCreate(t, svc, ctx, model.EventFormData{Title: "Gone"})

	require.NoError(t, svc.DeleteEvent(ctx, event.ID))
	_, err := svc.GetEventByID(ctx, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, event.ID), ErrNotFound)

	activity, err := svc.GetRecentActivity(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, activity)
	assert.Equal(t, model.ActivityEventDeleted, activity[0].Type)
	assert.Equal(t, "Gone", activity[0].EventTitle)
}

func TestDuplicateEvent_ResetsCounters(t *testing.T) {
	svc, ctx := newTestService(t)
	src := mustCreate(t, svc, ctx, model.EventFormData{
		Title: "Summit", Date: "2024-03-15", Venue: model.Venue{Name: "Hall 1"},
	})
	ticket := mustTicket(t, svc, ctx, src.ID, model.TicketTypeInput{Name: "GA", Price: 25, Quantity: 50})
	_, err := svc.RecordTicketSale(ctx, src.ID, ticket.ID, model.AttendeeInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	_, err = svc.PublishEvent(ctx, src.ID)
	require.NoError(t, err)

	dup, err := svc.DuplicateEvent(ctx, src.ID)
	require.NoError(t, err)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "Summit (Copy)", dup.Title)
	assert.Equal(t, model.StatusDraft, dup.Status)
	assert.Zero(t, dup.SoldTickets)
	assert.Zero(t, dup.Revenue)
	assert.Empty(t, dup.Attendees)
	assert.Zero(t, dup.Analytics.Registrations)
	require.Len(t, dup.TicketTypes, 1)
	assert.NotEqual(t, ticket.ID, dup.TicketTypes[0].ID)
	assert.Zero(t, dup.TicketTypes[0].Sold)
	assert.Equal(t, 50, dup.TicketTypes[0].Available)
	assert.Equal(t, sumQuantities(dup), dup.TotalTickets)

	original, err := svc.GetEventByID(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, original.SoldTickets)
	assert.Equal(t, model.StatusPublished, original.Status)

	_, err = svc.DuplicateEvent(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkDeleteEvents_SkipsMissing(t *testing.T) {
	svc, ctx := newTestService(t)
	keep := mustCreate(t, svc, ctx, model.EventFormData{Title: "Keep"})
	drop := mustCreate(t, svc, ctx, model.EventFormData{Title: "Drop"})

	n, err := svc.BulkDeleteEvents(ctx, []string{drop.ID, "does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	events, err := svc.GetMyEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, keep.ID, events[0].ID)
}

func TestBulkUpdateEventStatus(t *testing.T) {
	svc, ctx := newTestService(t)
	a := mustCreate(t, svc, ctx, model.EventFormData{Title: "A"})
	b := mustCreate(t, svc, ctx, model.EventFormData{Title: "B"})

	n, err := svc.BulkUpdateEventStatus(ctx, []string{a.ID, "nope", b.ID}, model.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, id := range []string{a.ID, b.ID} {
		e, err := svc.GetEventByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, e.Status)
	}

	_, err = svc.BulkUpdateEventStatus(ctx, []string{a.ID}, "archived")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestActivityLogFailureDoesNotFailOperation(t *testing.T) {
	clock := &stepClock{t: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewOrganizerService(
		repository.NewMemoryEventStore(),
		failingActivityLog{},
		&fakeUploader{},
		logger.Nop(),
		WithClock(clock.Now),
	)
	ctx := model.WithOrganizer(context.Background(), testOrganizer)

	_, err := svc.CreateEvent(ctx, model.EventFormData{Title: "Still created"})
	require.NoError(t, err)

	_, err = svc.GetRecentActivity(ctx)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestUploadImage_PassesResultThrough(t *testing.T) {
	up := &fakeUploader{result: model.UploadResult{Success: true, URL: "https://cdn.example.com/a.png"}}
	svc := NewOrganizerService(repository.NewMemoryEventStore(), repository.NewMemoryActivityLog(), up, logger.Nop())
	ctx := model.WithOrganizer(context.Background(), testOrganizer)
	event := mustCreate(t, svc, ctx, model.EventFormData{Title: "Summit"})

	res, err := svc.UploadImage(ctx, storage.File{Name: "a.png"}, event.ID)
	require.NoError(t, err)
	assert.Equal(t, up.result, res)
	assert.Equal(t, event.ID, up.eventID)
	assert.Equal(t, "a.png", up.name)

	up.result = model.UploadResult{Success: false, Error: "bucket not found"}
	res, err = svc.UploadImage(ctx, storage.File{Name: "b.png"}, "")
	require.NoError(t, err)
	assert.Equal(t, model.UploadResult{Success: false, Error: "bucket not found"}, res)
}

func TestUploadImage_RejectsForeignEvent(t *testing.T) {
	up := &fakeUploader{result: model.UploadResult{Success: true, URL: "https://cdn.example.com/a.png"}}
	svc := NewOrganizerService(repository.NewMemoryEventStore(), repository.NewMemoryActivityLog(), up, logger.Nop())
	owner := model.WithOrganizer(context.Background(), testOrganizer)
	event := mustCreate(t, svc, owner, model.EventFormData{Title: "Summit"})

	intruder := model.WithOrganizer(context.Background(), "org-2")
	_, err := svc.UploadImage(intruder, storage.File{Name: "a.png"}, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UploadImage(owner, storage.File{Name: "a.png"}, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UploadImage(context.Background(), storage.File{Name: "a.png"}, "")
	assert.ErrorIs(t, err, ErrNoOrganizer)

	assert.Empty(t, up.eventID, "nothing reaches storage")
	assert.Empty(t, up.name)
}

func TestDemoEvents_AreConsistent(t *testing.T) {
	events := DemoEvents(testOrganizer, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NotEmpty(t, events)

	for i := range events {
		e := &events[i]
		sold, revenue := 0, 0.0
		for _, tt := range e.TicketTypes {
			sold += tt.Sold
			revenue += tt.Price * float64(tt.Sold)
			assert.Equal(t, tt.Quantity-tt.Sold, tt.Available)
		}
		assert.Equal(t, sumQuantities(e), e.TotalTickets, e.Title)
		assert.Equal(t, sold, e.SoldTickets, e.Title)
		assert.InDelta(t, revenue, e.Revenue, 0.001, e.Title)
		assert.Len(t, e.Attendees, sold, e.Title)
	}
}
