// Package model defines the core domain types for organizer event management.
package model

import "time"

// EventStatus is the lifecycle state of an organizer event.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Visibility is advisory only; nothing in this module enforces it.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return true
	}
	return false
}

// VenueType distinguishes in-person from online events.
type VenueType string

const (
	VenuePhysical VenueType = "physical"
	VenueVirtual  VenueType = "virtual"
	VenueHybrid   VenueType = "hybrid"
)

// Valid reports whether t is a known venue type.
func (t VenueType) Valid() bool {
	switch t {
	case VenuePhysical, VenueVirtual, VenueHybrid:
		return true
	}
	return false
}

// Venue describes where an event takes place.
type Venue struct {
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Capacity int       `json:"capacity"`
	Type     VenueType `json:"type"`
}

// Analytics holds the per-event engagement counters shown on the dashboard.
// Views and referrers are fabricated; registrations track recorded sales.
type Analytics struct {
	Views          int      `json:"views"`
	Registrations  int      `json:"registrations"`
	ConversionRate float64  `json:"conversionRate"`
	TopReferrers   []string `json:"topReferrers"`
}

// OrganizerEvent is an event record owned by a single organizer.
//
// TotalTickets, SoldTickets and Revenue are maintained incrementally by the
// service on every ticket mutation rather than recomputed on read.
type OrganizerEvent struct {
	ID           string       `json:"id"`
	OrganizerID  string       `json:"organizerId"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	Date         string       `json:"date"`
	Time         string       `json:"time"`
	EndTime      string       `json:"endTime"`
	Venue        Venue        `json:"venue"`
	Image        string       `json:"image"`
	Gallery      []string     `json:"gallery"`
	Tags         []string     `json:"tags"`
	Status       EventStatus  `json:"status"`
	Visibility   Visibility   `json:"visibility"`
	TicketTypes  []TicketType `json:"ticketTypes"`
	Attendees    []Attendee   `json:"attendees"`
	TotalTickets int          `json:"totalTickets"`
	SoldTickets  int          `json:"soldTickets"`
	Revenue      float64      `json:"revenue"`
	Analytics    Analytics    `json:"analytics"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// TicketByID returns the index of the ticket type with the given id, or -1.
func (e *OrganizerEvent) TicketByID(id string) int {
	for i := range e.TicketTypes {
		if e.TicketTypes[i].ID == id {
			return i
		}
	}
	return -1
}

// AttendeeByID returns the index of the attendee with the given id, or -1.
func (e *OrganizerEvent) AttendeeByID(id string) int {
	for i := range e.Attendees {
		if e.Attendees[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers never share slices with the store.
func (e *OrganizerEvent) Clone() *OrganizerEvent {
	if e == nil {
		return nil
	}
	c := *e
	c.Gallery = cloneStrings(e.Gallery)
	c.Tags = cloneStrings(e.Tags)
	c.Analytics.TopReferrers = cloneStrings(e.Analytics.TopReferrers)

	c.TicketTypes = make([]TicketType, len(e.TicketTypes))
	for i, t := range e.TicketTypes {
		c.TicketTypes[i] = t.clone()
	}
	c.Attendees = make([]Attendee, len(e.Attendees))
	for i, a := range e.Attendees {
		c.Attendees[i] = a.clone()
	}
	return &c
}

// TicketType is one priced inventory bucket within an event.
type TicketType struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	Currency     string     `json:"currency"`
	Quantity     int        `json:"quantity"`
	Sold         int        `json:"sold"`
	Available    int        `json:"available"`
	SaleStart    *time.Time `json:"saleStart,omitempty"`
	SaleEnd      *time.Time `json:"saleEnd,omitempty"`
	IsActive     bool       `json:"isActive"`
	Benefits     []string   `json:"benefits"`
	Restrictions []string   `json:"restrictions"`
}

// IsSoldOut returns true when no tickets of this type remain.
func (t *TicketType) IsSoldOut() bool {
	return t.Sold >= t.Quantity
}

func (t TicketType) clone() TicketType {
	t.Benefits = cloneStrings(t.Benefits)
	t.Restrictions = cloneStrings(t.Restrictions)
	if t.SaleStart != nil {
		v := *t.SaleStart
		t.SaleStart = &v
	}
	if t.SaleEnd != nil {
		v := *t.SaleEnd
		t.SaleEnd = &v
	}
	return t
}

// CheckInStatus tracks whether an attendee showed up.
type CheckInStatus string

const (
	CheckInPending   CheckInStatus = "pending"
	CheckInCheckedIn CheckInStatus = "checked-in"
	CheckInNoShow    CheckInStatus = "no-show"
)

// Valid reports whether s is a known check-in status.
func (s CheckInStatus) Valid() bool {
	switch s {
	case CheckInPending, CheckInCheckedIn, CheckInNoShow:
		return true
	}
	return false
}

// PaymentStatus tracks the payment state of a registration.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Attendee is a registration against one ticket type of one event.
type Attendee struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	TicketType       string            `json:"ticketType"`
	TicketTypeID     string            `json:"ticketTypeId"`
	RegistrationDate time.Time         `json:"registrationDate"`
	CheckInStatus    CheckInStatus     `json:"checkInStatus"`
	PaymentStatus    PaymentStatus     `json:"paymentStatus"`
	AdditionalInfo   map[string]string `json:"additionalInfo,omitempty"`
}

func (a Attendee) clone() Attendee {
	if a.AdditionalInfo != nil {
		info := make(map[string]string, len(a.AdditionalInfo))
		for k, v := range a.AdditionalInfo {
			info[k] = v
		}
		a.AdditionalInfo = info
	}
	return a
}

// ActivityType identifies the kind of state change an activity entry records.
type ActivityType string

const (
	ActivityEventCreated    ActivityType = "event_created"
	ActivityEventPublished  ActivityType = "event_published"
	ActivityEventDeleted    ActivityType = "event_deleted"
	ActivityEventDuplicated ActivityType = "event_duplicated"
	ActivityTicketSold      ActivityType = "ticket_sold"
)

// RecentActivity is an append-only log entry describing a state change.
type RecentActivity struct {
	ID          string       `json:"id"`
	OrganizerID string       `json:"organizerId"`
	Type        ActivityType `json:"type"`
	Message     string       `json:"message"`
	Timestamp   time.Time    `json:"timestamp"`
	EventID     string       `json:"eventId,omitempty"`
	EventTitle  string       `json:"eventTitle,omitempty"`
}

// DashboardStats is recomputed from the live event collection on every read.
type DashboardStats struct {
	TotalEvents       int     `json:"totalEvents"`
	PublishedEvents   int     `json:"publishedEvents"`
	DraftEvents       int     `json:"draftEvents"`
	UpcomingEvents    int     `json:"upcomingEvents"`
	CompletedEvents   int     `json:"completedEvents"`
	TotalTicketsSold  int     `json:"totalTicketsSold"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageAttendance float64 `json:"averageAttendance"`
}

// TicketSales is the sold/revenue breakdown for one ticket type.
type TicketSales struct {
	TicketTypeID string  `json:"ticketTypeId"`
	Name         string  `json:"name"`
	Sold         int     `json:"sold"`
	Revenue      float64 `json:"revenue"`
}

// DailyRegistrations is one point of the registrations-over-time series.
type DailyRegistrations struct {
	Date          string `json:"date"`
	Registrations int    `json:"registrations"`
}

// LocationCount is one row of the attendee geography breakdown.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// EventAnalytics is the report returned for a single event. The time series
// and geography rows are display data only, not derived from registrations.
type EventAnalytics struct {
	EventID               string               `json:"eventId"`
	Analytics             Analytics            `json:"analytics"`
	TicketSales           []TicketSales        `json:"ticketSales"`
	RegistrationsOverTime []DailyRegistrations `json:"registrationsOverTime"`
	Geography             []LocationCount      `json:"geography"`
}

// UploadResult mirrors the object-storage collaborator's contract.
type UploadResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Result is the uniform envelope every API operation responds with.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
