package service

import (
	"time"

	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/google/uuid"
)

// DemoEvents returns a small, internally consistent data set for local
// development: one published conference with sales and one draft meetup.
func DemoEvents(organizerID string, now time.Time) []model.OrganizerEvent {
	now = now.UTC()

	earlyBird := model.TicketType{
		ID: uuid.NewString(), Name: "Early Bird", Description: "Discounted admission",
		Price: 99, Currency: defaultCurrency, Quantity: 100, Sold: 2, Available: 98,
		IsActive: true, Benefits: []string{"Conference access", "Lunch"}, Restrictions: []string{},
	}
	vip := model.TicketType{
		ID: uuid.NewString(), Name: "VIP", Description: "Front rows and speaker dinner",
		Price: 299, Currency: defaultCurrency, Quantity: 20, Sold: 1, Available: 19,
		IsActive: true, Benefits: []string{"Conference access", "Speaker dinner"}, Restrictions: []string{"Non-transferable"},
	}
	attendees := []model.Attendee{
		demoAttendee("Ada Lovelace", "ada@example.com", earlyBird, now.Add(-72*time.Hour), model.CheckInPending),
		demoAttendee("Alan Turing", "alan@example.com", earlyBird, now.Add(-48*time.Hour), model.CheckInPending),
		demoAttendee("Grace Hopper", "grace@example.com", vip, now.Add(-24*time.Hour), model.CheckInCheckedIn),
	}

	summit := model.OrganizerEvent{
		ID:          uuid.NewString(),
		OrganizerID: organizerID,
		Title:       "Tech Innovation Summit",
		Description: "A day of talks on what is next in software.",
		Category:    "Technology",
		Date:        now.AddDate(0, 1, 0).Format(dateLayout),
		Time:        "09:00",
		EndTime:     "17:00",
		Venue: model.Venue{
			Name: "Convention Center Hall 1", Address: "1 Main St", Capacity: 500, Type: model.VenuePhysical,
		},
		Gallery:      []string{},
		Tags:         []string{"tech", "conference"},
		Status:       model.StatusPublished,
		Visibility:   model.VisibilityPublic,
		TicketTypes:  []model.TicketType{earlyBird, vip},
		Attendees:    attendees,
		TotalTickets: earlyBird.Quantity + vip.Quantity,
		SoldTickets:  earlyBird.Sold + vip.Sold,
		Revenue:      earlyBird.Price*float64(earlyBird.Sold) + vip.Price*float64(vip.Sold),
		Analytics: model.Analytics{
			Views:          150,
			Registrations:  len(attendees),
			ConversionRate: conversionRate(len(attendees), 150),
			TopReferrers:   []string{"twitter.com", "linkedin.com", "newsletter"},
		},
		CreatedAt: now.Add(-96 * time.Hour),
		UpdatedAt: now.Add(-24 * time.Hour),
	}

	meetup := model.OrganizerEvent{
		ID:          uuid.NewString(),
		OrganizerID: organizerID,
		Title:       "Go Meetup",
		Description: "Monthly community meetup.",
		Category:    "Community",
		Venue:       model.Venue{Type: model.VenueVirtual},
		Gallery:     []string{},
		Tags:        []string{"go"},
		Status:      model.StatusDraft,
		Visibility:  model.VisibilityUnlisted,
		TicketTypes: []model.TicketType{},
		Attendees:   []model.Attendee{},
		Analytics:   model.Analytics{TopReferrers: []string{}},
		CreatedAt:   now.Add(-12 * time.Hour),
		UpdatedAt:   now.Add(-12 * time.Hour),
	}

	return []model.OrganizerEvent{summit, meetup}
}

func demoAttendee(name, email string, t model.TicketType, at time.Time, status model.CheckInStatus) model.Attendee {
	return model.Attendee{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            email,
		TicketType:       t.Name,
		TicketTypeID:     t.ID,
		RegistrationDate: at,
		CheckInStatus:    status,
		PaymentStatus:    model.PaymentCompleted,
	}
}
