package service

import (
	"context"
	"hash/fnv"
	"math/rand/v2"

	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
)

// analyticsDays is the length of the registrations-over-time series.
const analyticsDays = 7

var sampleLocations = []string{
	"New York", "San Francisco", "London", "Berlin", "Toronto",
}

// GetEventAnalytics returns the event's analytics record with a per ticket
// type sales breakdown. The time series and geography are illustrative
// figures for the dashboard charts; they are stable per event but not
// derived from attendee data.
func (s *OrganizerService) GetEventAnalytics(ctx context.Context, eventID string) (*model.EventAnalytics, error) {
	event, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}

	report := &model.EventAnalytics{
		EventID:     event.ID,
		Analytics:   event.Analytics,
		TicketSales: make([]model.TicketSales, 0, len(event.TicketTypes)),
	}
	if report.Analytics.TopReferrers == nil {
		report.Analytics.TopReferrers = []string{}
	}
	for _, t := range event.TicketTypes {
		report.TicketSales = append(report.TicketSales, model.TicketSales{
			TicketTypeID: t.ID,
			Name:         t.Name,
			Sold:         t.Sold,
			Revenue:      t.Price * float64(t.Sold),
		})
	}

	rng := rand.New(rand.NewPCG(seedFor(event.ID), 0))
	today := s.now()
	report.RegistrationsOverTime = make([]model.DailyRegistrations, 0, analyticsDays)
	for i := analyticsDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		report.RegistrationsOverTime = append(report.RegistrationsOverTime, model.DailyRegistrations{
			Date:          day.Format(dateLayout),
			Registrations: rng.IntN(50) + 10,
		})
	}

	report.Geography = make([]model.LocationCount, 0, len(sampleLocations))
	for _, loc := range sampleLocations {
		report.Geography = append(report.Geography, model.LocationCount{
			Location: loc,
			Count:    rng.IntN(100) + 5,
		})
	}
	return report, nil
}

func seedFor(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}
