package service

import (
	"context"
	"time"

	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
)

// dateLayout is the format of OrganizerEvent.Date.
const dateLayout = "2006-01-02"

// GetDashboardStats recomputes the organizer's summary from the live event
// collection. Nothing is cached.
func (s *OrganizerService) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	events, err := s.GetMyEvents(ctx)
	if err != nil {
		return nil, err
	}
	return computeStats(events, s.now()), nil
}

func computeStats(events []model.OrganizerEvent, now time.Time) *model.DashboardStats {
	stats := &model.DashboardStats{TotalEvents: len(events)}
	today := now.Format(dateLayout)

	for i := range events {
		e := &events[i]
		switch e.Status {
		case model.StatusPublished:
			stats.PublishedEvents++
		case model.StatusDraft:
			stats.DraftEvents++
		case model.StatusCompleted:
			stats.CompletedEvents++
		}
		if isOnOrAfter(e.Date, today) {
			stats.UpcomingEvents++
		}
		stats.TotalTicketsSold += e.SoldTickets
		stats.TotalRevenue += e.Revenue
	}

	if stats.TotalEvents > 0 {
		stats.AverageAttendance = float64(stats.TotalTicketsSold) / float64(stats.TotalEvents)
	}
	return stats
}

// isOnOrAfter compares two dates in dateLayout. Unparseable dates are never
// upcoming.
func isOnOrAfter(date, today string) bool {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	t, err := time.Parse(dateLayout, today)
	if err != nil {
		return false
	}
	return !d.Before(t)
}

// GetRecentActivity returns the organizer's ten most recent activity
// entries, newest first.
func (s *OrganizerService) GetRecentActivity(ctx context.Context) ([]model.RecentActivity, error) {
	orgID, err := organizer(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.activity.Recent(ctx, orgID, recentActivityLimit)
	if err != nil {
		return nil, storageError("list activity", err)
	}
	return entries, nil
}
