package service

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCurrency = "USD"

// CreateTicketType appends a ticket type to the event and grows the
// event's TotalTickets by its quantity.
func (s *OrganizerService) CreateTicketType(ctx context.Context, eventID string, in model.TicketTypeInput) (*model.TicketType, error) {
	if in.Quantity < 0 {
		return nil, validationError("quantity cannot be negative")
	}
	if in.Price < 0 {
		return nil, validationError("price cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ticket := model.TicketType{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Currency:     in.Currency,
		Quantity:     in.Quantity,
		Sold:         0,
		Available:    in.Quantity,
		SaleStart:    in.SaleStart,
		SaleEnd:      in.SaleEnd,
		IsActive:     true,
		Benefits:     nonNil(in.Benefits),
		Restrictions: nonNil(in.Restrictions),
	}
	if ticket.Currency == "" {
		ticket.Currency = defaultCurrency
	}
	if in.IsActive != nil {
		ticket.IsActive = *in.IsActive
	}

	event.TicketTypes = append(event.TicketTypes, ticket)
	event.TotalTickets += ticket.Quantity
	if err := s.save(ctx, event); err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Info("ticket type created",
		zap.String("event_id", eventID),
		zap.String("ticket_type_id", ticket.ID),
		zap.Int("quantity", ticket.Quantity),
	)
	return &ticket, nil
}

// UpdateTicketType merges the provided fields. Available is recomputed from
// the (possibly new) quantity and the existing sold count, and the event's
// TotalTickets moves by the quantity delta.
func (s *OrganizerService) UpdateTicketType(ctx context.Context, eventID, ticketID string, patch model.TicketTypePatch) (*model.TicketType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	idx := event.TicketByID(ticketID)
	if idx < 0 {
		return nil, errTicketNotFound
	}
	t := &event.TicketTypes[idx]

	quantity := t.Quantity
	if patch.Quantity != nil {
		quantity = *patch.Quantity
	}
	if quantity < 0 {
		return nil, validationError("quantity cannot be negative")
	}
	if quantity < t.Sold {
		return nil, validationError("quantity cannot be lower than the %d tickets already sold", t.Sold)
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, validationError("price cannot be negative")
	}

	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Price != nil {
		t.Price = *patch.Price
	}
	if patch.Currency != nil {
		t.Currency = *patch.Currency
	}
	if patch.SaleStart != nil {
		t.SaleStart = patch.SaleStart
	}
	if patch.SaleEnd != nil {
		t.SaleEnd = patch.SaleEnd
	}
	if patch.IsActive != nil {
		t.IsActive = *patch.IsActive
	}
	if patch.Benefits != nil {
		t.Benefits = append([]string{}, patch.Benefits...)
	}
	if patch.Restrictions != nil {
		t.Restrictions = append([]string{}, patch.Restrictions...)
	}

	event.TotalTickets += quantity - t.Quantity
	t.Quantity = quantity
	t.Available = quantity - t.Sold

	updated := *t
	if err := s.save(ctx, event); err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Info("ticket type updated",
		zap.String("event_id", eventID),
		zap.String("ticket_type_id", ticketID),
	)
	return &updated, nil
}

// DeleteTicketType removes a ticket type that has no sales and shrinks the
// event's TotalTickets by its quantity.
func (s *OrganizerService) DeleteTicketType(ctx context.Context, eventID, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.load(ctx, eventID)
	if err != nil {
		return err
	}
	idx := event.TicketByID(ticketID)
	if idx < 0 {
		return errTicketNotFound
	}
	t := event.TicketTypes[idx]
	if t.Sold > 0 {
		return ErrTicketTypeHasSales
	}

	event.TicketTypes = append(event.TicketTypes[:idx], event.TicketTypes[idx+1:]...)
	event.TotalTickets -= t.Quantity
	if err := s.save(ctx, event); err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("ticket type deleted",
		zap.String("event_id", eventID),
		zap.String("ticket_type_id", ticketID),
	)
	return nil
}

// RecordTicketSale registers one sold ticket: it bumps the ticket type and
// event counters, adds the buyer as an attendee and logs a ticket_sold entry.
func (s *OrganizerService) RecordTicketSale(ctx context.Context, eventID, ticketID string, buyer model.AttendeeInput) (*model.Attendee, error) {
	if blank(buyer.Name) {
		return nil, validationError("attendee name is required")
	}
	if _, err := mail.ParseAddress(buyer.Email); err != nil {
		return nil, validationError("attendee email is not a valid email address")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	idx := event.TicketByID(ticketID)
	if idx < 0 {
		return nil, errTicketNotFound
	}
	t := &event.TicketTypes[idx]

	now := s.now()
	if !t.IsActive ||
		(t.SaleStart != nil && now.Before(*t.SaleStart)) ||
		(t.SaleEnd != nil && now.After(*t.SaleEnd)) {
		return nil, ErrTicketTypeInactive
	}
	if t.IsSoldOut() {
		return nil, ErrSoldOut
	}

	t.Sold++
	t.Available = t.Quantity - t.Sold
	event.SoldTickets++
	event.Revenue += t.Price
	event.Analytics.Registrations++
	if event.Analytics.Views > 0 {
		event.Analytics.ConversionRate = conversionRate(event.Analytics.Registrations, event.Analytics.Views)
	}

	attendee := model.Attendee{
		ID:               uuid.NewString(),
		Name:             buyer.Name,
		Email:            buyer.Email,
		TicketType:       t.Name,
		TicketTypeID:     t.ID,
		RegistrationDate: now,
		CheckInStatus:    model.CheckInPending,
		PaymentStatus:    model.PaymentCompleted,
		AdditionalInfo:   buyer.AdditionalInfo,
	}
	event.Attendees = append(event.Attendees, attendee)
	ticketName := t.Name

	if err := s.save(ctx, event); err != nil {
		return nil, err
	}
	s.record(ctx, model.ActivityTicketSold, event,
		fmt.Sprintf("%s bought a %q ticket for %q", buyer.Name, ticketName, event.Title))
	s.log.WithContext(ctx).Info("ticket sold",
		zap.String("event_id", eventID),
		zap.String("ticket_type_id", ticketID),
		zap.String("attendee_id", attendee.ID),
	)
	return &attendee, nil
}

// conversionRate is registrations per view as a percentage, two decimals.
func conversionRate(registrations, views int) float64 {
	if views <= 0 {
		return 0
	}
	pct := float64(registrations) / float64(views) * 100
	return float64(int(pct*100+0.5)) / 100
}
