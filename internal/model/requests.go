package model

import "time"

// EventFormData is the payload for creating a new event.
type EventFormData struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	EndTime     string     `json:"endTime"`
	Venue       Venue      `json:"venue"`
	Image       string     `json:"image"`
	Gallery     []string   `json:"gallery"`
	Tags        []string   `json:"tags"`
	Visibility  Visibility `json:"visibility"`
}

// EventPatch is a partial EventFormData. Nil fields are left untouched;
// a provided Venue replaces the whole venue.
type EventPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Date        *string     `json:"date,omitempty"`
	Time        *string     `json:"time,omitempty"`
	EndTime     *string     `json:"endTime,omitempty"`
	Venue       *Venue      `json:"venue,omitempty"`
	Image       *string     `json:"image,omitempty"`
	Gallery     []string    `json:"gallery,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Visibility  *Visibility `json:"visibility,omitempty"`
}

// TicketTypeInput is the payload for creating a ticket type.
type TicketTypeInput struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	Currency     string     `json:"currency"`
	Quantity     int        `json:"quantity"`
	SaleStart    *time.Time `json:"saleStart,omitempty"`
	SaleEnd      *time.Time `json:"saleEnd,omitempty"`
	IsActive     *bool      `json:"isActive,omitempty"`
	Benefits     []string   `json:"benefits"`
	Restrictions []string   `json:"restrictions"`
}

// TicketTypePatch is a partial TicketTypeInput.
type TicketTypePatch struct {
	Name         *string    `json:"name,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	Currency     *string    `json:"currency,omitempty"`
	Quantity     *int       `json:"quantity,omitempty"`
	SaleStart    *time.Time `json:"saleStart,omitempty"`
	SaleEnd      *time.Time `json:"saleEnd,omitempty"`
	IsActive     *bool      `json:"isActive,omitempty"`
	Benefits     []string   `json:"benefits,omitempty"`
	Restrictions []string   `json:"restrictions,omitempty"`
}

// AttendeeInput is the buyer information captured when a ticket is sold.
type AttendeeInput struct {
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	AdditionalInfo map[string]string `json:"additionalInfo,omitempty"`
}

// AttendeeStatusRequest is the payload for a check-in status change.
type AttendeeStatusRequest struct {
	Status CheckInStatus `json:"status"`
}

// BulkStatusRequest applies one status to several events.
type BulkStatusRequest struct {
	IDs    []string    `json:"ids"`
	Status EventStatus `json:"status"`
}

// BulkDeleteRequest removes several events.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}
