package model

import "context"

type organizerKey struct{}

// WithOrganizer returns a context carrying the calling organizer's id.
func WithOrganizer(ctx context.Context, organizerID string) context.Context {
	return context.WithValue(ctx, organizerKey{}, organizerID)
}

// OrganizerFromContext returns the organizer id set by WithOrganizer.
func OrganizerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(organizerKey{}).(string)
	return id, ok && id != ""
}
