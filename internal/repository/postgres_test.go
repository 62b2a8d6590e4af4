package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-organizer/internal/config"
	"github.com/Shivanand-hulikatti/event-organizer/internal/database"
	"github.com/Shivanand-hulikatti/event-organizer/internal/logger"
	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipIfNoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
}

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	cfg := config.DatabaseConfig{
		Host:            getEnv("DATABASE_HOST", "localhost"),
		Port:            5432,
		User:            getEnv("DATABASE_USER", "postgres"),
		Password:        getEnv("DATABASE_PASSWORD", "postgres"),
		DBName:          getEnv("DATABASE_DBNAME", "eventorganizer"),
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: time.Minute,
	}
	pool, err := database.NewPool(ctx, cfg, logger.Nop())
	require.NoError(t, err, "connect to database")
	require.NoError(t, Migrate(ctx, pool))
	t.Cleanup(pool.Close)
	return pool
}

func cleanupOrganizer(t *testing.T, pool *pgxpool.Pool, organizerID string) {
	ctx := context.Background()
	if _, err := pool.Exec(ctx, "DELETE FROM organizer_events WHERE organizer_id = $1", organizerID); err != nil {
		t.Logf("Warning: failed to cleanup events: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM organizer_activity WHERE organizer_id = $1", organizerID); err != nil {
		t.Logf("Warning: failed to cleanup activity: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestPostgresEventStore_Integration(t *testing.T) {
	skipIfNoIntegration(t)
	pool := setupTestDB(t)
	ctx := context.Background()
	owner := "test-org-" + uuid.NewString()
	defer cleanupOrganizer(t, pool, owner)

	store := NewPostgresEventStore(pool)

	first := newEvent(uuid.NewString(), owner, base)
	second := newEvent(uuid.NewString(), owner, base.Add(time.Hour))
	require.NoError(t, store.Insert(ctx, first))
	require.NoError(t, store.Insert(ctx, second))
	assert.ErrorIs(t, store.Insert(ctx, first), ErrDuplicateID)

	got, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Title, got.Title)
	assert.Equal(t, first.TicketTypes, got.TicketTypes)

	events, err := store.ListByOrganizer(ctx, owner)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, second.ID, events[0].ID)

	got.Status = model.StatusPublished
	got.UpdatedAt = base.Add(2 * time.Hour)
	require.NoError(t, store.Update(ctx, got))
	events, err = store.ListByOrganizer(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, first.ID, events[0].ID)
	assert.Equal(t, model.StatusPublished, events[0].Status)

	require.NoError(t, store.Delete(ctx, first.ID))
	_, err = store.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, first.ID), ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, first), ErrNotFound)
}

func TestPostgresActivityLog_Integration(t *testing.T) {
	skipIfNoIntegration(t)
	pool := setupTestDB(t)
	ctx := context.Background()
	owner := "test-org-" + uuid.NewString()
	defer cleanupOrganizer(t, pool, owner)

	log := NewPostgresActivityLog(pool)
	for i := 0; i < 3; i++ {
		require.NoError(t, log.Append(ctx, model.RecentActivity{
			ID:          uuid.NewString(),
			OrganizerID: owner,
			Type:        model.ActivityEventCreated,
			Message:     "created",
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := log.Recent(ctx, owner, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Timestamp.After(entries[1].Timestamp))
	assert.Equal(t, model.ActivityEventCreated, entries[0].Type)
}

func TestPostgresActivityLog_SameTimestampNewestFirst_Integration(t *testing.T) {
	skipIfNoIntegration(t)
	pool := setupTestDB(t)
	ctx := context.Background()
	owner := "test-org-" + uuid.NewString()
	defer cleanupOrganizer(t, pool, owner)

	log := NewPostgresActivityLog(pool)
	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, log.Append(ctx, model.RecentActivity{
			ID:          uuid.NewString(),
			OrganizerID: owner,
			Type:        model.ActivityEventCreated,
			Message:     msg,
			Timestamp:   base,
		}))
	}

	entries, err := log.Recent(ctx, owner, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"third", "second", "first"},
		[]string{entries[0].Message, entries[1].Message, entries[2].Message})
}
