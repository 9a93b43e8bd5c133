package repositories

import (
	"context"
	"database/sql"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/db"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL or skips.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(conn))
	return conn
}

func TestPostgresRunRepositoryRoundTrip(t *testing.T) {
	conn := openTestDB(t)
	repo := NewPostgresRunRepository(conn)
	ctx := context.Background()

	run := domain.Run{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
		TotalOrders:   3,
		TotalVehicles: 2,
		Results: []domain.RunResult{
			{
				Algorithm:       "distance_first",
				ElapsedMs:       4,
				TotalDistanceKm: 12.3,
				AssignedOrders:  3,
				VehiclesUsed:    1,
				AvgUtilization:  91.6,
				Routes: []domain.Route{{
					Vehicle:         domain.NewVehicle("V1", "van", 50, "electric"),
					Stops:           []domain.Stop{{Order: domain.NewOrder("O1", 46.06, 14.51, 15.5, "express", "")}},
					TotalDistanceKm: 12.3,
					TripNumber:      1,
				}},
			},
			{Algorithm: "sweep", UnassignedOrders: 3, Routes: []domain.Route{}},
		},
	}

	require.NoError(t, repo.SaveRun(ctx, run))

	got, err := repo.GetRun(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.TotalOrders, got.TotalOrders)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Results, 2)
	assert.Equal(t, run.Results[0].Routes[0].OrderIDs(), got.Results[0].Routes[0].OrderIDs())
	assert.Equal(t, "sweep", got.Results[1].Algorithm)
}

func TestPostgresRunRepositoryNotFound(t *testing.T) {
	repo := NewPostgresRunRepository(openTestDB(t))

	_, err := repo.GetRun(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}
