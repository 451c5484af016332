package mongodb

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"remotcyberhelp/internal/domain/ticket"
	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	"remotcyberhelp/internal/shared/config"
	apperrors "remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/query"
)

// setupMongo connects to RCH_TEST_MONGO_URI and returns a throwaway database.
func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("RCH_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("RCH_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, db, err := Connect(ctx, &config.MongoConfig{
		URI:            uri,
		Database:       "rch_test_" + uuid.NewString()[:8],
		TimeoutSeconds: 5,
	})
	if err != nil {
		t.Skipf("mongodb not reachable: %v", err)
	}
	require.NoError(t, EnsureIndexes(ctx, db))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestSearchClause(t *testing.T) {
	assert.Nil(t, searchClause("   ", "subject"))

	or := searchClause("a.b", "subject", "email")
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"subject": bson.M{"$regex": `a\.b`, "$options": "i"}}, or[0])
}

func TestFindOptionsWhitelistsSort(t *testing.T) {
	fallback := bson.D{{Key: "created_at", Value: -1}}

	opts := findOptions(query.NewBaseFilter(3, 20, "priority", "asc"), ticket.SortableFields, fallback)
	assert.Equal(t, bson.D{{Key: "priority", Value: 1}}, opts.Sort)
	assert.Equal(t, int64(40), *opts.Skip)
	assert.Equal(t, int64(20), *opts.Limit)

	opts = findOptions(query.NewBaseFilter(1, 10, "password", "desc"), ticket.SortableFields, fallback)
	assert.Equal(t, fallback, opts.Sort)
}

func TestCounterStoreConcurrentIncrements(t *testing.T) {
	store := NewCounterStore(setupMongo(t))
	ctx := context.Background()

	const workers = 50
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := store.Next(ctx, "ticket_202501")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[seq] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers)
	current, err := store.Current(ctx, "ticket_202501")
	require.NoError(t, err)
	assert.Equal(t, int64(workers), current)
}

func TestTicketRepositoryRoundTrip(t *testing.T) {
	db := setupMongo(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	tk, err := ticket.NewTicket(ticket.NewTicketParams{
		Description: "Router keeps rebooting",
		Category:    vo.CategoryNetworkConnectivity,
		Priority:    vo.PriorityCritical,
		Email:       "mwangi@example.com",
	}, now)
	require.NoError(t, err)
	require.NoError(t, tk.SetNumber("RCH25010001"))
	require.NoError(t, repo.Create(ctx, tk))

	resp, err := ticket.NewResponse(tk.ID(), "Replacing the power adapter", true, "admin-1", nil, now.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.AddResponse(ctx, resp))

	loaded, err := repo.GetByNumber(ctx, "rch25010001")
	require.NoError(t, err)
	assert.Equal(t, tk.ID(), loaded.ID())
	assert.Len(t, loaded.Responses(), 1)

	attention, err := repo.ListAttentionCandidates(ctx, now.Add(-12*time.Hour))
	require.NoError(t, err)
	require.Len(t, attention, 1)

	list, total, err := repo.List(ctx, ticket.Filter{OwnerEmail: "MWANGI@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, tk.ID()))
	count, err := repo.CountResponses(ctx, tk.ID())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.True(t, apperrors.IsNotFoundError(repo.Delete(ctx, tk.ID())))
}

func TestTicketUpdateSetsOnlyChangedFields(t *testing.T) {
	now := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	tk, err := ticket.NewTicket(ticket.NewTicketParams{Description: "No sound", Category: vo.CategoryOther}, now)
	require.NoError(t, err)
	require.NoError(t, tk.SetNumber("RCH25050001"))
	tk.ClearChanges()

	assert.Nil(t, ticketUpdate(tk))

	tk.RecordResponse(now.Add(time.Hour))
	set := ticketUpdate(tk)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "last_response_at")
	assert.Contains(t, set, "updated_at")
	assert.NotContains(t, set, "status")

	tk.ClearChanges()
	require.NoError(t, tk.ChangeStatus(vo.StatusResolved, ticket.TransitionPermissive, now.Add(2*time.Hour)))
	set = ticketUpdate(tk)
	assert.Equal(t, "resolved", set["status"])
	assert.Contains(t, set, "resolved_at")
	assert.NotContains(t, set, "last_response_at")
	assert.NotContains(t, set, "closed_at")
}

func TestTicketRepositoryInterleavedUpdates(t *testing.T) {
	db := setupMongo(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	tk, err := ticket.NewTicket(ticket.NewTicketParams{Description: "Wi-Fi drops", Category: vo.CategoryNetworkConnectivity}, now)
	require.NoError(t, err)
	require.NoError(t, tk.SetNumber("RCH25050002"))
	require.NoError(t, repo.Create(ctx, tk))

	admin, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	customer, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)

	require.NoError(t, admin.ChangeStatus(vo.StatusResolved, ticket.TransitionPermissive, now.Add(time.Hour)))
	require.NoError(t, repo.Update(ctx, admin))
	customer.RecordResponse(now.Add(2 * time.Hour))
	require.NoError(t, repo.Update(ctx, customer))

	loaded, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusResolved, loaded.Status())
	assert.NotNil(t, loaded.ResolvedAt())
	assert.NotNil(t, loaded.LastResponseAt())
}
